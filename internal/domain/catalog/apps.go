package catalog

import "github.com/GriffinCanCode/RootAccess/backend/internal/shared/types"

var defaultApps = []types.AppDescriptor{
	{Key: types.AppTerminal, Name: "Terminal", Icon: ">_", Summary: "Command loop: run exploits, earn credits, manage trace."},
	{Key: types.AppBlackMarket, Name: "Black Market", Icon: "$", Summary: "Buy and sell commands and modules."},
	{Key: types.AppIndex, Name: "Index", Icon: "#", Summary: "Leaderboard of public operator profiles."},
	{Key: types.AppProfile, Name: "Profile", Icon: "@", Summary: "Operator identity, traits and badges."},
	{Key: types.AppPvPArena, Name: "PvP Arena v1", Icon: "x", Summary: "Head-to-head intrusion matches."},
	{Key: types.AppBlockchain, Name: "Blockchain v1", Icon: "=", Summary: "Owned blocks and passive income."},
	{Key: types.AppSignalNetwork, Name: "Signal Network", Icon: "~", Summary: "Global events and faction chatter."},
	{Key: types.AppQuestMenu, Name: "Quest Menu", Icon: "!", Summary: "Daily, weekly and seasonal objectives."},
	{Key: types.AppDaemonLab, Name: "Daemon Lab", Icon: "&", Summary: "Build and install background daemons."},
	{Key: types.AppArchive, Name: "Archive", Icon: "%", Summary: "Lore fragments and past seasons."},
	{Key: types.AppOperatorConsole, Name: "Operator Console", Icon: "*", Summary: "Administrative tooling."},
}

// Apps is the launcher catalog
type Apps struct {
	list  []types.AppDescriptor
	byKey map[types.AppKey]types.AppDescriptor
}

// DefaultApps returns the fixed set of core apps
func DefaultApps() *Apps {
	return NewApps(defaultApps)
}

// NewApps builds a catalog from descriptors; later duplicates are ignored
func NewApps(descriptors []types.AppDescriptor) *Apps {
	a := &Apps{
		list:  make([]types.AppDescriptor, 0, len(descriptors)),
		byKey: make(map[types.AppKey]types.AppDescriptor, len(descriptors)),
	}
	for _, d := range descriptors {
		if _, dup := a.byKey[d.Key]; dup {
			continue
		}
		a.list = append(a.list, d)
		a.byKey[d.Key] = d
	}
	return a
}

// Has reports whether key names a known app
func (a *Apps) Has(key types.AppKey) bool {
	_, ok := a.byKey[key]
	return ok
}

// Get returns the descriptor for key
func (a *Apps) Get(key types.AppKey) (types.AppDescriptor, bool) {
	d, ok := a.byKey[key]
	return d, ok
}

// List returns descriptors in launcher order
func (a *Apps) List() []types.AppDescriptor {
	out := make([]types.AppDescriptor, len(a.list))
	copy(out, a.list)
	return out
}
