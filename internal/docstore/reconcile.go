package docstore

import (
	"github.com/GriffinCanCode/RootAccess/backend/internal/domain/contract"
	"github.com/GriffinCanCode/RootAccess/backend/internal/domain/terminal"
	"github.com/GriffinCanCode/RootAccess/backend/internal/shared/types"
)

// Reconcile returns the player state to keep after reading the remote user
// document. Remote economy fields win; a missing document keeps local state.
func Reconcile(local types.PlayerState, remote *contract.UserPrivateDoc) types.PlayerState {
	if remote == nil {
		return local
	}
	return types.PlayerState{
		Credits: remote.Balance,
		Trace:   min(max(remote.Trace, terminal.MinTrace), terminal.MaxTrace),
		XP:      max(remote.XP, 0),
		Level:   max(remote.Level, 1),
	}
}

// RankScore is the leaderboard score of a player
func RankScore(p types.PlayerState) int {
	return (p.Level-1)*1000 + p.XP*10 + p.Credits/10
}
