package terminal

import (
	"maps"
	"slices"
	"time"

	"github.com/GriffinCanCode/RootAccess/backend/internal/shared/types"
)

// MaxLogLines bounds the log; older lines are dropped
const MaxLogLines = 120

// Trace bounds and the warning threshold
const (
	MinTrace      = 0
	MaxTrace      = 100
	TraceCritical = 80
)

// BaselinePlayer is the state of a fresh session
var BaselinePlayer = types.PlayerState{Credits: 120, Trace: 4, XP: 0, Level: 1}

var bannerLines = []string{
	"ROOTACCESS TERMINAL v0.6 // command loop active.",
	`Type "help" to view available commands.`,
}

// State is the player's resources, cooldown table and log
type State struct {
	Player    types.PlayerState
	cooldowns map[string]time.Time
	log       []string
}

// NewState returns the baseline state with the banner in the log
func NewState() State {
	return NewStateFrom(BaselinePlayer)
}

// NewStateFrom returns a state with the given player resources
func NewStateFrom(player types.PlayerState) State {
	return State{
		Player:    player,
		cooldowns: map[string]time.Time{},
		log:       slices.Clone(bannerLines),
	}
}

// Log returns a copy of the log
func (s State) Log() []string {
	return slices.Clone(s.log)
}

// ReadyAt returns the stored ready-at time for a command
func (s State) ReadyAt(commandID string) (time.Time, bool) {
	t, ok := s.cooldowns[commandID]
	return t, ok
}

// Remaining returns how long commandID stays on cooldown at now; zero when
// ready. It only reads state.
func (s State) Remaining(commandID string, now time.Time) time.Duration {
	until, ok := s.cooldowns[commandID]
	if !ok || !until.After(now) {
		return 0
	}
	return until.Sub(now)
}

// Cooldowns returns remaining cooldowns at now, omitting ready commands
func (s State) Cooldowns(now time.Time) map[string]time.Duration {
	out := make(map[string]time.Duration, len(s.cooldowns))
	for id := range s.cooldowns {
		if d := s.Remaining(id, now); d > 0 {
			out[id] = d
		}
	}
	return out
}

// Snapshot returns a serializable view at now
func (s State) Snapshot(now time.Time) types.TerminalSnapshot {
	cds := s.Cooldowns(now)
	ms := make(map[string]int64, len(cds))
	for id, d := range cds {
		ms[id] = d.Milliseconds()
	}
	return types.TerminalSnapshot{
		Player:    s.Player,
		Cooldowns: ms,
		Log:       s.Log(),
	}
}

func (s State) withCooldown(commandID string, until time.Time) State {
	next := s
	next.cooldowns = maps.Clone(s.cooldowns)
	if next.cooldowns == nil {
		next.cooldowns = map[string]time.Time{}
	}
	next.cooldowns[commandID] = until
	return next
}

// appendLines adds lines keeping only the last MaxLogLines
func (s State) appendLines(lines ...string) State {
	next := s
	log := make([]string, 0, len(s.log)+len(lines))
	log = append(log, s.log...)
	log = append(log, lines...)
	if over := len(log) - MaxLogLines; over > 0 {
		log = log[over:]
	}
	next.log = log
	return next
}

func (s State) resetLog(line string) State {
	next := s
	next.log = []string{line}
	return next
}
