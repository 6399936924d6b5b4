package terminal

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/GriffinCanCode/RootAccess/backend/internal/shared/types"
)

// Catalog provides command definitions
type Catalog interface {
	Command(id string) (types.CommandDef, bool)
	Commands() []types.CommandDef
}

// XP awarded per successful execution
const (
	ScrubXP   = 8
	DefaultXP = 14
)

// LevelThreshold is the XP per level step
const LevelThreshold = 100

// ScrubCommandID names the command that earns ScrubXP
const ScrubCommandID = "scrub.trace"

// Log lines
const (
	ClearedLine      = "[SYS] terminal cleared."
	UnknownInputLine = "[ERR] unknown input. Try: help"
	TraceWarningLine = "[WARN] trace critical, run " + ScrubCommandID
)

var helpLines = []string{
	"help                -> list available commands",
	"status              -> show credits/xp/level/trace",
	"run <commandId>     -> execute command if off cooldown",
	"clear               -> clear terminal output",
}

// HelpLineCount is the number of static lines printed by help
var HelpLineCount = len(helpLines)

// OutcomeKind classifies what an input did
type OutcomeKind string

const (
	OutcomeNone           OutcomeKind = "none"
	OutcomeHelp           OutcomeKind = "help"
	OutcomeStatus         OutcomeKind = "status"
	OutcomeClear          OutcomeKind = "clear"
	OutcomeExecuted       OutcomeKind = "executed"
	OutcomeUnknownCommand OutcomeKind = "unknown_command"
	OutcomeCooldown       OutcomeKind = "cooldown"
	OutcomeUnknownInput   OutcomeKind = "unknown_input"
)

// Outcome describes the effect of one Execute call
type Outcome struct {
	Kind       OutcomeKind
	CommandID  string
	Reward     int
	TraceDelta int // signed change requested by the command
	XPGained   int
	LevelsUp   int
	Player     types.PlayerState // resources after an executed command
	Remaining  time.Duration
	At         time.Time
}

// Execute resolves one line of input against s at now
func Execute(s State, cat Catalog, raw string, now time.Time) (State, Outcome) {
	line := strings.TrimSpace(raw)
	if line == "" {
		return s, Outcome{Kind: OutcomeNone, At: now}
	}

	s = s.appendLines("> " + line)

	switch {
	case line == "help":
		lines := append([]string{}, helpLines...)
		for _, c := range cat.Commands() {
			lines = append(lines, helpEntry(c))
		}
		return s.appendLines(lines...), Outcome{Kind: OutcomeHelp, At: now}

	case line == "status":
		p := s.Player
		return s.appendLines(fmt.Sprintf("[ST] credits=%d xp=%d level=%d trace=%d", p.Credits, p.XP, p.Level, p.Trace)),
			Outcome{Kind: OutcomeStatus, At: now}

	case line == "clear":
		return s.resetLog(ClearedLine), Outcome{Kind: OutcomeClear, At: now}

	case strings.HasPrefix(line, "run "):
		return run(s, cat, strings.TrimSpace(line[len("run "):]), now)
	}

	return s.appendLines(UnknownInputLine), Outcome{Kind: OutcomeUnknownInput, At: now}
}

func run(s State, cat Catalog, commandID string, now time.Time) (State, Outcome) {
	cmd, ok := cat.Command(commandID)
	if !ok {
		return s.appendLines("[ERR] unknown command: " + commandID),
			Outcome{Kind: OutcomeUnknownCommand, CommandID: commandID, At: now}
	}

	if remaining := s.Remaining(commandID, now); remaining > 0 {
		return s.appendLines(fmt.Sprintf("[CD] %s cooldown %ds remaining.", commandID, ceilSeconds(remaining))),
			Outcome{Kind: OutcomeCooldown, CommandID: commandID, Remaining: remaining, At: now}
	}

	prev := s.Player
	gained := xpFor(commandID)
	level, xp, levelsUp := levelUp(prev.Level, prev.XP+gained)
	player := types.PlayerState{
		Credits: prev.Credits + cmd.Reward,
		Trace:   clampTrace(prev.Trace + cmd.TraceDelta),
		XP:      xp,
		Level:   level,
	}

	next := s.withCooldown(commandID, now.Add(cmd.Cooldown()))
	next.Player = player

	lines := []string{fmt.Sprintf("[OK] %s => credits +%d, trace %s, xp +%d",
		commandID, cmd.Reward, signed(cmd.TraceDelta), gained)}
	if levelsUp > 0 {
		lines = append(lines, fmt.Sprintf("[LVL] Level up -> %d", level))
	}
	if player.Trace >= TraceCritical {
		lines = append(lines, TraceWarningLine)
	}

	return next.appendLines(lines...), Outcome{
		Kind:       OutcomeExecuted,
		CommandID:  commandID,
		Reward:     cmd.Reward,
		TraceDelta: cmd.TraceDelta,
		XPGained:   gained,
		LevelsUp:   levelsUp,
		Player:     player,
		At:         now,
	}
}

func xpFor(commandID string) int {
	if commandID == ScrubCommandID {
		return ScrubXP
	}
	return DefaultXP
}

// levelUp consumes XP in steps of level*LevelThreshold, where level is the
// level before this gain, until the remainder is below one step.
func levelUp(level, xp int) (int, int, int) {
	if level < 1 {
		level = 1
	}
	threshold := level * LevelThreshold
	levels := 0
	for xp >= threshold {
		xp -= threshold
		levels++
	}
	return level + levels, xp, levels
}

func clampTrace(v int) int {
	return min(max(v, MinTrace), MaxTrace)
}

func ceilSeconds(d time.Duration) int64 {
	ms := d.Milliseconds()
	if d%time.Millisecond != 0 {
		ms++
	}
	return (ms + 999) / 1000
}

func signed(v int) string {
	if v >= 0 {
		return "+" + strconv.Itoa(v)
	}
	return strconv.Itoa(v)
}

func helpEntry(c types.CommandDef) string {
	secs := strconv.FormatFloat(float64(c.CooldownMs)/1000, 'f', -1, 64)
	return fmt.Sprintf("- %s (%ss) :: %s", c.ID, secs, c.Description)
}
