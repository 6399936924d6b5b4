package types

import "time"

// CommandDef is an immutable command catalog entry
type CommandDef struct {
	ID          string `json:"id" yaml:"id" toml:"id"`
	Reward      int    `json:"reward" yaml:"reward" toml:"reward"`
	TraceDelta  int    `json:"trace_delta" yaml:"trace_delta" toml:"trace_delta"`
	CooldownMs  int64  `json:"cooldown_ms" yaml:"cooldown_ms" toml:"cooldown_ms"`
	Description string `json:"description" yaml:"description" toml:"description"`
}

// Cooldown returns the cooldown as a duration
func (c CommandDef) Cooldown() time.Duration {
	return time.Duration(c.CooldownMs) * time.Millisecond
}

// PlayerState holds the player's resources
type PlayerState struct {
	Credits int `json:"credits"`
	Trace   int `json:"trace"`
	XP      int `json:"xp"`
	Level   int `json:"level"`
}
