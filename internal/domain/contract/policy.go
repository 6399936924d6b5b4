package contract

import (
	"errors"
	"fmt"
	"slices"

	"github.com/GriffinCanCode/RootAccess/backend/internal/shared/paths"
)

// ErrPermissionDenied is returned when a write breaks the authority rules
var ErrPermissionDenied = errors.New("permission denied")

// Op is a document write operation
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// EconomyFields may only be changed by an administrator
var EconomyFields = []string{"balance", "xp", "trace", "level", "cooldowns", "isAdmin"}

// Actor is the authenticated caller
type Actor struct {
	UID     string
	IsAdmin bool
}

// Write describes one document write. Fields lists the top-level fields the
// write sets; for creates it is the whole document.
type Write struct {
	Op     Op
	Path   string
	Fields map[string]interface{}
}

// Authorize reports whether actor may perform w
func Authorize(actor Actor, w Write) error {
	if actor.UID == "" {
		return deny(w, "unauthenticated")
	}

	seg := paths.Split(w.Path)
	if len(seg) < 2 || len(seg)%2 != 0 {
		return deny(w, "not a document path")
	}

	switch seg[0] {
	case paths.Users:
		return authorizeUser(actor, w, seg)
	case paths.UserPublic:
		if actor.IsAdmin || actor.UID == seg[1] {
			return nil
		}
		return deny(w, "not the owner")
	case paths.AdminLogs:
		if w.Op != OpCreate {
			return deny(w, "admin logs are append-only")
		}
		return requireAdmin(actor, w)
	case paths.Commands, paths.Quests, paths.MarketRotations, paths.SeasonConfigs,
		paths.GlobalState, paths.PvPMatches, paths.EconomySnapshots:
		return requireAdmin(actor, w)
	}
	return deny(w, "unknown collection")
}

func authorizeUser(actor Actor, w Write, seg []string) error {
	owner := seg[1]
	if actor.IsAdmin {
		return nil
	}
	if actor.UID != owner {
		return deny(w, "cross-user write")
	}

	if len(seg) == 2 {
		switch w.Op {
		case OpCreate:
			for _, field := range EconomyFields {
				if v, ok := w.Fields[field]; ok && !atBaseline(field, v) {
					return deny(w, "economy field "+field+" not at baseline")
				}
			}
			return nil
		case OpUpdate:
			for field := range w.Fields {
				if slices.Contains(EconomyFields, field) {
					return deny(w, "economy field "+field)
				}
			}
			return nil
		}
		return deny(w, "user documents cannot be deleted")
	}

	switch seg[2] {
	case paths.CommandIntents, paths.QuestClaims:
		if w.Op == OpCreate {
			return nil
		}
		return deny(w, "intents are immutable")
	}
	return deny(w, "server-owned subcollection")
}

// Baseline values a user document may be created with
var baselineNumbers = map[string]float64{"balance": 0, "xp": 0, "trace": 0, "level": 1}

// atBaseline reports whether v is the starting value of an economy field
func atBaseline(field string, v interface{}) bool {
	switch field {
	case "isAdmin":
		admin, ok := v.(bool)
		return ok && !admin
	case "cooldowns":
		switch c := v.(type) {
		case nil:
			return true
		case map[string]interface{}:
			return len(c) == 0
		}
		return false
	}
	n, ok := number(v)
	return ok && n == baselineNumbers[field]
}

func number(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func requireAdmin(actor Actor, w Write) error {
	if actor.IsAdmin {
		return nil
	}
	return deny(w, "admin only")
}

func deny(w Write, reason string) error {
	return fmt.Errorf("%w: %s %s: %s", ErrPermissionDenied, w.Op, w.Path, reason)
}
