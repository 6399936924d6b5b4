package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/RootAccess/backend/internal/domain/catalog"
	"github.com/GriffinCanCode/RootAccess/backend/internal/domain/contract"
	"github.com/GriffinCanCode/RootAccess/backend/internal/domain/session"
	"github.com/GriffinCanCode/RootAccess/backend/internal/domain/terminal"
	"github.com/GriffinCanCode/RootAccess/backend/internal/shared/id"
	"github.com/GriffinCanCode/RootAccess/backend/internal/shared/types"
	"github.com/GriffinCanCode/RootAccess/backend/internal/shared/utils"
)

var (
	// ErrInvalidInput is returned for malformed requests
	ErrInvalidInput = errors.New("invalid input")
	// ErrSyncDisabled is returned when no document store is configured
	ErrSyncDisabled = errors.New("document store sync disabled")
)

// WindowOp names a window manager operation
type WindowOp string

const (
	OpOpen     WindowOp = "open"
	OpClose    WindowOp = "close"
	OpMinimize WindowOp = "minimize"
	OpMaximize WindowOp = "maximize"
	OpFocus    WindowOp = "focus"
)

// DragPhase names a step of a pointer drag
type DragPhase string

const (
	DragBegin DragPhase = "begin"
	DragMove  DragPhase = "move"
	DragEnd   DragPhase = "end"
)

// UserFetcher reads authoritative user documents
type UserFetcher interface {
	FetchUser(ctx context.Context, uid string) (*contract.UserPrivateDoc, error)
}

// Reconciler merges a remote user document into local player state
type Reconciler func(local types.PlayerState, remote *contract.UserPrivateDoc) types.PlayerState

// Desktop routes input to sessions
type Desktop struct {
	sessions  *session.Manager
	apps      *catalog.Apps
	commands  *catalog.Commands
	store     UserFetcher
	reconcile Reconciler
	logger    *zap.Logger
}

// NewDesktop creates a desktop service. store may be nil.
func NewDesktop(sessions *session.Manager, apps *catalog.Apps, commands *catalog.Commands, store UserFetcher, logger *zap.Logger) *Desktop {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Desktop{
		sessions: sessions,
		apps:     apps,
		commands: commands,
		store:    store,
		logger:   logger,
	}
}

// WithReconciler sets how Sync merges remote state
func (d *Desktop) WithReconciler(r Reconciler) *Desktop {
	d.reconcile = r
	return d
}

// Sessions returns the session manager
func (d *Desktop) Sessions() *session.Manager {
	return d.sessions
}

// Apps returns the app catalog
func (d *Desktop) Apps() *catalog.Apps {
	return d.apps
}

// Commands returns the command catalog
func (d *Desktop) Commands() *catalog.Commands {
	return d.commands
}

// Window applies a window operation. vp is required for maximize.
func (d *Desktop) Window(sid id.SessionID, op WindowOp, key types.AppKey, vp *types.Viewport) (types.SessionSnapshot, error) {
	s, err := d.sessions.Get(sid)
	if err != nil {
		return types.SessionSnapshot{}, err
	}

	switch op {
	case OpOpen:
		_, err = s.Windows.Open(key)
	case OpClose:
		_, err = s.Windows.Close(key)
	case OpMinimize:
		_, err = s.Windows.Minimize(key)
	case OpFocus:
		_, err = s.Windows.Focus(key)
	case OpMaximize:
		if vp == nil || vp.Width < 0 || vp.Height < 0 {
			return types.SessionSnapshot{}, fmt.Errorf("%w: maximize needs a non-negative viewport", ErrInvalidInput)
		}
		_, err = s.Windows.Maximize(key, *vp)
	default:
		return types.SessionSnapshot{}, fmt.Errorf("%w: unknown window operation %q", ErrInvalidInput, op)
	}
	if err != nil {
		return types.SessionSnapshot{}, err
	}

	d.logger.Debug("Window operation",
		zap.String("session_id", sid.String()),
		zap.String("op", string(op)),
		zap.String("app", string(key)))
	return s.Snapshot(), nil
}

// Drag applies one drag phase. key is only read by DragBegin.
func (d *Desktop) Drag(sid id.SessionID, phase DragPhase, key types.AppKey, x, y int) (types.SessionSnapshot, error) {
	s, err := d.sessions.Get(sid)
	if err != nil {
		return types.SessionSnapshot{}, err
	}

	switch phase {
	case DragBegin:
		if _, err := s.Windows.BeginDrag(key, x, y); err != nil {
			return types.SessionSnapshot{}, err
		}
	case DragMove:
		s.Windows.ContinueDrag(x, y)
	case DragEnd:
		s.Windows.EndDrag()
	default:
		return types.SessionSnapshot{}, fmt.Errorf("%w: unknown drag phase %q", ErrInvalidInput, phase)
	}
	return s.Snapshot(), nil
}

// Exec runs one terminal line
func (d *Desktop) Exec(ctx context.Context, sid id.SessionID, line string) (types.SessionSnapshot, types.CommandResult, error) {
	if err := utils.ValidateCommandLine(line); err != nil {
		return types.SessionSnapshot{}, types.CommandResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	s, err := d.sessions.Get(sid)
	if err != nil {
		return types.SessionSnapshot{}, types.CommandResult{}, err
	}

	out := s.Execute(ctx, line)
	return s.Snapshot(), Result(out), nil
}

// Sync pulls the authoritative user document and replaces local resources
func (d *Desktop) Sync(ctx context.Context, sid id.SessionID) (types.SessionSnapshot, error) {
	if d.store == nil || d.reconcile == nil {
		return types.SessionSnapshot{}, ErrSyncDisabled
	}
	s, err := d.sessions.Get(sid)
	if err != nil {
		return types.SessionSnapshot{}, err
	}

	remote, err := d.store.FetchUser(ctx, sid.String())
	if err != nil {
		return types.SessionSnapshot{}, fmt.Errorf("failed to fetch user: %w", err)
	}

	player := s.Terminal.Reconcile(func(local types.PlayerState) types.PlayerState {
		return d.reconcile(local, remote)
	}).Player

	d.logger.Info("Session reconciled",
		zap.String("session_id", sid.String()),
		zap.Int("credits", player.Credits),
		zap.Int("level", player.Level))
	return s.Snapshot(), nil
}

// Result converts an engine outcome for the wire
func Result(o terminal.Outcome) types.CommandResult {
	return types.CommandResult{
		Kind:        string(o.Kind),
		CommandID:   o.CommandID,
		XPGained:    o.XPGained,
		LevelsUp:    o.LevelsUp,
		RemainingMs: o.Remaining.Milliseconds(),
	}
}
