package window

import (
	"fmt"
	"slices"

	"github.com/GriffinCanCode/RootAccess/backend/internal/shared/types"
)

// Default geometry for newly opened windows
const (
	DefaultWidth  = 560
	DefaultHeight = 380

	cascadeOriginX = 40
	cascadeOriginY = 56
	cascadeStepX   = 28
	cascadeStepY   = 24
	cascadeSlots   = 6
)

// Fixed UI chrome around the window area
const (
	ChromeTop    = 48 // header bar
	ChromeBottom = 64 // taskbar
	ChromeSide   = 12
)

type drag struct {
	app     types.AppKey
	offsetX int
	offsetY int
}

// State is one desktop's window set, focus order and drag slot
type State struct {
	windows map[types.AppKey]types.Window
	created []types.AppKey
	focus   []types.AppKey
	drag    *drag
}

// New returns an empty desktop
func New() State {
	return State{windows: map[types.AppKey]types.Window{}}
}

func (s State) clone() State {
	next := State{
		windows: make(map[types.AppKey]types.Window, len(s.windows)+1),
		created: slices.Clone(s.created),
		focus:   slices.Clone(s.focus),
	}
	for k, w := range s.windows {
		next.windows[k] = w
	}
	if s.drag != nil {
		d := *s.drag
		next.drag = &d
	}
	return next
}

// cascade returns the initial position for the n-th open window
func cascade(n int) types.WindowPosition {
	slot := n % cascadeSlots
	return types.WindowPosition{
		X: cascadeOriginX + slot*cascadeStepX,
		Y: cascadeOriginY + slot*cascadeStepY,
	}
}

// clampPosition keeps a window below the header and right of the left edge
func clampPosition(p types.WindowPosition) types.WindowPosition {
	return types.WindowPosition{X: max(p.X, 0), Y: max(p.Y, ChromeTop)}
}

// Open creates a window for key or restores and focuses the existing one
func (s State) Open(key types.AppKey) State {
	next := s.clone()
	if w, ok := next.windows[key]; ok {
		w.Minimized = false
		next.windows[key] = w
		next.raise(key)
		return next
	}

	next.windows[key] = types.Window{
		App:      key,
		Position: cascade(len(s.windows)),
		Size:     types.WindowSize{Width: DefaultWidth, Height: DefaultHeight},
	}
	next.created = append(next.created, key)
	next.focus = append(next.focus, key)
	return next
}

// Close removes the window for key. A drag on that window is cancelled.
func (s State) Close(key types.AppKey) State {
	if _, ok := s.windows[key]; !ok {
		return s
	}

	next := s.clone()
	delete(next.windows, key)
	next.created = slices.DeleteFunc(next.created, func(k types.AppKey) bool { return k == key })
	next.focus = slices.DeleteFunc(next.focus, func(k types.AppKey) bool { return k == key })
	if next.drag != nil && next.drag.app == key {
		next.drag = nil
	}
	return next
}

// Minimize hides the window for key; it stays in the taskbar and focus order
func (s State) Minimize(key types.AppKey) State {
	w, ok := s.windows[key]
	if !ok || w.Minimized {
		return s
	}

	next := s.clone()
	w.Minimized = true
	next.windows[key] = w
	return next
}

// Maximize fills vp minus the chrome margins, restores and focuses key.
// vp must be read by the caller at call time.
func (s State) Maximize(key types.AppKey, vp types.Viewport) State {
	w, ok := s.windows[key]
	if !ok {
		return s
	}

	next := s.clone()
	w.Position = types.WindowPosition{X: ChromeSide, Y: ChromeTop}
	w.Size = types.WindowSize{
		Width:  max(vp.Width-2*ChromeSide, 0),
		Height: max(vp.Height-ChromeTop-ChromeBottom, 0),
	}
	w.Minimized = false
	next.windows[key] = w
	next.raise(key)
	return next
}

// Focus makes key topmost
func (s State) Focus(key types.AppKey) State {
	if _, ok := s.windows[key]; !ok {
		return s
	}
	if n := len(s.focus); n > 0 && s.focus[n-1] == key {
		return s
	}

	next := s.clone()
	next.raise(key)
	return next
}

// BeginDrag records the pointer offset from the window's top-left corner
// and focuses the window. An active drag is replaced.
func (s State) BeginDrag(key types.AppKey, px, py int) State {
	w, ok := s.windows[key]
	if !ok {
		return s
	}

	next := s.clone()
	next.drag = &drag{
		app:     key,
		offsetX: px - w.Position.X,
		offsetY: py - w.Position.Y,
	}
	next.raise(key)
	return next
}

// ContinueDrag moves the dragged window to pointer minus offset
func (s State) ContinueDrag(px, py int) State {
	if s.drag == nil {
		return s
	}
	w, ok := s.windows[s.drag.app]
	if !ok {
		return s
	}

	next := s.clone()
	w.Position = clampPosition(types.WindowPosition{
		X: px - s.drag.offsetX,
		Y: py - s.drag.offsetY,
	})
	next.windows[w.App] = w
	return next
}

// EndDrag clears the drag slot
func (s State) EndDrag() State {
	if s.drag == nil {
		return s
	}
	next := s.clone()
	next.drag = nil
	return next
}

// raise moves key to the end of the focus order; receiver must be a clone
func (s *State) raise(key types.AppKey) {
	s.focus = slices.DeleteFunc(s.focus, func(k types.AppKey) bool { return k == key })
	s.focus = append(s.focus, key)
}

// Len returns the number of open windows
func (s State) Len() int {
	return len(s.windows)
}

// Window returns the window for key
func (s State) Window(key types.AppKey) (types.Window, bool) {
	w, ok := s.windows[key]
	return w, ok
}

// Focused returns the topmost key
func (s State) Focused() (types.AppKey, bool) {
	if len(s.focus) == 0 {
		return "", false
	}
	return s.focus[len(s.focus)-1], true
}

// Dragging returns the key being dragged
func (s State) Dragging() (types.AppKey, bool) {
	if s.drag == nil {
		return "", false
	}
	return s.drag.app, true
}

// FocusOrder returns keys from bottom to top
func (s State) FocusOrder() []types.AppKey {
	return slices.Clone(s.focus)
}

// RenderOrder returns visible windows bottom to top; the topmost window is
// marked focused when it is visible
func (s State) RenderOrder() []types.WindowView {
	views := make([]types.WindowView, 0, len(s.focus))
	top, _ := s.Focused()
	for _, key := range s.focus {
		w := s.windows[key]
		if w.Minimized {
			continue
		}
		views = append(views, types.WindowView{
			Window:  w,
			Z:       len(views),
			Focused: key == top,
		})
	}
	return views
}

// Taskbar returns every open window, minimized included, in creation order
func (s State) Taskbar() []types.Window {
	out := make([]types.Window, 0, len(s.created))
	for _, key := range s.created {
		out = append(out, s.windows[key])
	}
	return out
}

// Snapshot returns a serializable view of the state
func (s State) Snapshot() types.DesktopSnapshot {
	snap := types.DesktopSnapshot{
		Windows:    s.RenderOrder(),
		Taskbar:    s.Taskbar(),
		FocusOrder: s.FocusOrder(),
	}
	if key, ok := s.Focused(); ok {
		snap.Focused = &key
	}
	if key, ok := s.Dragging(); ok {
		snap.Dragging = &key
	}
	return snap
}

// Validate checks the focus-order and creation-order invariants
func (s State) Validate() error {
	if len(s.focus) != len(s.windows) || len(s.created) != len(s.windows) {
		return fmt.Errorf("window set has %d entries, focus order %d, creation order %d",
			len(s.windows), len(s.focus), len(s.created))
	}

	seen := make(map[types.AppKey]bool, len(s.focus))
	for _, key := range s.focus {
		if seen[key] {
			return fmt.Errorf("duplicate focus entry %q", key)
		}
		if _, ok := s.windows[key]; !ok {
			return fmt.Errorf("focus entry %q has no window", key)
		}
		seen[key] = true
	}
	for _, key := range s.created {
		if !seen[key] {
			return fmt.Errorf("taskbar entry %q missing from focus order", key)
		}
	}
	if s.drag != nil {
		if _, ok := s.windows[s.drag.app]; !ok {
			return fmt.Errorf("drag targets closed window %q", s.drag.app)
		}
	}
	return nil
}
