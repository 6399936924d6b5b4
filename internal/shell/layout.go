package shell

import (
	"github.com/GriffinCanCode/RootAccess/backend/internal/domain/window"
	"github.com/GriffinCanCode/RootAccess/backend/internal/shared/types"
)

// Pixels per terminal cell
const (
	CellWidth  = 8
	CellHeight = 16
)

// Chrome in rows, derived from the pixel chrome
const (
	headerRows  = window.ChromeTop / CellHeight
	taskbarRows = window.ChromeBottom / CellHeight
)

const (
	launcherWidth = 22
	launcherTop   = headerRows + 1

	minWindowCols = 16
	minWindowRows = 4

	buttonWidth = 3
)

type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

func (r rect) empty() bool {
	return r.w <= 0 || r.h <= 0
}

func (r rect) intersect(o rect) rect {
	x0, y0 := max(r.x, o.x), max(r.y, o.y)
	x1, y1 := min(r.x+r.w, o.x+o.w), min(r.y+r.h, o.y+o.h)
	return rect{x: x0, y: y0, w: max(x1-x0, 0), h: max(y1-y0, 0)}
}

// layout maps desktop state onto a terminal of w x h cells
type layout struct {
	w, h int
}

func (l layout) viewport() types.Viewport {
	return types.Viewport{Width: l.w * CellWidth, Height: l.h * CellHeight}
}

func (l layout) desktop() rect {
	return rect{x: 0, y: headerRows, w: l.w, h: max(l.h-headerRows-taskbarRows, 0)}
}

func (l layout) taskbarRow() int {
	return l.h - taskbarRows + taskbarRows/2
}

// window returns the drawn cells of w, clipped to the desktop area
func (l layout) window(w types.Window) rect {
	r := rect{
		x: w.Position.X / CellWidth,
		y: w.Position.Y / CellHeight,
		w: max(w.Size.Width/CellWidth, minWindowCols),
		h: max(w.Size.Height/CellHeight, minWindowRows),
	}
	return r.intersect(l.desktop())
}

type button int

const (
	buttonMinimize button = iota
	buttonMaximize
	buttonClose
	buttonCount
)

var buttonLabels = [buttonCount]string{"[-]", "[+]", "[x]"}

// button returns the title-bar cells of b in a window drawn at r
func (l layout) button(r rect, b button) rect {
	right := r.x + r.w - 1
	x := right - int(buttonCount-b)*buttonWidth
	return rect{x: x, y: r.y, w: buttonWidth, h: 1}
}

func (l layout) launcherEntry(i int) rect {
	return rect{x: 0, y: launcherTop + i, w: launcherWidth, h: 1}.intersect(l.desktop())
}

type slot struct {
	app   types.AppKey
	label string
	r     rect
}

// taskbarSlots lays out one slot per open window in creation order
func (l layout) taskbarSlots(windows []types.Window, apps AppCatalog) []slot {
	slots := make([]slot, 0, len(windows))
	x := 1
	row := l.taskbarRow()
	for _, w := range windows {
		name := string(w.App)
		if d, ok := apps.Get(w.App); ok {
			name = d.Icon + " " + d.Name
		}
		label := "[" + name + "]"
		width := len([]rune(label))
		if x+width > l.w {
			break
		}
		slots = append(slots, slot{app: w.App, label: label, r: rect{x: x, y: row, w: width, h: 1}})
		x += width + 1
	}
	return slots
}

type hitKind int

const (
	hitNone hitKind = iota
	hitLauncher
	hitTitle
	hitButton
	hitWindow
	hitTaskbar
)

type hit struct {
	kind   hitKind
	app    types.AppKey
	button button
}

// hitTest resolves a cell to the topmost thing drawn there
func (l layout) hitTest(state window.State, apps AppCatalog, x, y int) hit {
	if y < headerRows {
		return hit{}
	}
	if y >= l.h-taskbarRows {
		for _, s := range l.taskbarSlots(state.Taskbar(), apps) {
			if s.r.contains(x, y) {
				return hit{kind: hitTaskbar, app: s.app}
			}
		}
		return hit{}
	}

	order := state.RenderOrder()
	for i := len(order) - 1; i >= 0; i-- {
		w := order[i].Window
		r := l.window(w)
		if r.empty() || !r.contains(x, y) {
			continue
		}
		if y == r.y {
			for b := buttonMinimize; b < buttonCount; b++ {
				if l.button(r, b).contains(x, y) {
					return hit{kind: hitButton, app: w.App, button: b}
				}
			}
			return hit{kind: hitTitle, app: w.App}
		}
		return hit{kind: hitWindow, app: w.App}
	}

	for i, d := range apps.List() {
		if l.launcherEntry(i).contains(x, y) {
			return hit{kind: hitLauncher, app: d.Key}
		}
	}
	return hit{}
}
