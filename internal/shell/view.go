package shell

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/GriffinCanCode/RootAccess/backend/internal/domain/terminal"
	"github.com/GriffinCanCode/RootAccess/backend/internal/shared/types"
)

const brand = "ROOTACCESS"

// View renders the desktop
func (m Model) View() string {
	if m.layout.w <= 0 || m.layout.h <= 0 {
		return brand + " // waiting for terminal size"
	}
	return m.draw().render(m.theme)
}

func (m Model) draw() *canvas {
	c := newCanvas(m.layout.w, m.layout.h)
	m.drawHeader(c)
	m.drawLauncher(c)

	state := m.windows.State()
	for _, v := range state.RenderOrder() {
		m.drawWindow(c, v)
	}
	m.drawTaskbar(c, state.Taskbar())
	return c
}

func (m Model) drawHeader(c *canvas) {
	c.fill(0, 0, c.w, headerRows, stHeader)
	row := headerRows / 2

	x := 1 + c.text(1, row, brand, stHeaderAccent, c.w)
	snap := m.engine.Snapshot()
	p := snap.Player
	stats := fmt.Sprintf("  CR %d  TRACE %d/%d  LVL %d  XP %d/%d",
		p.Credits, p.Trace, terminal.MaxTrace, p.Level, p.XP, p.Level*terminal.LevelThreshold)
	x += c.text(x, row, stats, stHeader, c.w-x)

	if cd := cooldownSummary(snap.Cooldowns); cd != "" {
		c.text(x, row, "  CD "+cd, stHeaderAccent, c.w-x)
	}
}

// cooldownSummary lists remaining cooldowns as "id 3s", sorted by id
func cooldownSummary(cds map[string]int64) string {
	ids := make([]string, 0, len(cds))
	for id := range cds {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		secs := (cds[id] + 999) / 1000
		parts = append(parts, fmt.Sprintf("%s %ds", id, secs))
	}
	return strings.Join(parts, " | ")
}

func (m Model) drawLauncher(c *canvas) {
	for i, d := range m.apps.List() {
		r := m.layout.launcherEntry(i)
		if r.empty() {
			return
		}
		key := fmt.Sprintf("%d", i+1)
		if i >= 9 {
			key = " "
		}
		x := r.x + 1
		x += c.text(x, r.y, key+" ", stLauncher, r.w-1)
		x += c.text(x, r.y, fmt.Sprintf("%-2s ", d.Icon), stLauncherIcon, r.x+r.w-x)
		c.text(x, r.y, d.Name, stLauncher, r.x+r.w-x)
	}
}

func (m Model) drawWindow(c *canvas, v types.WindowView) {
	r := m.layout.window(v.Window)
	if r.w < 2 || r.h < 2 {
		return
	}

	border, title := stBorder, stTitle
	if v.Focused {
		border, title = stBorderFocused, stTitleFocused
	}
	c.fill(r.x, r.y, r.w, r.h, stBody)
	c.box(r.x, r.y, r.w, r.h, border, lipgloss.RoundedBorder())

	name := string(v.App)
	if d, ok := m.apps.Get(v.App); ok {
		name = d.Name
	}
	buttons := m.layout.button(r, buttonMinimize)
	c.text(r.x+2, r.y, " "+name+" ", title, buttons.x-r.x-3)
	for b := buttonMinimize; b < buttonCount; b++ {
		br := m.layout.button(r, b)
		c.text(br.x, br.y, buttonLabels[b], title, br.w)
	}

	inner := rect{x: r.x + 2, y: r.y + 1, w: r.w - 4, h: r.h - 2}
	if inner.empty() {
		return
	}
	switch v.App {
	case types.AppTerminal:
		m.drawTerminal(c, inner)
	case types.AppProfile:
		m.drawProfile(c, inner)
	default:
		m.drawSummary(c, inner, v.App)
	}
}

func (m Model) drawTerminal(c *canvas, r rect) {
	log := m.engine.State().Log()
	rows := r.h - 1
	if len(log) > rows {
		log = log[len(log)-rows:]
	}
	for i, line := range log {
		c.text(r.x, r.y+i, line, logStyle(line), r.w)
	}

	prompt := r.y + r.h - 1
	x := r.x + c.text(r.x, prompt, m.input.Prompt, stPrompt, r.w)
	value := m.input.Value()
	if value == "" && !m.input.Focused() {
		c.text(x, prompt, m.input.Placeholder, stBorder, r.x+r.w-x)
		return
	}
	// keep the tail of long input in view
	room := r.x + r.w - x - 1
	if runes := []rune(value); room > 0 && len(runes) > room {
		value = string(runes[len(runes)-room:])
	}
	x += c.text(x, prompt, value, stBody, r.x+r.w-x)
	if m.input.Focused() {
		c.set(x, prompt, '█', stPrompt)
	}
}

func logStyle(line string) styleID {
	switch {
	case strings.HasPrefix(line, "[ERR]"):
		return stLogErr
	case strings.HasPrefix(line, "[WARN]"), strings.HasPrefix(line, "[CD]"):
		return stLogWarn
	case strings.HasPrefix(line, "[OK]"), strings.HasPrefix(line, "[LVL]"):
		return stLogOK
	case strings.HasPrefix(line, "> "):
		return stPrompt
	}
	return stBody
}

func (m Model) drawProfile(c *canvas, r rect) {
	p := m.engine.State().Player
	lines := []string{
		"OPERATOR PROFILE",
		"",
		fmt.Sprintf("Level    %d", p.Level),
		fmt.Sprintf("XP       %d / %d", p.XP, p.Level*terminal.LevelThreshold),
		fmt.Sprintf("Credits  %d", p.Credits),
		fmt.Sprintf("Trace    %d / %d", p.Trace, terminal.MaxTrace),
	}
	for i, line := range lines {
		if i >= r.h {
			break
		}
		st := stBody
		if i == 0 {
			st = stLogOK
		}
		c.text(r.x, r.y+i, line, st, r.w)
	}
}

func (m Model) drawSummary(c *canvas, r rect, key types.AppKey) {
	d, ok := m.apps.Get(key)
	if !ok {
		return
	}
	lines := append(wrap(d.Summary, r.w), "", "[offline] module not deployed on this node.")
	for i, line := range lines {
		if i >= r.h {
			break
		}
		c.text(r.x, r.y+i, line, stBody, r.w)
	}
}

// wrap breaks s on spaces into lines of at most width runes
func wrap(s string, width int) []string {
	if width <= 0 {
		return nil
	}
	var lines []string
	var cur []rune
	for _, word := range strings.Fields(s) {
		w := []rune(word)
		if len(cur) > 0 && len(cur)+1+len(w) > width {
			lines = append(lines, string(cur))
			cur = cur[:0]
		}
		if len(cur) > 0 {
			cur = append(cur, ' ')
		}
		cur = append(cur, w...)
	}
	if len(cur) > 0 {
		lines = append(lines, string(cur))
	}
	return lines
}

func (m Model) drawTaskbar(c *canvas, windows []types.Window) {
	top := m.layout.h - taskbarRows
	if top < 0 {
		return
	}
	c.fill(0, top, c.w, taskbarRows, stTaskbar)

	focused, _ := m.topVisible()
	slots := m.layout.taskbarSlots(windows, m.apps)
	for i, s := range slots {
		st := stTaskbarItem
		switch {
		case windows[i].Minimized:
			st = stTaskbarMinimized
		case s.app == focused:
			st = stTaskbarActive
		}
		c.text(s.r.x, s.r.y, s.label, st, s.r.w)
	}

	help := "tab cycle  ^w close  ^n min  ^x max  ^c quit"
	if n := len([]rune(help)); n < c.w {
		c.text(c.w-n-1, top+taskbarRows-1, help, stTaskbar, n)
	}
}
