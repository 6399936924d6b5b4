package shell

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/RootAccess/backend/internal/domain/terminal"
	"github.com/GriffinCanCode/RootAccess/backend/internal/domain/window"
	"github.com/GriffinCanCode/RootAccess/backend/internal/shared/types"
	"github.com/GriffinCanCode/RootAccess/backend/internal/shared/utils"
)

// AppCatalog is the launcher list
type AppCatalog interface {
	window.AppCatalog
	Get(key types.AppKey) (types.AppDescriptor, bool)
	List() []types.AppDescriptor
}

const tickInterval = time.Second

type tickMsg time.Time

// Model is the bubbletea model for one local desktop
type Model struct {
	ctx     context.Context
	apps    AppCatalog
	windows *window.Manager
	engine  *terminal.Engine
	input   textinput.Model
	theme   Theme
	logger  *zap.Logger
	layout  layout
}

// Option configures a Model
type Option func(*config)

type config struct {
	ctx         context.Context
	theme       Theme
	logger      *zap.Logger
	engineOpts  []terminal.Option
	initialApps []types.AppKey
}

// WithContext sets the context passed to terminal executions
func WithContext(ctx context.Context) Option {
	return func(c *config) { c.ctx = ctx }
}

// WithTheme overrides the color theme
func WithTheme(t Theme) Option {
	return func(c *config) { c.theme = t }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithClock overrides the terminal clock
func WithClock(clock terminal.Clock) Option {
	return func(c *config) { c.engineOpts = append(c.engineOpts, terminal.WithClock(clock)) }
}

// WithOpen opens apps at startup, in order
func WithOpen(keys ...types.AppKey) Option {
	return func(c *config) { c.initialApps = append(c.initialApps, keys...) }
}

// New builds a desktop model over apps and commands
func New(apps AppCatalog, commands terminal.Catalog, opts ...Option) Model {
	cfg := config{ctx: context.Background(), theme: DefaultTheme(), logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "help"
	input.CharLimit = utils.MaxCommandLineLength

	m := Model{
		ctx:     cfg.ctx,
		apps:    apps,
		windows: window.NewManager(apps),
		engine:  terminal.NewEngine(commands, append(cfg.engineOpts, terminal.WithLogger(cfg.logger))...),
		input:   input,
		theme:   cfg.theme,
		logger:  cfg.logger,
	}
	for _, key := range cfg.initialApps {
		if _, err := m.windows.Open(key); err != nil {
			m.logger.Warn("Skipping unknown app", zap.String("app", string(key)))
		}
	}
	m.syncInput()
	return m
}

// Windows returns the window manager
func (m Model) Windows() *window.Manager { return m.windows }

// Engine returns the terminal engine
func (m Model) Engine() *terminal.Engine { return m.engine }

// Init starts the redraw ticker that keeps cooldown countdowns current
func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update handles one message
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = layout{w: msg.Width, h: msg.Height}
		return m, nil

	case tickMsg:
		return m, tick()

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, m.syncInput()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	focused, _ := m.topVisible()

	switch msg.String() {
	case "ctrl+c":
		return *m, tea.Quit
	case "tab":
		if order := m.windows.State().RenderOrder(); len(order) > 1 {
			m.apply(m.windows.Focus(order[0].App))
		}
		return *m, m.syncInput()
	case "ctrl+w":
		if focused != "" {
			m.apply(m.windows.Close(focused))
		}
		return *m, m.syncInput()
	case "ctrl+n":
		if focused != "" {
			m.apply(m.windows.Minimize(focused))
		}
		return *m, m.syncInput()
	case "ctrl+x":
		if focused != "" {
			m.apply(m.windows.Maximize(focused, m.layout.viewport()))
		}
		return *m, m.syncInput()
	}

	if focused == types.AppTerminal {
		if msg.Type == tea.KeyEnter {
			line := m.input.Value()
			m.input.Reset()
			m.engine.Execute(m.ctx, line)
			return *m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return *m, cmd
	}

	switch s := msg.String(); {
	case s == "q":
		return *m, tea.Quit
	case len(s) == 1 && s[0] >= '1' && s[0] <= '9':
		list := m.apps.List()
		if i := int(s[0] - '1'); i < len(list) {
			m.apply(m.windows.Open(list[i].Key))
		}
		return *m, m.syncInput()
	}
	return *m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionMotion:
		m.windows.ContinueDrag(msg.X*CellWidth, msg.Y*CellHeight)
		return
	case tea.MouseActionRelease:
		m.windows.EndDrag()
		return
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}

	h := m.layout.hitTest(m.windows.State(), m.apps, msg.X, msg.Y)
	switch h.kind {
	case hitLauncher, hitTaskbar:
		m.apply(m.windows.Open(h.app))
	case hitTitle:
		m.apply(m.windows.BeginDrag(h.app, msg.X*CellWidth, msg.Y*CellHeight))
	case hitWindow:
		m.apply(m.windows.Focus(h.app))
	case hitButton:
		switch h.button {
		case buttonMinimize:
			m.apply(m.windows.Minimize(h.app))
		case buttonMaximize:
			m.apply(m.windows.Maximize(h.app, m.layout.viewport()))
		case buttonClose:
			m.apply(m.windows.Close(h.app))
		}
	}
}

func (m *Model) apply(_ window.State, err error) {
	if err != nil {
		m.logger.Warn("Window operation rejected", zap.Error(err))
	}
}

// topVisible returns the highest window that is not minimized. Keys go
// there even when a minimized window holds focus.
func (m Model) topVisible() (types.AppKey, bool) {
	order := m.windows.State().RenderOrder()
	if len(order) == 0 {
		return "", false
	}
	return order[len(order)-1].App, true
}

// syncInput gives the prompt keyboard focus only while the terminal is on top
func (m *Model) syncInput() tea.Cmd {
	if top, _ := m.topVisible(); top == types.AppTerminal {
		return m.input.Focus()
	}
	m.input.Blur()
	return nil
}
