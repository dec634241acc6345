package ui

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/browser"
	"go.uber.org/zap"

	"github.com/five82/whattocook/internal/meals"
	"github.com/five82/whattocook/internal/prefs"
	"github.com/five82/whattocook/internal/screen"
	"github.com/five82/whattocook/internal/state"
)

const defaultThemeName = "Nightfox"

// Options configures the UI.
type Options struct {
	Context context.Context
	// Mailbox is the executor every store posts to. The model drains it.
	Mailbox *state.Mailbox
	Logger  *zap.Logger
	// Shared is handed to the app store. Nil Ingredients and Remember are
	// filled from the preferences.
	Shared    screen.Shared
	Prefs     prefs.Prefs
	PrefsPath string
	// Opener opens external links. Nil uses the system browser.
	Opener Opener
}

// Model is the root application state for Bubble Tea.
type Model struct {
	mailbox  *state.Mailbox
	app      *screen.AppStore
	saved    *meals.SavedList
	stack    *navStack
	settings *settings

	keys     keyMap
	theme    Theme
	spinner  spinner.Model
	width    int
	height   int
	ready    bool
	showHelp bool
}

// New creates a new Bubble Tea model and the app store behind it.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	mb := opts.Mailbox
	if mb == nil {
		mb = state.NewMailbox(0)
	}
	open := opts.Opener
	if open == nil {
		open = browser.OpenURL
	}

	themeName := opts.Prefs.Theme
	if themeName == "" {
		themeName = defaultThemeName
	}

	set := &settings{path: opts.PrefsPath, prefs: opts.Prefs, log: log.Named("prefs")}
	shared := opts.Shared
	if shared.Ingredients == nil {
		shared.Ingredients = screen.RestoreSelection(screen.DefaultIngredients(), opts.Prefs.Ingredients)
	}
	if shared.Remember == nil {
		shared.Remember = set.rememberIngredients
	}

	stack := &navStack{open: open, log: log.Named("nav")}
	rt := state.Runtime{Exec: mb, Context: ctx, Logger: log}
	app := screen.NewAppStore(rt, screen.AppEnv{
		Shared: shared,
		Root:   rootNav{stack: stack},
		Menu:   menuNav{stack: stack},
	})

	return Model{
		mailbox:  mb,
		app:      app,
		saved:    shared.Saved,
		stack:    stack,
		settings: set,
		keys:     DefaultKeyMap(),
		theme:    GetTheme(themeName),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		listen(m.mailbox),
		m.spinner.Tick,
		func() tea.Msg { return launchMsg{} },
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.stack.resize(contentSize(m.width, m.height))
		return m, nil

	case launchMsg:
		m.app.Dispatch(screen.Launched{})
		return m, nil

	case runMsg:
		msg()
		return m, listen(m.mailbox)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.stack.modal != nil {
		return m.stack.modal.View(m.theme, m.width, m.height)
	}

	return m.renderMain()
}

// handleKey routes a key to the help overlay, the error modal, the global
// bindings or the top screen, in that order.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.stack.modal != nil {
		modal, cmd, done := m.stack.modal.Update(msg, m.keys)
		if done {
			m.stack.modal = nil
		} else {
			m.stack.modal = modal
		}
		return m, cmd
	}

	top := m.stack.top()
	if top != nil && top.Capturing() {
		return m, top.Update(msg, m.keys)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.settings.setTheme(m.theme.Name)
		return m, nil

	case key.Matches(msg, m.keys.Back):
		m.stack.pop()
		return m, nil
	}

	if top == nil {
		return m, nil
	}
	return m, top.Update(msg, m.keys)
}

// renderMain renders the header, the command bar and the top screen.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	b.WriteString(m.renderContent())

	return b.String()
}

// renderContent renders the top screen inside a titled box.
func (m Model) renderContent() string {
	height := max(m.height-chromeHeight, 0)
	top := m.stack.top()
	if top == nil {
		return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, m.spinner.View())
	}

	width, inner := contentSize(m.width, m.height)
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	r := renderCtx{
		theme:   m.theme,
		styles:  styles,
		width:   width,
		height:  inner,
		spinner: m.spinner.View(),
	}
	return m.renderTitledBox(top.Title(), top.View(r), m.width, height, true)
}

// Messages

// launchMsg starts the session once the program is running.
type launchMsg struct{}

// runMsg is a closure posted to the mailbox by a finished task.
type runMsg func()

// Commands

// listen waits for the next closure posted to the mailbox. It returns nil
// once the mailbox is closed, which ends the listening loop.
func listen(mb *state.Mailbox) tea.Cmd {
	return func() tea.Msg {
		select {
		case fn := <-mb.C():
			return runMsg(fn)
		case <-mb.Done():
			return nil
		}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, opts Options) error {
	if opts.Context == nil {
		opts.Context = ctx
	}
	if opts.Opener == nil {
		// xdg-open and friends print to the terminal the UI owns.
		browser.Stdout = io.Discard
		browser.Stderr = io.Discard
	}

	m := New(opts)
	defer m.mailbox.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
