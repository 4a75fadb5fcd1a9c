// Package tui provides the terminal user interface implementation using
// the Bubbletea framework.
package tui

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kezou/pacer/internal/dispatch"
	"github.com/kezou/pacer/internal/domain"
	"github.com/kezou/pacer/internal/engine"
	"github.com/kezou/pacer/internal/render"
)

// Adjustment steps for the keyboard-driven knobs.
const (
	rateStep   = 10
	brightStep = 10
	glowStep   = 10
)

// tickMsg is sent every second to refresh countdown displays.
type tickMsg time.Time

// engineMsg wraps an engine event forwarded into the Bubbletea loop.
type engineMsg struct {
	event engine.Event
}

// documentsMsg carries the library listing fetched for the menu.
type documentsMsg struct {
	docs []*domain.Document
	err  error
}

// statsMsg carries the aggregates fetched for the stats overlay.
type statsMsg struct {
	period   *domain.PeriodStats
	sessions []*domain.ReadingSession
	err      error
}

// Callbacks connects the model to the services behind it. Any callback
// may be nil; the corresponding surface then degrades gracefully.
type Callbacks struct {
	// FetchDocuments lists the library for the menu.
	FetchDocuments func() ([]*domain.Document, error)

	// OpenDocument loads a library document into the reader and
	// records the access.
	OpenDocument func(doc *domain.Document) error

	// FetchStats loads period aggregates and recent sessions for the
	// stats overlay.
	FetchStats func() (*domain.PeriodStats, []*domain.ReadingSession, error)

	// SaveBindings persists the binding table after a recapture.
	SaveBindings func(bindings dispatch.Map) error

	// SaveSettings persists display settings after a change.
	SaveSettings func(settings render.Settings) error
}

// Model is the Bubbletea model for the reader.
type Model struct {
	engine     *engine.Engine
	dispatcher *dispatch.Dispatcher
	callbacks  Callbacks

	settings render.Settings
	styles   styleSet
	keys     keyMap

	snap engine.Snapshot
	text string

	width  int
	height int

	editing bool
	editor  textarea.Model

	focusPanel    bool
	customEditing bool
	customInput   textinput.Model
	customErr     string

	menuOpen     bool
	sleepEditing bool
	sleepInput   textinput.Model
	sleepErr     string
	docsLoading  bool
	documents    []*domain.Document
	docCursor    int
	menuErr      string

	bindingsOpen  bool
	bindingCursor int

	statsOpen     bool
	statsLoading  bool
	statsPeriod   *domain.PeriodStats
	statsSessions []*domain.ReadingSession
	statsErr      string

	help     help.Model
	progress progress.Model
	spinner  spinner.Model

	status string
}

// NewModel creates the reader model. The engine does not need to be
// started; an idle engine still answers snapshots, which keeps the
// model testable.
func NewModel(eng *engine.Engine, dispatcher *dispatch.Dispatcher, settings render.Settings, text string, callbacks Callbacks) Model {
	editor := textarea.New()
	editor.Placeholder = "Paste or type the text to read..."
	editor.CharLimit = 0

	customInput := textinput.New()
	customInput.Placeholder = "minutes"
	customInput.CharLimit = 4
	customInput.Width = 8

	sleepInput := textinput.New()
	sleepInput.Placeholder = "minutes"
	sleepInput.CharLimit = 4
	sleepInput.Width = 8

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	styles := buildStyles(settings)
	m := Model{
		engine:      eng,
		dispatcher:  dispatcher,
		callbacks:   callbacks,
		settings:    settings,
		styles:      styles,
		keys:        newKeyMap(dispatcher.Bindings()),
		text:        text,
		editor:      editor,
		customInput: customInput,
		sleepInput:  sleepInput,
		help:        help.New(),
		progress:    progress.New(progress.WithGradient(styles.FaintHex, styles.Accent)),
		spinner:     sp,
	}
	m.snap = eng.Snapshot()
	return m
}

// Init starts the periodic refresh tick.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.progress.Width = msg.Width - 8
		if m.progress.Width > 60 {
			m.progress.Width = 60
		}
		if m.progress.Width < 10 {
			m.progress.Width = 10
		}
		m.editor.SetWidth(max(msg.Width-8, 20))
		m.editor.SetHeight(max(msg.Height/2, 5))
		return m, nil

	case tickMsg:
		m.snap = m.engine.Snapshot()
		return m, tickCmd()

	case engineMsg:
		m.snap = msg.event.Snapshot
		if msg.event.Type == engine.EventTextChanged && !sameWords(domain.Tokenize(m.text), m.snap.Words) {
			m.text = strings.Join(m.snap.Words, " ")
		}
		return m, nil

	case documentsMsg:
		m.docsLoading = false
		if msg.err != nil {
			m.menuErr = msg.err.Error()
			return m, nil
		}
		m.documents = msg.docs
		if m.docCursor >= len(m.documents) {
			m.docCursor = 0
		}
		return m, nil

	case statsMsg:
		m.statsLoading = false
		if msg.err != nil {
			m.statsErr = msg.err.Error()
			return m, nil
		}
		m.statsPeriod = msg.period
		m.statsSessions = msg.sessions
		return m, nil

	case spinner.TickMsg:
		if !m.docsLoading && !m.statsLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey routes one key event. Text-entry surfaces come before the
// dispatcher so typing never triggers reader actions; esc always closes
// the topmost surface.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := keyString(msg)
	m.status = ""

	if keyStr == "ctrl+c" {
		return m, tea.Quit
	}

	// an armed capture swallows the next key wholesale
	if _, waiting := m.dispatcher.Capturing(); waiting {
		if keyStr == "esc" {
			m.dispatcher.CancelCapture()
			return m, nil
		}
		result := m.dispatcher.HandleKey(keyStr, false)
		if result.Captured {
			m.keys = newKeyMap(m.dispatcher.Bindings())
			m.persistBindings()
		}
		return m, nil
	}

	if keyStr == "esc" {
		return m.closeTopSurface()
	}

	if m.editing {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}
	if m.sleepEditing {
		return m.handleSleepKey(msg, keyStr)
	}
	if m.customEditing {
		return m.handleCustomKey(msg, keyStr)
	}
	if m.menuOpen {
		return m.handleMenuKey(keyStr)
	}
	if m.bindingsOpen {
		return m.handleBindingsKey(keyStr)
	}
	if m.statsOpen {
		return m.handleStatsKey(keyStr)
	}
	if m.focusPanel {
		if next, cmd, handled := m.focusPanelKey(keyStr); handled {
			return next, cmd
		}
	}

	result := m.dispatcher.HandleKey(keyStr, false)
	if result.Matched {
		return m.applyAction(result.Action)
	}
	if keyStr == "q" {
		return m, tea.Quit
	}
	return m, nil
}

// closeTopSurface dismisses the innermost open surface. Leaving the
// editor commits its buffer to the engine.
func (m Model) closeTopSurface() (tea.Model, tea.Cmd) {
	switch {
	case m.editing:
		m.editing = false
		m.editor.Blur()
		m.text = m.editor.Value()
		m.engine.SetText(m.text)
		m.snap = m.engine.Snapshot()
	case m.sleepEditing:
		m.sleepEditing = false
		m.sleepInput.Blur()
		m.sleepErr = ""
	case m.customEditing:
		m.customEditing = false
		m.customInput.Blur()
		m.customErr = ""
	case m.menuOpen:
		m.menuOpen = false
	case m.bindingsOpen:
		m.bindingsOpen = false
	case m.statsOpen:
		m.statsOpen = false
	case m.focusPanel:
		m.focusPanel = false
	case m.help.ShowAll:
		m.help.ShowAll = false
	}
	return m, nil
}

func (m Model) handleSleepKey(msg tea.KeyMsg, keyStr string) (tea.Model, tea.Cmd) {
	if keyStr == "enter" {
		minutes, err := strconv.Atoi(strings.TrimSpace(m.sleepInput.Value()))
		if err != nil || minutes <= 0 {
			m.sleepErr = "enter a whole number of minutes"
			return m, nil
		}
		if err := m.engine.SetSleepTimer(time.Duration(minutes) * time.Minute); err != nil {
			m.sleepErr = "enter a whole number of minutes"
			return m, nil
		}
		m.sleepEditing = false
		m.sleepInput.Blur()
		m.sleepInput.Reset()
		m.sleepErr = ""
		m.snap = m.engine.Snapshot()
		return m, nil
	}
	var cmd tea.Cmd
	m.sleepInput, cmd = m.sleepInput.Update(msg)
	return m, cmd
}

func (m Model) handleCustomKey(msg tea.KeyMsg, keyStr string) (tea.Model, tea.Cmd) {
	if keyStr == "enter" {
		if err := m.engine.SetCustomFocusDuration(strings.TrimSpace(m.customInput.Value())); err != nil {
			m.customErr = "length must be a positive number of minutes"
			return m, nil
		}
		m.customEditing = false
		m.customInput.Blur()
		m.customInput.Reset()
		m.customErr = ""
		m.snap = m.engine.Snapshot()
		return m, nil
	}
	var cmd tea.Cmd
	m.customInput, cmd = m.customInput.Update(msg)
	return m, cmd
}

// handleMenuKey drives the sleep-timer and library section of the menu.
// Only the menu's own keys and the menu toggle are honored while it is
// open.
func (m Model) handleMenuKey(keyStr string) (tea.Model, tea.Cmd) {
	switch keyStr {
	case "up", "k":
		if m.docCursor > 0 {
			m.docCursor--
		}
	case "down", "j":
		if m.docCursor < len(m.documents)-1 {
			m.docCursor++
		}
	case "enter":
		return m.openSelectedDocument()
	case "t":
		m.sleepEditing = true
		m.sleepErr = ""
		return m, m.sleepInput.Focus()
	case "c":
		m.engine.CancelSleepTimer()
		m.snap = m.engine.Snapshot()
	default:
		if action, ok := m.dispatcher.Bindings().Resolve(keyStr); ok && action == dispatch.ActionToggleExternalMenu {
			m.menuOpen = false
		}
	}
	return m, nil
}

func (m Model) openSelectedDocument() (tea.Model, tea.Cmd) {
	if m.docCursor < 0 || m.docCursor >= len(m.documents) {
		return m, nil
	}
	doc := m.documents[m.docCursor]
	if m.callbacks.OpenDocument != nil {
		if err := m.callbacks.OpenDocument(doc); err != nil {
			m.menuErr = err.Error()
			return m, nil
		}
	} else {
		m.engine.LoadDocument(doc)
	}
	m.text = doc.Body
	m.menuOpen = false
	m.snap = m.engine.Snapshot()
	return m, nil
}

func (m Model) handleBindingsKey(keyStr string) (tea.Model, tea.Cmd) {
	actions := dispatch.Actions()
	switch keyStr {
	case "up", "k":
		if m.bindingCursor > 0 {
			m.bindingCursor--
		}
	case "down", "j":
		if m.bindingCursor < len(actions)-1 {
			m.bindingCursor++
		}
	case "enter":
		if err := m.dispatcher.BeginCapture(actions[m.bindingCursor]); err != nil {
			m.status = err.Error()
		}
	default:
		if action, ok := m.dispatcher.Bindings().Resolve(keyStr); ok && action == dispatch.ActionToggleBindingEditor {
			m.bindingsOpen = false
		}
	}
	return m, nil
}

func (m Model) handleStatsKey(keyStr string) (tea.Model, tea.Cmd) {
	if action, ok := m.dispatcher.Bindings().Resolve(keyStr); ok && action == dispatch.ActionToggleStats {
		m.statsOpen = false
	}
	return m, nil
}

// focusPanelKey handles the panel's phase keys. Anything else falls
// through to normal dispatch, so reading keys keep working while the
// panel is open.
func (m Model) focusPanelKey(keyStr string) (Model, tea.Cmd, bool) {
	switch keyStr {
	case "1":
		m.switchPhase(domain.PhaseFocus)
	case "2":
		m.switchPhase(domain.PhaseShortBreak)
	case "3":
		m.switchPhase(domain.PhaseLongBreak)
	case "4":
		m.switchPhase(domain.PhaseCustom)
	case "c":
		m.customEditing = true
		m.customErr = ""
		return m, m.customInput.Focus(), true
	default:
		return m, nil, false
	}
	return m, nil, true
}

func (m *Model) switchPhase(phase domain.FocusPhase) {
	if err := m.engine.SwitchPhase(phase); err != nil {
		m.status = err.Error()
		return
	}
	m.snap = m.engine.Snapshot()
}

// applyAction executes one dispatched reader action.
func (m Model) applyAction(action dispatch.Action) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch action {
	case dispatch.ActionTogglePlayback:
		m.engine.TogglePlayback()
	case dispatch.ActionReset:
		m.engine.ResetPlayback()
	case dispatch.ActionSeekPrevious:
		m.engine.SeekBy(-1)
	case dispatch.ActionSeekNext:
		m.engine.SeekBy(1)
	case dispatch.ActionRateUp:
		m.engine.AdjustRate(rateStep)
	case dispatch.ActionRateDown:
		m.engine.AdjustRate(-rateStep)
	case dispatch.ActionFontUp:
		m.settings.AdjustFontScale(1)
		m.applySettings()
	case dispatch.ActionFontDown:
		m.settings.AdjustFontScale(-1)
		m.applySettings()
	case dispatch.ActionBrightnessUp:
		m.settings.AdjustBrightness(brightStep)
		m.applySettings()
	case dispatch.ActionBrightnessDown:
		m.settings.AdjustBrightness(-brightStep)
		m.applySettings()
	case dispatch.ActionGlowUp:
		m.settings.AdjustGlow(glowStep)
		m.applySettings()
	case dispatch.ActionGlowDown:
		m.settings.AdjustGlow(-glowStep)
		m.applySettings()
	case dispatch.ActionToggleBold:
		m.settings.ToggleBold()
		m.applySettings()
	case dispatch.ActionCycleFont:
		m.settings.CycleFont()
		m.applySettings()
	case dispatch.ActionCycleColor:
		m.settings.CycleTheme()
		m.applySettings()
	case dispatch.ActionCycleMode:
		m.settings.CycleMode(1)
		m.applySettings()
	case dispatch.ActionCycleModeBack:
		m.settings.CycleMode(-1)
		m.applySettings()
	case dispatch.ActionToggleEditMode:
		m.closeSurfaces()
		m.editing = true
		m.editor.SetValue(m.text)
		cmd = m.editor.Focus()
	case dispatch.ActionClearText:
		m.text = ""
		m.engine.SetText("")
	case dispatch.ActionToggleFocusPanel:
		m.focusPanel = !m.focusPanel
	case dispatch.ActionToggleExternalMenu:
		return m.openMenu()
	case dispatch.ActionToggleBindingEditor:
		m.closeSurfaces()
		m.bindingsOpen = true
		m.bindingCursor = 0
	case dispatch.ActionToggleStats:
		return m.openStats()
	case dispatch.ActionToggleHelp:
		m.help.ShowAll = !m.help.ShowAll
	}

	m.snap = m.engine.Snapshot()
	return m, cmd
}

func (m Model) openMenu() (tea.Model, tea.Cmd) {
	if m.menuOpen {
		m.menuOpen = false
		return m, nil
	}
	m.closeSurfaces()
	m.menuOpen = true
	m.menuErr = ""
	m.docCursor = 0

	if m.callbacks.FetchDocuments == nil {
		return m, nil
	}
	m.docsLoading = true
	fetch := m.callbacks.FetchDocuments
	return m, tea.Batch(
		func() tea.Msg {
			docs, err := fetch()
			return documentsMsg{docs: docs, err: err}
		},
		m.spinner.Tick,
	)
}

func (m Model) openStats() (tea.Model, tea.Cmd) {
	if m.statsOpen {
		m.statsOpen = false
		return m, nil
	}
	m.closeSurfaces()
	m.statsOpen = true
	m.statsErr = ""

	if m.callbacks.FetchStats == nil {
		return m, nil
	}
	m.statsLoading = true
	fetch := m.callbacks.FetchStats
	return m, tea.Batch(
		func() tea.Msg {
			period, sessions, err := fetch()
			return statsMsg{period: period, sessions: sessions, err: err}
		},
		m.spinner.Tick,
	)
}

// closeSurfaces dismisses every open surface before another one opens.
func (m *Model) closeSurfaces() {
	m.menuOpen = false
	m.bindingsOpen = false
	m.statsOpen = false
	m.focusPanel = false
	m.sleepEditing = false
	m.customEditing = false
}

// applySettings rebuilds the styles and persists the settings.
func (m *Model) applySettings() {
	m.styles = buildStyles(m.settings)
	width := m.progress.Width
	m.progress = progress.New(progress.WithGradient(m.styles.FaintHex, m.styles.Accent))
	m.progress.Width = width
	if m.callbacks.SaveSettings == nil {
		return
	}
	if err := m.callbacks.SaveSettings(m.settings); err != nil {
		m.status = "settings not saved: " + err.Error()
	}
}

func (m *Model) persistBindings() {
	if m.callbacks.SaveBindings == nil {
		return
	}
	if err := m.callbacks.SaveBindings(m.dispatcher.Bindings()); err != nil {
		m.status = "bindings not saved: " + err.Error()
	}
}

// keyString converts a key event into the dispatcher's vocabulary.
func keyString(msg tea.KeyMsg) string {
	s := msg.String()
	if s == " " {
		return "space"
	}
	return s
}

func sameWords(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
