package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/kezou/pacer/internal/dispatch"
	"github.com/kezou/pacer/internal/domain"
	"github.com/kezou/pacer/internal/render"
)

// View renders the whole screen.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var sections []string
	sections = append(sections, m.viewHeader(), "")

	switch {
	case m.editing:
		sections = append(sections, m.viewEditor())
	case m.menuOpen || m.sleepEditing:
		sections = append(sections, m.viewMenu())
	case m.bindingsOpen:
		sections = append(sections, m.viewBindings())
	case m.statsOpen:
		sections = append(sections, m.viewStats())
	default:
		sections = append(sections, m.viewReading())
		if m.focusPanel {
			sections = append(sections, "", m.viewFocusPanel())
		}
	}

	sections = append(sections, "", m.viewFooter())

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) viewHeader() string {
	parts := []string{
		m.styles.Title.Render("pacer"),
		m.styles.Label.Render(fmt.Sprintf("%d wpm", m.snap.Rate)),
	}
	if m.snap.PhaseRunning {
		parts = append(parts, m.styles.Word.Render(fmt.Sprintf("%s %s",
			domain.PhaseLabel(m.snap.Phase), formatDuration(m.snap.PhaseRemaining))))
	}
	if m.snap.SleepActive {
		parts = append(parts, m.styles.Faint.Render("sleep "+formatDuration(m.snap.SleepRemaining)))
	}
	if m.status != "" {
		parts = append(parts, m.styles.Error.Render(m.status))
	}
	return strings.Join(parts, m.styles.Faint.Render("  ·  "))
}

// viewReading renders the word area, progress bar and position. Solo
// mode at full scale swaps the word line for block glyphs.
func (m Model) viewReading() string {
	if len(m.snap.Words) == 0 {
		bindings := m.dispatcher.Bindings()
		hint := fmt.Sprintf("no text loaded · press %s to paste text or %s to open the menu",
			bindings.Key(dispatch.ActionToggleEditMode),
			bindings.Key(dispatch.ActionToggleExternalMenu))
		return m.styles.Faint.Render(hint)
	}

	var sections []string

	word, hasWord := m.snap.CurrentWord()
	if m.settings.Mode == render.ModeSolo && m.settings.FontScale >= render.MaxFontScale && hasWord {
		big := renderBigText(applyFont(word, m.settings.Font), m.styles.Highlight, m.width-4)
		sections = append(sections, lipgloss.PlaceHorizontal(m.width, lipgloss.Center, big))
	} else {
		line := renderWordLine(m.snap.Words, m.snap.Cursor, m.settings, m.styles, m.width)
		if m.settings.FontScale >= 2 {
			sections = append(sections, "", line, "")
		} else {
			sections = append(sections, line)
		}
	}

	sections = append(sections, "", m.progress.ViewAs(m.snap.Progress()))

	position := fmt.Sprintf("%d / %d", m.snap.Cursor+1, len(m.snap.Words))
	if m.snap.Cursor < 0 {
		position = fmt.Sprintf("0 / %d", len(m.snap.Words))
	}
	sections = append(sections, m.styles.Faint.Render(position))

	if !m.snap.Advancing {
		key := m.dispatcher.Bindings().Key(dispatch.ActionTogglePlayback)
		sections = append(sections, m.styles.Help.Render(fmt.Sprintf("press %s to read", key)))
	}

	return lipgloss.JoinVertical(lipgloss.Center, sections...)
}

func (m Model) viewFocusPanel() string {
	cfg := m.engine.FocusConfig()

	clockStyle := m.styles.Faint
	if m.snap.PhaseRunning {
		clockStyle = m.styles.Highlight
	}
	clock := renderBigText(formatDuration(m.snap.PhaseRemaining), clockStyle, m.width-12)

	state := "paused"
	if m.snap.PhaseRunning {
		state = "running"
	}

	var phases []string
	for i, phase := range []domain.FocusPhase{
		domain.PhaseFocus, domain.PhaseShortBreak, domain.PhaseLongBreak, domain.PhaseCustom,
	} {
		label := fmt.Sprintf("[%d] %s %dm", i+1, domain.PhaseLabel(phase), int(cfg.PhaseDuration(phase).Minutes()))
		style := m.styles.Word
		if phase == m.snap.Phase {
			style = m.styles.Selected
		}
		phases = append(phases, style.Render(label))
	}

	rows := []string{
		clock,
		m.styles.Faint.Render(domain.PhaseLabel(m.snap.Phase) + " · " + state),
		"",
		strings.Join(phases, "   "),
	}

	if m.customEditing {
		rows = append(rows, "", m.styles.Label.Render("custom minutes: ")+m.customInput.View())
		if m.customErr != "" {
			rows = append(rows, m.styles.Error.Render(m.customErr))
		}
	} else {
		rows = append(rows, "", m.styles.Help.Render("1-4 switch phase · c custom length · esc close"))
	}

	return m.styles.Panel.Render(lipgloss.JoinVertical(lipgloss.Center, rows...))
}

func (m Model) viewMenu() string {
	rows := []string{m.styles.Title.Render("Menu"), ""}

	switch {
	case m.sleepEditing:
		rows = append(rows, m.styles.Label.Render("sleep in minutes: ")+m.sleepInput.View())
		if m.sleepErr != "" {
			rows = append(rows, m.styles.Error.Render(m.sleepErr))
		}
	case m.snap.SleepActive:
		rows = append(rows, m.styles.Word.Render("sleep timer "+formatDuration(m.snap.SleepRemaining))+
			m.styles.Help.Render("   c cancel"))
	default:
		rows = append(rows, m.styles.Help.Render("t set a sleep timer"))
	}

	rows = append(rows, "", m.styles.Label.Render("Library"))
	switch {
	case m.docsLoading:
		rows = append(rows, m.spinner.View()+" loading...")
	case m.menuErr != "":
		rows = append(rows, m.styles.Error.Render(m.menuErr))
	case len(m.documents) == 0:
		rows = append(rows, m.styles.Faint.Render("library is empty"))
	default:
		for i, doc := range m.documents {
			line := fmt.Sprintf("%s (%d words)", doc.Title, doc.WordCount)
			if doc.Progress() > 0 {
				line += fmt.Sprintf(" · %d%%", int(doc.Progress()*100))
			}
			marker := "  "
			style := m.styles.Word
			if i == m.docCursor {
				marker = "> "
				style = m.styles.Selected
			}
			rows = append(rows, style.Render(marker+line))
		}
	}

	rows = append(rows, "", m.styles.Help.Render("enter open · t sleep · c cancel sleep · esc close"))
	return m.styles.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// viewBindings lays the 24 actions out in two columns.
func (m Model) viewBindings() string {
	actions := dispatch.Actions()
	bindings := m.dispatcher.Bindings()
	capturing, waiting := m.dispatcher.Capturing()

	lines := make([]string, 0, len(actions))
	for i, action := range actions {
		keyLabel := bindings.Key(action)
		if waiting && action == capturing {
			keyLabel = "press a key..."
		}
		line := fmt.Sprintf("%-22s %-14s", action.Label(), keyLabel)
		style := m.styles.Word
		if i == m.bindingCursor {
			style = m.styles.Selected
		}
		lines = append(lines, style.Render(line))
	}

	half := (len(lines) + 1) / 2
	left := lipgloss.JoinVertical(lipgloss.Left, lines[:half]...)
	right := lipgloss.JoinVertical(lipgloss.Left, lines[half:]...)
	table := lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right)

	rows := []string{
		m.styles.Title.Render("Key Bindings"),
		"",
		table,
		"",
		m.styles.Help.Render("enter rebind · esc close"),
	}
	return m.styles.Panel.Render(lipgloss.JoinVertical(lipgloss.Center, rows...))
}

func (m Model) viewStats() string {
	rows := []string{m.styles.Title.Render("Reading Statistics"), ""}

	switch {
	case m.statsLoading:
		rows = append(rows, m.spinner.View()+" loading...")
	case m.statsErr != "":
		rows = append(rows, m.styles.Error.Render(m.statsErr))
	case m.statsPeriod == nil || m.statsPeriod.Sessions == 0:
		rows = append(rows, m.styles.Faint.Render("no reading recorded yet"))
	default:
		p := m.statsPeriod
		days := int(p.To.Sub(p.From).Hours()/24) + 1
		label := fmt.Sprintf("last %d days", days)
		if days <= 1 {
			label = "today"
		}
		rows = append(rows,
			m.styles.Word.Render(fmt.Sprintf("%s: %d sessions · %d words · %s",
				label, p.Sessions, p.WordsRead, formatTotal(p.ReadingTime))),
			m.styles.Word.Render(fmt.Sprintf("average pace %.0f wpm", p.AverageRate)),
		)
		if len(m.statsSessions) > 0 {
			rows = append(rows, "", m.styles.Label.Render("Recent sessions"))
			for _, s := range m.statsSessions {
				rows = append(rows, m.styles.Faint.Render(fmt.Sprintf("%s  %d words @ %d wpm in %s",
					s.StartedAt.Format("Jan 02 15:04"), s.WordsRead, s.Rate, formatTotal(s.Duration))))
			}
		}
	}

	rows = append(rows, "", m.styles.Help.Render("esc close"))
	return m.styles.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m Model) viewEditor() string {
	rows := []string{
		m.styles.Title.Render("Edit Text"),
		"",
		m.editor.View(),
		"",
		m.styles.Help.Render("esc save and close"),
	}
	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}

func (m Model) viewFooter() string {
	return m.help.View(m.keys)
}

// formatDuration renders a countdown as MM:SS.
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// formatTotal renders an accumulated duration as 1h23m or 4m05s.
func formatTotal(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	if d >= time.Hour {
		return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
	}
	return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
}
