package cli

import (
	"context"
	"fmt"
	"strings"

	"dayboard/internal/cli/formatter"
	"dayboard/internal/daykey"
	"dayboard/internal/domain"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

type boardFocus int

const (
	focusList boardFocus = iota
	focusReflection
)

// boardRow is one selectable line: a task due today or a checklist item.
type boardRow struct {
	isTask bool
	title  string
	done   bool
}

// boardLoadedMsg signals that the day's data has been (re)loaded.
type boardLoadedMsg struct {
	data formatter.DayData
	err  error
}

// boardModel is the interactive single-day view. The reflection editor feeds
// the debounced saver on every edit; everything else mutates immediately and
// reloads.
type boardModel struct {
	app    *App
	date   daykey.Date
	rows   []boardRow
	rating domain.Option[domain.PerformanceRating]

	cursor int
	focus  boardFocus
	editor textarea.Model
	width  int
	err    error
}

func newBoardModel(app *App, date daykey.Date) *boardModel {
	editor := textarea.New()
	editor.Placeholder = "How was the day?"
	editor.SetHeight(5)
	editor.CharLimit = 0

	return &boardModel{app: app, date: date, editor: editor}
}

func (m *boardModel) Init() tea.Cmd {
	return m.load()
}

func (m *boardModel) load() tea.Cmd {
	app, date := m.app, m.date
	return func() tea.Msg {
		data, err := loadDayData(context.Background(), app, date)
		return boardLoadedMsg{data: data, err: err}
	}
}

func (m *boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case boardLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.rows = m.rows[:0]
		for _, t := range msg.data.TasksDue {
			m.rows = append(m.rows, boardRow{isTask: true, title: t.Title, done: t.Status})
		}
		for _, item := range msg.data.Checklist {
			m.rows = append(m.rows, boardRow{title: item.Text, done: item.IsComplete})
		}
		if m.cursor >= len(m.rows) {
			m.cursor = 0
		}
		m.rating = msg.data.Rating
		// Keep in-progress edits over the cached value.
		if !m.editor.Focused() {
			m.editor.SetValue(msg.data.Reflection.OrZero().Content)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.editor.SetWidth(msg.Width - 4)
		return m, nil

	case tea.KeyMsg:
		if m.focus == focusReflection {
			return m.updateReflection(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m *boardModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Digit keys rate the day directly; 0 stands for 10.
	if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
		score := int(key[0] - '0')
		if score == 0 {
			score = 10
		}
		return m, m.rate(score)
	}

	switch key {
	case "q", "ctrl+c":
		m.app.Saver.Flush()
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "left", "h":
		return m.gotoDate(m.date.AddDays(-1))
	case "right", "l":
		return m.gotoDate(m.date.AddDays(1))
	case "t":
		return m.gotoDate(daykey.Today())
	case " ":
		if m.cursor < len(m.rows) {
			return m, m.toggle(m.rows[m.cursor])
		}
	case "e", "tab":
		m.focus = focusReflection
		return m, m.editor.Focus()
	}
	return m, nil
}

func (m *boardModel) updateReflection(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "tab":
		m.focus = focusList
		m.editor.Blur()
		return m, nil
	case "ctrl+c":
		m.app.Saver.Flush()
		return m, tea.Quit
	}

	var cmd tea.Cmd
	before := m.editor.Value()
	m.editor, cmd = m.editor.Update(msg)
	if after := m.editor.Value(); after != before {
		m.app.Saver.Edit(m.date, after)
	}
	return m, cmd
}

// gotoDate flushes any pending reflection edit before switching days.
func (m *boardModel) gotoDate(date daykey.Date) (tea.Model, tea.Cmd) {
	m.app.Saver.Flush()
	m.date = date
	m.cursor = 0
	return m, m.load()
}

func (m *boardModel) toggle(row boardRow) tea.Cmd {
	app, date := m.app, m.date
	return func() tea.Msg {
		ctx := context.Background()
		var err error
		if row.isTask {
			err = app.Mutations.ToggleTaskStatus(ctx, row.title)
		} else {
			err = app.Mutations.ToggleDaily(ctx, row.title)
		}
		if err != nil {
			return boardLoadedMsg{err: err}
		}
		data, err := loadDayData(ctx, app, date)
		return boardLoadedMsg{data: data, err: err}
	}
}

func (m *boardModel) rate(score int) tea.Cmd {
	app, date := m.app, m.date
	return func() tea.Msg {
		ctx := context.Background()
		if err := app.Mutations.SetPerformanceRating(ctx, date, score); err != nil {
			return boardLoadedMsg{err: err}
		}
		data, err := loadDayData(ctx, app, date)
		return boardLoadedMsg{data: data, err: err}
	}
}

func (m *boardModel) View() string {
	var b strings.Builder

	b.WriteString("\n  " + formatter.Header(formatter.HumanDate(m.date)+" · "+m.date.Key()) + "\n\n")

	if m.err != nil {
		b.WriteString("  " + formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n\n")
	}

	if len(m.rows) == 0 {
		b.WriteString("  " + formatter.Dim("Nothing due and no checklist items.") + "\n")
	}
	for i, row := range m.rows {
		cursor := "  "
		if m.focus == focusList && i == m.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
		}
		icon := formatter.StyleBlue.Render("○")
		if row.done {
			icon = formatter.StyleGreen.Render("✓")
		}
		label := row.title
		if !row.isTask {
			label = label + " " + formatter.Dim("(daily)")
		}
		b.WriteString(fmt.Sprintf("  %s%s %s\n", cursor, icon, label))
	}

	b.WriteString("\n  ")
	if r, ok := m.rating.Get(); ok {
		b.WriteString(formatter.ScoreBadge(r.Score))
	} else {
		b.WriteString(formatter.Dim("not rated, press 1-9 or 0 for 10"))
	}
	b.WriteString("\n\n  " + formatter.Dim("Reflection") + "\n")
	b.WriteString(m.editor.View() + "\n\n")

	help := "space toggle · ←/→ day · t today · 1-9/0 rate · e reflect · q quit"
	if m.focus == focusReflection {
		help = "esc done editing · saves automatically"
	}
	b.WriteString("  " + formatter.Dim(help) + "\n")

	return b.String()
}
