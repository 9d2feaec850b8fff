package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/tallyapp/tally/internal/models"
	"github.com/tallyapp/tally/internal/tracker"
)

type KeyMap struct {
	Mark    key.Binding
	Unmark  key.Binding
	Add     key.Binding
	Archive key.Binding
	Delete  key.Binding
	Quit    key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Mark: key.NewBinding(
			key.WithKeys("m", "enter", " "),
			key.WithHelp("m", "mark"),
		),
		Unmark: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "unmark"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Archive: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "archive"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Mark, k.Unmark, k.Add, k.Archive, k.Delete, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

type habitForm struct {
	Name         string
	Quantitative bool
	Series       string
}

type Model struct {
	tracker *tracker.Tracker
	list    list.Model
	keys    KeyMap
	help    help.Model

	form     *huh.Form
	formData *habitForm

	status   string
	errMsg   string
	quitting bool
	width    int
	height   int
}

func NewModel(t *tracker.Tracker) Model {
	keys := DefaultKeyMap()

	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "tally · " + t.Today()
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)

	m := Model{
		tracker: t,
		list:    l,
		keys:    keys,
		help:    help.New(),
	}
	m.reloadItems()
	return m
}

func (m *Model) reloadItems() {
	streaks := m.tracker.Streaks()
	habits := m.tracker.Habits(false)
	items := make([]list.Item, 0, len(habits))
	for _, h := range habits {
		items = append(items, item{
			habit:  h,
			count:  m.tracker.Completion(h.ID, m.tracker.Today()),
			streak: streaks[h.ID],
		})
	}
	m.list.SetItems(items)
}

func (m Model) selected() (models.Habit, bool) {
	it, ok := m.list.SelectedItem().(item)
	if !ok {
		return models.Habit{}, false
	}
	return it.habit, true
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		frameW, frameH := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-frameW, msg.Height-frameH-4)
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	// Keys are not intercepted while the list filter input is active.
	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Mark):
			return m.markSelected(false)
		case key.Matches(msg, m.keys.Unmark):
			return m.markSelected(true)
		case key.Matches(msg, m.keys.Add):
			return m.openAddForm()
		case key.Matches(msg, m.keys.Archive):
			return m.archiveSelected()
		case key.Matches(msg, m.keys.Delete):
			return m.deleteSelected()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) markSelected(undo bool) (tea.Model, tea.Cmd) {
	h, ok := m.selected()
	if !ok {
		return m, nil
	}

	count := 0
	if !undo {
		if h.Type == models.HabitQuantitative {
			count = m.tracker.Completion(h.ID, m.tracker.Today()) + 1
		} else {
			count = 1
		}
	}

	if err := m.tracker.MarkToday(h.ID, count); err != nil {
		m.errMsg = err.Error()
		return m, nil
	}
	m.errMsg = ""
	if undo {
		m.status = fmt.Sprintf("Cleared %q for today", h.Name)
	} else {
		m.status = fmt.Sprintf("Marked %q", h.Name)
	}
	m.reloadItems()
	return m, nil
}

func (m Model) openAddForm() (tea.Model, tea.Cmd) {
	m.formData = &habitForm{Series: "daily"}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&m.formData.Name).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Goal cadence").
				Options(
					huh.NewOption("Daily", "daily"),
					huh.NewOption("Weekly", "weekly"),
					huh.NewOption("Monthly", "monthly"),
				).
				Value(&m.formData.Series),
			huh.NewConfirm().
				Title("Quantitative?").
				Value(&m.formData.Quantitative),
		),
	)
	return m, m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		m.form = nil
		m.formData = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		habitType := models.HabitCheckoff
		if m.formData.Quantitative {
			habitType = models.HabitQuantitative
		}
		series := models.SeriesDaily
		switch m.formData.Series {
		case "weekly":
			series = models.SeriesWeekly
		case "monthly":
			series = models.SeriesMonthly
		}

		h, err := m.tracker.AddHabit(models.Habit{
			Name:       m.formData.Name,
			Type:       habitType,
			GoalSeries: series,
			OrderIndex: len(m.tracker.Habits(true)),
		})
		if err != nil {
			m.errMsg = err.Error()
		} else {
			m.status = fmt.Sprintf("Added %q", h.Name)
			m.errMsg = ""
		}
		m.form = nil
		m.formData = nil
		m.reloadItems()
	}

	return m, cmd
}

func (m Model) archiveSelected() (tea.Model, tea.Cmd) {
	h, ok := m.selected()
	if !ok {
		return m, nil
	}
	if err := m.tracker.ArchiveHabit(h.ID); err != nil {
		m.errMsg = err.Error()
		return m, nil
	}
	m.status = fmt.Sprintf("Archived %q", h.Name)
	m.errMsg = ""
	m.reloadItems()
	return m, nil
}

func (m Model) deleteSelected() (tea.Model, tea.Cmd) {
	h, ok := m.selected()
	if !ok {
		return m, nil
	}
	if err := m.tracker.DeleteHabit(h.ID); err != nil {
		m.errMsg = err.Error()
		return m, nil
	}
	m.status = fmt.Sprintf("Deleted %q (restore with 'tally habit restore')", h.Name)
	m.errMsg = ""
	m.reloadItems()
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.form != nil {
		return docStyle.Render(m.form.View())
	}

	var b strings.Builder

	header := titleStyle.Render("tally")
	if m.tracker.Stale() {
		header += "  " + staleStyle.Render("offline · cached data")
	}
	b.WriteString(header + "\n")

	b.WriteString(m.list.View() + "\n")

	if h, ok := m.selected(); ok {
		s := m.tracker.Summarize(h)
		b.WriteString(statsStyle.Render(fmt.Sprintf(
			"streak %d · 7d %d%% · 30d %d%% · total %d",
			s.Streak, s.Rates[7], s.Rates[30], s.TotalCompletions)) + "\n")
	}

	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg) + "\n")
	} else if m.status != "" {
		b.WriteString(statusStyle.Render(m.status) + "\n")
	}

	b.WriteString(m.help.View(m.keys))
	return docStyle.Render(b.String())
}
