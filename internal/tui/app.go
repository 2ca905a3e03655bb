package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tablero-cli/internal/model"
	"tablero-cli/internal/mutate"
	"tablero-cli/internal/perm"
	"tablero-cli/internal/store"
)

type view int

const (
	viewBoard view = iota
	viewTimeline
	viewDashboard
	viewDetail
)

type appModel struct {
	s       store.Store
	db      *store.DB
	actorID string
	today   model.Date
	policy  perm.Policy

	view view
	keys keyMap
	help help.Model

	width  int
	height int

	// Board cursor: column index into model.Statuses(), row within column.
	col int
	row int

	// Detail state.
	detailTaskID string
	detailSub    int

	// Transient status-bar message, typically a rejected mutation.
	flash string
}

func newAppModel(opts Options) appModel {
	return appModel{
		s:       opts.Store,
		db:      opts.DB,
		actorID: opts.ActorID,
		today:   opts.Today,
		policy:  perm.DefaultPolicy(),
		keys:    newKeyMap(),
		help:    help.New(),
		width:   80,
		height:  24,
	}
}

func (m appModel) Init() tea.Cmd { return nil }

// actor resolves the effective acting profile id.
func (m appModel) actor() string {
	if m.actorID != "" {
		return m.actorID
	}
	return m.db.CurrentProfileID
}

// columnTasks returns the active tasks for one board column.
func (m appModel) columnTasks(status model.Status) []model.Task {
	var out []model.Task
	for _, t := range m.db.ActiveTasks() {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

func (m appModel) selectedTask() (*model.Task, bool) {
	cols := model.Statuses()
	if m.col < 0 || m.col >= len(cols) {
		return nil, false
	}
	tasks := m.columnTasks(cols[m.col])
	if m.row < 0 || m.row >= len(tasks) {
		return nil, false
	}
	return m.db.FindTask(tasks[m.row].ID)
}

func (m *appModel) clampRow() {
	cols := model.Statuses()
	n := len(m.columnTasks(cols[m.col]))
	if m.row >= n {
		m.row = n - 1
	}
	if m.row < 0 {
		m.row = 0
	}
}

func (m *appModel) reload() {
	db, err := m.s.Load()
	if err != nil {
		m.flash = err.Error()
		return
	}
	m.db = db
	m.clampRow()
}

// applyMutation saves and logs a successful change, or surfaces the error in
// the status bar without touching state.
func (m *appModel) applyMutation(changed bool, eventType, entityID string, payload map[string]any, err error) {
	if err != nil {
		m.flash = err.Error()
		return
	}
	m.flash = ""
	if !changed {
		return
	}
	if err := m.s.Save(m.db); err != nil {
		m.flash = err.Error()
		return
	}
	if err := m.s.AppendEvent(m.actor(), eventType, entityID, payload); err != nil {
		m.flash = err.Error()
	}
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Reload):
			m.reload()
			return m, nil
		case key.Matches(msg, m.keys.Board):
			m.view = viewBoard
			return m, nil
		case key.Matches(msg, m.keys.Timeline):
			m.view = viewTimeline
			return m, nil
		case key.Matches(msg, m.keys.Dashboard):
			m.view = viewDashboard
			return m, nil
		}

		switch m.view {
		case viewBoard:
			return m.updateBoard(msg)
		case viewDetail:
			return m.updateDetail(msg)
		}
	}
	return m, nil
}

func (m appModel) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cols := model.Statuses()
	switch {
	case key.Matches(msg, m.keys.Left):
		if m.col > 0 {
			m.col--
			m.clampRow()
		}
	case key.Matches(msg, m.keys.Right):
		if m.col < len(cols)-1 {
			m.col++
			m.clampRow()
		}
	case key.Matches(msg, m.keys.Up):
		if m.row > 0 {
			m.row--
		}
	case key.Matches(msg, m.keys.Down):
		m.row++
		m.clampRow()
	case key.Matches(msg, m.keys.Open):
		if t, ok := m.selectedTask(); ok {
			m.detailTaskID = t.ID
			m.detailSub = 0
			m.view = viewDetail
		}
	case key.Matches(msg, m.keys.MoveLeft):
		m.moveSelected(-1)
	case key.Matches(msg, m.keys.MoveRight):
		m.moveSelected(+1)
	}
	return m, nil
}

// moveSelected shifts the selected task one board column left or right.
func (m *appModel) moveSelected(delta int) {
	t, ok := m.selectedTask()
	if !ok {
		return
	}
	cols := model.Statuses()
	target := m.col + delta
	if target < 0 || target >= len(cols) {
		return
	}
	res, err := mutate.SetTaskStatus(m.db, m.policy, m.actor(), t.ID, cols[target])
	m.applyMutation(res.Changed, "task.set_status", t.ID, res.EventPayload, err)
	if err == nil {
		m.clampRow()
	}
}

func (m appModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	t, ok := m.db.FindTask(m.detailTaskID)
	if !ok {
		m.view = viewBoard
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Back):
		m.view = viewBoard
	case key.Matches(msg, m.keys.Up):
		if m.detailSub > 0 {
			m.detailSub--
		}
	case key.Matches(msg, m.keys.Down):
		if m.detailSub < len(t.SubTasks)-1 {
			m.detailSub++
		}
	case key.Matches(msg, m.keys.Toggle):
		if m.detailSub >= 0 && m.detailSub < len(t.SubTasks) {
			res, err := mutate.ToggleSubTask(m.db, m.policy, m.actor(), t.ID, t.SubTasks[m.detailSub].ID)
			m.applyMutation(res.Changed, "task.toggle_subtask", t.ID, res.EventPayload, err)
		}
	}
	return m, nil
}

func (m appModel) View() string {
	var body string
	switch m.view {
	case viewBoard:
		body = m.viewBoard()
	case viewTimeline:
		body = m.viewTimeline()
	case viewDashboard:
		body = m.viewDashboard()
	case viewDetail:
		body = m.viewDetail()
	}

	status := m.statusBar()
	helpView := m.help.View(m.keys)
	return lipgloss.JoinVertical(lipgloss.Left, body, status, helpView)
}

func (m appModel) statusBar() string {
	if m.flash != "" {
		return styleError().Render(" " + m.flash)
	}
	who := "nobody"
	if p, ok := m.db.FindProfile(m.actor()); ok {
		who = fmt.Sprintf("%s (%s)", p.DisplayName, p.Role)
	}
	return styleMuted().Render(fmt.Sprintf(" %s · %s", who, m.today))
}
