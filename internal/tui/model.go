// Package tui is the interactive scene list editor.
package tui

import (
	"fmt"
	"strings"

	"scenelist/internal/config"
	"scenelist/internal/editor"
	"scenelist/internal/log"
	"scenelist/internal/source"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// sceneChangeMsg carries a watcher notification into the update loop.
type sceneChangeMsg source.Change

// Model drives one editor session. The editor owns all list state; the model
// only tracks the highlighted row and what to show in the status line.
type Model struct {
	editor  *editor.Editor
	changes <-chan source.Change

	keys   keyMap
	help   help.Model
	styles Styles

	cursor   int
	status   string
	err      error
	quitting bool
}

// Option configures a Model.
type Option func(*Model)

// WithChanges refreshes the editor whenever the watcher reports a change.
func WithChanges(ch <-chan source.Change) Option {
	return func(m *Model) { m.changes = ch }
}

// WithTheme applies a colour theme.
func WithTheme(theme config.Theme) Option {
	return func(m *Model) { m.styles = NewStyles(theme) }
}

// New creates a model over ed. The editor starts expanded.
func New(ed *editor.Editor, opts ...Option) *Model {
	m := &Model{
		editor: ed,
		keys:   defaultKeyMap(),
		help:   help.New(),
		styles: NewStyles(config.GetTheme("default")),
	}
	for _, opt := range opts {
		opt(m)
	}
	ed.SetExpanded(true)
	return m
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return m.waitForChange()
}

func (m *Model) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	ch := m.changes
	return func() tea.Msg {
		c, ok := <-ch
		if !ok {
			return nil
		}
		return sceneChangeMsg(c)
	}
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case sceneChangeMsg:
		m.refresh(fmt.Sprintf("%d scene file(s) changed on disk", len(msg.Paths)))
		return m, m.waitForChange()
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Toggle):
		m.editor.Toggle()
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		m.refresh("refreshed")
		return m, nil
	}

	// Edit controls are inert while collapsed
	if !m.editor.Expanded() {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.editor.Len()-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.MoveTop):
		if m.apply(m.editor.MoveToTop(m.cursor)) {
			m.cursor = 0
		}
	case key.Matches(msg, m.keys.MoveUp):
		if m.apply(m.editor.MoveUp(m.cursor)) {
			m.cursor--
		}
	case key.Matches(msg, m.keys.MoveDown):
		if m.apply(m.editor.MoveDown(m.cursor)) {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Remove):
		items := m.editor.Items()
		if m.apply(m.editor.Remove(m.cursor)) && m.err == nil {
			m.setStatus("removed " + items[m.cursor].Name())
		}
	case key.Matches(msg, m.keys.PrevPick):
		m.cycle(-1)
	case key.Matches(msg, m.keys.NextPick):
		m.cycle(1)
	case key.Matches(msg, m.keys.Add):
		pool := m.editor.Pool()
		sel := m.editor.Selection()
		if m.apply(m.editor.AddSelected()) && m.err == nil {
			m.setStatus("added " + pool[sel].Name())
		}
	}

	m.cursor = clampCursor(m.cursor, m.editor.Len())
	return m, nil
}

// apply records the outcome of an edit. A failed commit still changed the
// list in memory, so changed is reported as is. The editor has already
// logged the failure.
func (m *Model) apply(changed bool, err error) bool {
	if err != nil {
		m.err = err
	} else if changed {
		m.err = nil
	}
	return changed
}

func (m *Model) refresh(status string) {
	if err := m.editor.Refresh(); err != nil {
		m.err = err
		log.LogError(err, "Refresh failed")
		return
	}
	m.setStatus(status)
	m.cursor = clampCursor(m.cursor, m.editor.Len())
}

// cycle wraps the pending selection around the pool.
func (m *Model) cycle(delta int) {
	n := len(m.editor.Pool())
	if n == 0 {
		return
	}
	m.editor.Select(((m.editor.Selection()+delta)%n + n) % n)
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.err = nil
}

// View implements tea.Model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	items := m.editor.Items()
	pool := m.editor.Pool()

	var sb strings.Builder
	arrow := "▸"
	if m.editor.Expanded() {
		arrow = "▾"
	}
	sb.WriteString(m.styles.Header.Render(fmt.Sprintf("%s Scene List (%d included, %d available)", arrow, len(items), len(pool))))
	sb.WriteString("\n")

	if m.editor.Expanded() {
		sb.WriteString("\n")
		if len(items) == 0 {
			sb.WriteString(m.styles.Disabled.Render("  no scenes included") + "\n")
		}
		for i, it := range items {
			style, marker := m.styles.Row, "  "
			if i == m.cursor {
				style, marker = m.styles.Cursor, "> "
			}
			sb.WriteString(style.Render(fmt.Sprintf("%s%2d. %s", marker, i, it.Label())))
			sb.WriteString(" " + m.rowControls(i, len(items)) + "\n")
		}

		if len(pool) > 0 {
			sel := m.editor.Selection()
			sb.WriteString("\n")
			sb.WriteString(m.styles.Picker.Render(fmt.Sprintf("◂ %s ▸  %d/%d", pool[sel].Label(), sel+1, len(pool))))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	if m.err != nil {
		sb.WriteString(m.styles.Error.Render("error: "+m.err.Error()) + "\n")
	} else if m.status != "" {
		sb.WriteString(m.styles.Status.Render(m.status) + "\n")
	}
	sb.WriteString(m.help.View(m.keys))

	return m.styles.App.Render(sb.String())
}

// rowControls renders the per-row buttons, greying out the ones that would
// do nothing at this position.
func (m *Model) rowControls(i, n int) string {
	button := func(label string, enabled bool) string {
		if enabled {
			return "[" + label + "]"
		}
		return m.styles.Disabled.Render("[" + label + "]")
	}
	return strings.Join([]string{
		button("↑↑", i > 0),
		button("↑", i > 0),
		button("↓", i < n-1),
		button("x", true),
	}, " ")
}

// Cursor returns the highlighted row.
func (m *Model) Cursor() int {
	return m.cursor
}

// Err returns the last collaborator error shown in the status line.
func (m *Model) Err() error {
	return m.err
}

// Status returns the status line text.
func (m *Model) Status() string {
	return m.status
}

func clampCursor(c, n int) int {
	if c >= n {
		c = n - 1
	}
	if c < 0 {
		c = 0
	}
	return c
}

// Run starts the program on the terminal and blocks until the user quits.
func Run(ed *editor.Editor, opts ...Option) error {
	p := tea.NewProgram(New(ed, opts...), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
