package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	units "github.com/docker/go-units"

	"github.com/wippyai/wasm-bind/factory"
	"github.com/wippyai/wasm-bind/resource"
	"github.com/wippyai/wasm-bind/runtime"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	pressureStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFB86C"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
)

type keyMap struct {
	Create key.Binding
	Share  key.Binding
	Drop   key.Binding
	Up     key.Binding
	Down   key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Create, k.Share, k.Drop, k.Up, k.Down, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Create, k.Share, k.Drop}, {k.Up, k.Down, k.Quit}}
}

var keys = keyMap{
	Create: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "create")),
	Share:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "share")),
	Drop:   key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "drop")),
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// objectSet hides the handle type of a binding from the TUI.
type objectSet interface {
	create(start int64) (resource.Handle, error)
	share(h resource.Handle) (resource.Handle, error)
	drop(h resource.Handle) error
	describe(h resource.Handle) string
}

type boundSet[H any] struct {
	bound *resource.Bound[counter, int64, H]
	show  func(H) string
}

func (s boundSet[H]) create(start int64) (resource.Handle, error) {
	return s.bound.New(start)
}

func (s boundSet[H]) share(h resource.Handle) (resource.Handle, error) {
	return s.bound.Share(h)
}

func (s boundSet[H]) drop(h resource.Handle) error {
	return s.bound.Drop(h)
}

func (s boundSet[H]) describe(h resource.Handle) string {
	v, ok := s.bound.Get(h)
	if !ok {
		return "gone"
	}
	return s.show(v)
}

func newObjectSet(iso *runtime.Isolate, mode factory.Mode) objectSet {
	if mode == factory.ModeShared {
		return boundSet[*factory.Ref[counter]]{
			bound: runtime.RegisterShared(iso, counterType, factory.NewShared(factory.Infallible(newCounter))),
			show: func(r *factory.Ref[counter]) string {
				v := r.Value()
				if v == nil {
					return "released"
				}
				return fmt.Sprintf("value=%d refs=%d", v.value, r.Count())
			},
		}
	}
	return boundSet[*counter]{
		bound: runtime.RegisterOwned(iso, counterType, factory.NewOwned(factory.Infallible(newCounter))),
		show: func(c *counter) string {
			return fmt.Sprintf("value=%d", c.value)
		},
	}
}

type interactiveModel struct {
	err      error
	iso      *runtime.Isolate
	objects  objectSet
	help     help.Model
	status   string
	handles  []resource.Handle
	limit    int64
	next     int64
	selected int
	mode     factory.Mode
}

type readyMsg struct {
	err error
	iso *runtime.Isolate
}

func newInteractiveModel(mode factory.Mode, limit int64) *interactiveModel {
	return &interactiveModel{
		mode:  mode,
		limit: limit,
		help:  help.New(),
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.createIsolate
}

func (m *interactiveModel) createIsolate() tea.Msg {
	iso, err := runtime.New(context.Background(), &runtime.Config{
		ExternalMemoryLimit: m.limit,
	})
	return readyMsg{iso: iso, err: err}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case readyMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.iso = msg.iso
		m.objects = newObjectSet(msg.iso, m.mode)

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			if m.iso != nil {
				m.iso.Close(context.Background())
			}
			return m, tea.Quit

		case m.objects == nil:
			return m, nil

		case key.Matches(msg, keys.Up):
			if m.selected > 0 {
				m.selected--
			}

		case key.Matches(msg, keys.Down):
			if m.selected < len(m.handles)-1 {
				m.selected++
			}

		case key.Matches(msg, keys.Create):
			m.next++
			h, err := m.objects.create(m.next)
			m.setResult(err, "created handle %d", h)
			if err == nil {
				m.handles = append(m.handles, h)
				m.selected = len(m.handles) - 1
			}

		case key.Matches(msg, keys.Share):
			if h, ok := m.current(); ok {
				shared, err := m.objects.share(h)
				m.setResult(err, "handle %d shares handle %d", shared, h)
				if err == nil {
					m.handles = append(m.handles, shared)
				}
			}

		case key.Matches(msg, keys.Drop):
			if h, ok := m.current(); ok {
				err := m.objects.drop(h)
				m.setResult(err, "dropped handle %d", h)
				if err == nil {
					m.handles = append(m.handles[:m.selected], m.handles[m.selected+1:]...)
					if m.selected >= len(m.handles) && m.selected > 0 {
						m.selected--
					}
				}
			}
		}
	}

	return m, nil
}

func (m *interactiveModel) current() (resource.Handle, bool) {
	if m.selected < 0 || m.selected >= len(m.handles) {
		return 0, false
	}
	return m.handles[m.selected], true
}

func (m *interactiveModel) setResult(err error, format string, args ...any) {
	m.err = err
	if err != nil {
		m.status = ""
		return
	}
	m.status = fmt.Sprintf(format, args...)
}

func (m *interactiveModel) View() string {
	if m.iso == nil {
		if m.err != nil {
			return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
		}
		return "Starting isolate..."
	}

	var b strings.Builder
	stats := m.iso.Stats()

	b.WriteString(titleStyle.Render("Object Factory"))
	b.WriteString(" ")
	b.WriteString(m.iso.ID().String())
	b.WriteString("\n\n")

	field := func(label, value string) {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-16s", label)))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}
	field("mode", m.mode.String())
	field("external memory", units.BytesSize(float64(stats.Total)))
	field("peak", units.BytesSize(float64(stats.Peak)))
	field("live handles", fmt.Sprintf("%d", m.iso.Objects().Len()))
	if m.limit > 0 {
		field("limit", units.BytesSize(float64(m.limit)))
		if stats.Total > m.limit {
			b.WriteString(pressureStyle.Render("memory pressure"))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	if len(m.handles) == 0 {
		b.WriteString("No objects. Press c to create one.\n")
	}
	for i, h := range m.handles {
		line := fmt.Sprintf("#%-4d %s", h, m.objects.describe(h))
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(keys))
	return b.String()
}

func runInteractive(mode factory.Mode, limit int64) error {
	p := tea.NewProgram(newInteractiveModel(mode, limit), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
