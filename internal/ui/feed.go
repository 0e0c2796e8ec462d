// Package ui renders a live feed of diagnostics for `faultline watch`.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"faultline/internal/diag"
)

// FeedEvent is one diagnostic delivered to the feed.
type FeedEvent struct {
	Function string
	File     string
	Line     int
	Err      string
	Message  string
	Kind     diag.Kind
}

// ChannelHandler returns a registry entry that forwards every diagnostic to
// events. A full channel drops the event rather than blocking the bus.
func ChannelHandler(events chan<- FeedEvent) *diag.Handler {
	return &diag.Handler{
		Func: func(_ any, function, file string, line int, errText, message string, _ bool, kind diag.Kind) {
			ev := FeedEvent{Function: function, File: file, Line: line, Err: errText, Message: message, Kind: kind}
			select {
			case events <- ev:
			default:
			}
		},
	}
}

// maxFeedLines bounds the scrollback kept on screen.
const maxFeedLines = 20

type feedModel struct {
	title   string
	events  <-chan FeedEvent
	spinner spinner.Model
	lines   []string
	counts  map[diag.Kind]int
	width   int
	done    bool
}

type eventMsg FeedEvent
type doneMsg struct{}

// NewFeedModel returns a Bubble Tea model that tails diagnostics from the
// events channel until it is closed or the user quits.
func NewFeedModel(title string, events <-chan FeedEvent) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	return &feedModel{
		title:   title,
		events:  events,
		spinner: sp,
		counts:  make(map[diag.Kind]int),
		width:   80,
	}
}

func (m *feedModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *feedModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		m.applyEvent(FeedEvent(msg))
		return m, m.listenForEvent()
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *feedModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))

	header := m.title
	if m.done {
		header = fmt.Sprintf("done: %s", header)
	} else {
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	for _, line := range m.lines {
		b.WriteString("  ")
		b.WriteString(truncate(line, m.width-4))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.summary())
	b.WriteString("\n")
	return b.String()
}

func (m *feedModel) applyEvent(ev FeedEvent) {
	m.counts[ev.Kind]++
	text := ev.Err
	if text == "" {
		text = ev.Message
	}
	line := fmt.Sprintf("%s %s  %s (%s:%d)",
		styleKind(ev.Kind).Render(fmt.Sprintf("%-12s", ev.Kind.String())),
		text, ev.Function, ev.File, ev.Line)
	m.lines = append(m.lines, line)
	if len(m.lines) > maxFeedLines {
		m.lines = m.lines[len(m.lines)-maxFeedLines:]
	}
}

func (m *feedModel) summary() string {
	parts := make([]string, 0, 4)
	for _, k := range []diag.Kind{diag.KindError, diag.KindWarning, diag.KindScript, diag.KindShader} {
		if n := m.counts[k]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s: %d", k.String(), n))
		}
	}
	if len(parts) == 0 {
		return "no diagnostics yet"
	}
	return strings.Join(parts, "  ")
}

func styleKind(k diag.Kind) lipgloss.Style {
	switch k {
	case diag.KindWarning:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	case diag.KindScript:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	case diag.KindShader:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	}
}

func (m *feedModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func truncate(s string, width int) string {
	if width < 10 {
		width = 10
	}
	return runewidth.Truncate(s, width, "…")
}
