package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"cclex/internal/driver"
)

// maxVisibleItems bounds the file list; the rest is summarized in one line.
const maxVisibleItems = 12

type progressModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	prog    progress.Model
	items   []fileItem
	index   map[string]int
	width   int
	done    bool

	finished int
	tokens   int
	invalid  int
	cached   int
}

type fileItem struct {
	path    string
	status  string
	tokens  int
	invalid int
}

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders the progress of a
// directory tokenize run. The model quits when events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]fileItem, 0, len(files))
	index := make(map[string]int, len(files))
	for i, file := range files {
		items = append(items, fileItem{path: file, status: "queued"})
		index[file] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(driver.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
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
			m.prog.Width = max(msg.Width-4, 10)
		}
		return m, nil
	case progress.FrameMsg:
		progressModel, cmd := m.prog.Update(msg)
		m.prog = progressModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := fmt.Sprintf("%s (%d/%d)", m.title, m.finished, len(m.items))
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	statusWidth := 12
	nameWidth := max(m.width-statusWidth-16, 20)

	for _, item := range m.visibleItems() {
		name := truncate(item.path, nameWidth)
		statusStyled := styleStatus(item.status).Render(fmt.Sprintf("%12s", item.status))
		line := fmt.Sprintf("  %s %s", statusStyled, name)
		if item.status == "done" || item.status == "cached" {
			line += fmt.Sprintf("  %d tok", item.tokens)
			if item.invalid > 0 {
				line += styleStatus("error").Render(fmt.Sprintf(" %d invalid", item.invalid))
			}
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if hidden := len(m.items) - maxVisibleItems; hidden > 0 {
		fmt.Fprintf(&b, "  %12s %d more files\n", "", hidden)
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	fmt.Fprintf(&b, "\n%d tokens, %d invalid, %d cached\n", m.tokens, m.invalid, m.cached)

	return b.String()
}

// visibleItems prefers files in flight and finished ones over queued ones.
func (m *progressModel) visibleItems() []fileItem {
	if len(m.items) <= maxVisibleItems {
		return m.items
	}
	out := make([]fileItem, 0, maxVisibleItems)
	for _, item := range m.items {
		if item.status != "queued" && len(out) < maxVisibleItems {
			out = append(out, item)
		}
	}
	for _, item := range m.items {
		if item.status == "queued" && len(out) < maxVisibleItems {
			out = append(out, item)
		}
	}
	return out
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev driver.Event) tea.Cmd {
	idx, ok := m.index[ev.File]
	if !ok {
		return nil
	}
	item := &m.items[idx]
	wasFinished := isFinal(item.status)
	item.status = statusLabel(ev)
	if !wasFinished && isFinal(item.status) {
		m.finished++
		item.tokens = ev.Tokens
		item.invalid = ev.Invalid
		m.tokens += ev.Tokens
		m.invalid += ev.Invalid
		if ev.Cached {
			m.cached++
		}
	}
	return m.prog.SetPercent(float64(m.finished) / float64(len(m.items)))
}

func isFinal(status string) bool {
	return status == "done" || status == "cached" || status == "error"
}

func statusLabel(ev driver.Event) string {
	switch ev.Status {
	case driver.StatusQueued:
		return "queued"
	case driver.StatusError:
		return "error"
	case driver.StatusDone:
		if ev.Cached {
			return "cached"
		}
		return "done"
	case driver.StatusWorking:
		if ev.Stage == driver.StageLoad {
			return "loading"
		}
		return "lexing"
	default:
		return string(ev.Status)
	}
}

func styleStatus(status string) lipgloss.Style {
	switch status {
	case "done", "cached":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case "error":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case "loading", "lexing":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
