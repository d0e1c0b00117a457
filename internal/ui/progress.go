package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"convdup/internal/driver"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	statusStyles = map[driver.Status]lipgloss.Style{
		driver.StatusQueued:  lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		driver.StatusWorking: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		driver.StatusCached:  lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		driver.StatusDone:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		driver.StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
)

const statusColumn = 12

type (
	eventMsg driver.ProgressEvent
	doneMsg  struct{}
)

// progressModel renders one line per file under a spinner header and a
// progress bar. Phase events (empty File) only change the header.
type progressModel struct {
	title    string
	events   <-chan driver.ProgressEvent
	spin     spinner.Model
	bar      progress.Model
	files    fileTable
	phase    string
	findings int
	width    int
	finished bool
}

// NewProgressModel returns a Bubble Tea model fed by events. It quits when
// events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.ProgressEvent) tea.Model {
	spin := spinner.New(spinner.WithSpinner(spinner.Dot))
	spin.Style = statusStyles[driver.StatusWorking]
	bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(76))
	return &progressModel{
		title:  title,
		events: events,
		spin:   spin,
		bar:    bar,
		files:  newFileTable(files),
		width:  80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.listenForEvent())
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		if ev, ok := <-m.events; ok {
			return eventMsg(ev)
		}
		return doneMsg{}
	}
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case eventMsg:
		cmd = tea.Batch(m.applyEvent(driver.ProgressEvent(msg)), m.listenForEvent())
	case doneMsg:
		m.finished = true
		cmd = tea.Quit
	case tea.KeyMsg:
		// отмену скана выполняет вызывающий через контекст
		if msg.Type == tea.KeyCtrlC {
			cmd = tea.Quit
		}
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = msg.Width - 4
		}
	case spinner.TickMsg:
		if !m.finished {
			m.spin, cmd = m.spin.Update(msg)
		}
	case progress.FrameMsg:
		var bar tea.Model
		bar, cmd = m.bar.Update(msg)
		m.bar = bar.(progress.Model)
	}
	return m, cmd
}

func (m *progressModel) applyEvent(ev driver.ProgressEvent) tea.Cmd {
	if ev.File == "" {
		m.phase = ev.Phase
		if ev.Status == driver.StatusDone {
			// итог фазы заменяет сумму по файлам (кросс-файловые группы)
			m.phase = ""
			m.findings = ev.Findings
		}
		return nil
	}
	delta, ok := m.files.set(ev.File, ev.Status, ev.Findings)
	if !ok {
		return nil
	}
	m.findings += delta
	return m.bar.SetPercent(m.files.fraction())
}

func (m *progressModel) View() string {
	if m.files.empty() {
		return ""
	}
	header := m.title
	if m.phase != "" {
		header += " (" + m.phase + ")"
	}
	if m.finished {
		header = fmt.Sprintf("done: %s, %d finding(s)", header, m.findings)
	} else {
		header = m.spin.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")
	m.files.render(&b, max(m.width-statusColumn-16, 20))
	b.WriteString("\n")
	if m.finished {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteString("\n")
	return b.String()
}

type fileRow struct {
	path     string
	status   driver.Status
	findings int
}

// counted reports whether the row's findings are part of the running total.
func (r fileRow) counted() bool {
	return r.status == driver.StatusDone || r.status == driver.StatusCached
}

func (r fileRow) weight() float64 {
	switch r.status {
	case driver.StatusWorking:
		return 0.5
	case driver.StatusDone, driver.StatusCached, driver.StatusError:
		return 1
	}
	return 0
}

type fileTable struct {
	rows   []fileRow
	byPath map[string]int
}

func newFileTable(paths []string) fileTable {
	t := fileTable{rows: make([]fileRow, len(paths)), byPath: make(map[string]int, len(paths))}
	for i, p := range paths {
		t.rows[i] = fileRow{path: p, status: driver.StatusQueued}
		t.byPath[p] = i
	}
	return t
}

func (t *fileTable) empty() bool { return len(t.rows) == 0 }

// set updates a row and returns the change to the findings total. A file
// reported twice is not counted twice.
func (t *fileTable) set(path string, status driver.Status, findings int) (int, bool) {
	i, ok := t.byPath[path]
	if !ok {
		return 0, false
	}
	row := &t.rows[i]
	delta := 0
	if row.counted() {
		delta -= row.findings
	}
	row.status, row.findings = status, findings
	if row.counted() {
		delta += row.findings
	}
	return delta, true
}

func (t *fileTable) fraction() float64 {
	if t.empty() {
		return 0
	}
	sum := 0.0
	for _, r := range t.rows {
		sum += r.weight()
	}
	return sum / float64(len(t.rows))
}

func (t *fileTable) render(b *strings.Builder, nameWidth int) {
	for _, r := range t.rows {
		status := statusStyles[r.status].Render(fmt.Sprintf("%*s", statusColumn, r.status))
		fmt.Fprintf(b, "  %s %s", status, truncate(r.path, nameWidth))
		if r.counted() {
			fmt.Fprintf(b, "  %d finding(s)", r.findings)
		}
		b.WriteByte('\n')
	}
}

// truncate shortens s to width display cells, marking the cut with "...".
// The marker counts toward width.
func truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}
