// Package tui is the interactive terminal chat.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/baalimago/solvr/internal/chat"
	"github.com/baalimago/solvr/internal/models"
	"github.com/baalimago/solvr/internal/router"
	"github.com/baalimago/solvr/internal/ui"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const (
	headerHeight = 3
	inputHeight  = 3
	footerHeight = 2
	traceHeight  = 8
)

// Session is the part of chat.Session the model drives.
type Session interface {
	Submit(ctx context.Context, input string) (models.Turn, error)
	Clear()
	Turns() []models.Turn
}

type answerMsg struct {
	turn models.Turn
	err  error
}

type stepMsg router.Step

// ChannelTracer forwards steps into ch without blocking the router. Steps
// are dropped when the buffer is full.
func ChannelTracer(ch chan<- router.Step) router.Tracer {
	return router.TracerFunc(func(s router.Step) {
		select {
		case ch <- s:
		default:
		}
	})
}

type Model struct {
	ctx     context.Context
	session Session
	steps   <-chan router.Step

	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer
	styles   styles

	width   int
	height  int
	ready   bool
	loading bool
	pending string
	help    bool
	err     error

	showTrace bool
	trace     []string

	// turns is a snapshot of the transcript, taken while no query is in flight
	turns []models.Turn
}

func New(ctx context.Context, s Session, steps <-chan router.Step) Model {
	st := defaultStyles()

	ti := textinput.New()
	ti.Placeholder = "Type your question here..."
	ti.Prompt = "│ "
	ti.CharLimit = 2048
	ti.Width = 80
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = st.Spinner

	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)

	return Model{
		ctx:      ctx,
		session:  s,
		steps:    steps,
		viewport: viewport.New(80, 20),
		input:    ti,
		spinner:  sp,
		renderer: renderer,
		styles:   st,
		turns:    s.Turns(),
	}
}

// Run the program until the user quits.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to run tui: %w", err)
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForStep())
}

func (m Model) waitForStep() tea.Cmd {
	if m.steps == nil {
		return nil
	}
	return func() tea.Msg {
		s, ok := <-m.steps
		if !ok {
			return nil
		}
		return stepMsg(s)
	}
}

func (m Model) submit(q string) tea.Cmd {
	return func() tea.Msg {
		turn, err := m.session.Submit(m.ctx, q)
		return answerMsg{turn: turn, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyCtrlT:
			m.showTrace = !m.showTrace
			m.resize()
			return m, nil
		case tea.KeyCtrlL:
			if !m.loading {
				m.clear()
			}
			return m, nil
		case tea.KeyEnter:
			if m.loading {
				return m, nil
			}
			return m.handleSubmit()
		}
		if !m.loading {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.input.Width = max(msg.Width-6, 10)
		m.renderer, _ = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(max(msg.Width-8, 20)),
		)
		m.resize()
		m.refresh()

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case stepMsg:
		m.trace = append(m.trace, ui.FormatStep(len(m.trace)+1, router.Step(msg)))
		return m, m.waitForStep()

	case answerMsg:
		m.loading = false
		m.pending = ""
		m.err = msg.err
		m.input.Focus()
		m.refresh()
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	m.help = false
	switch ui.ParseCommand(value) {
	case ui.CmdQuit:
		return m, tea.Quit
	case ui.CmdClear:
		m.clear()
		return m, nil
	case ui.CmdHelp:
		m.help = true
		m.refresh()
		return m, nil
	}
	if value == "" {
		return m, nil
	}
	m.loading = true
	m.pending = value
	m.err = nil
	m.trace = nil
	m.refresh()
	return m, tea.Batch(m.spinner.Tick, m.submit(value))
}

func (m *Model) clear() {
	m.session.Clear()
	m.trace = nil
	m.err = nil
	m.help = false
	m.refresh()
}

func (m *Model) resize() {
	if !m.ready {
		return
	}
	h := m.height - headerHeight - inputHeight - footerHeight
	if m.showTrace {
		h -= traceHeight
	}
	m.viewport.Width = max(m.width-2, 10)
	m.viewport.Height = max(h, 3)
}

// refresh the viewport content. The transcript is only read while no query
// is in flight, the pending question is shown on its own until then.
func (m *Model) refresh() {
	if !m.loading {
		m.turns = m.session.Turns()
	}
	var sb strings.Builder
	for _, t := range m.turns {
		sb.WriteString(m.renderTurn(t))
	}
	if m.pending != "" {
		sb.WriteString(m.renderTurn(models.Turn{Role: models.RoleUser, Content: m.pending}))
	}
	if m.help {
		sb.WriteString(m.renderMarkdown(ui.HelpText()))
	}
	m.viewport.SetContent(sb.String())
	m.viewport.GotoBottom()
}

func (m Model) renderTurn(t models.Turn) string {
	if t.Role == models.RoleUser {
		return m.styles.User.Render("You") + "\n" + t.Content + "\n\n"
	}
	return m.styles.Assistant.Render("🧠 Solver") + "\n" + m.renderMarkdown(t.Content) + "\n"
}

func (m Model) renderMarkdown(content string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = content
		}
	}()
	if m.renderer == nil || content == "" {
		return content
	}
	out, err := m.renderer.Render(content)
	if err != nil {
		return content
	}
	return out
}

func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	parts := []string{
		m.styles.Title.Render(ui.Title),
		m.styles.Caption.Render(ui.Caption),
		m.viewport.View(),
	}
	if m.showTrace {
		parts = append(parts, m.renderTrace())
	}
	if m.loading {
		parts = append(parts, m.spinner.View()+" Thinking...")
	}
	if m.err != nil {
		parts = append(parts, m.styles.Error.Render("Error: "+m.err.Error()))
	}
	parts = append(parts,
		m.styles.Input.Render(m.input.View()),
		m.styles.Muted.Render("Enter: send • ctrl+t: trace • ctrl+l: clear • /help • esc: quit"),
	)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderTrace() string {
	body := "no steps yet"
	if len(m.trace) > 0 {
		lines := strings.Split(strings.Join(m.trace, "\n"), "\n")
		// keep the latest lines within the panel
		if len(lines) > traceHeight-2 {
			lines = lines[len(lines)-(traceHeight-2):]
		}
		body = strings.Join(lines, "\n")
	}
	return m.styles.Trace.Width(max(m.width-4, 10)).Render("trace\n" + body)
}

var _ Session = (*chat.Session)(nil)
