package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/netmon-lab/tacdesk/pkg/client"
	"github.com/netmon-lab/tacdesk/pkg/domain/model"
	"github.com/netmon-lab/tacdesk/pkg/domain/model/config"
	"github.com/netmon-lab/tacdesk/pkg/domain/types"
	"github.com/netmon-lab/tacdesk/pkg/render"
	"github.com/netmon-lab/tacdesk/pkg/service/poller"
	"github.com/netmon-lab/tacdesk/pkg/workspace"
)

// Messages delivered through the bubbletea loop

// casesLoadedMsg carries the recent case list
type casesLoadedMsg struct {
	ids []types.CaseID
}

// caseLoadedMsg carries a freshly fetched case summary
type caseLoadedMsg struct {
	c *model.Case
}

// planStartedMsg is sent when an action submission succeeds
type planStartedMsg struct {
	plan *model.Plan
}

// planPolledMsg carries the plan state after one status poll
type planPolledMsg struct {
	plan *model.Plan
}

// pollTickMsg schedules the next plan status poll
type pollTickMsg struct{}

// errMsg carries a request failure into the status line
type errMsg struct {
	err error
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45"))
	summaryStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	userStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	agentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	hintStyle    = lipgloss.NewStyle().Faint(true)
)

// Model is the interactive workspace: case summary on top, interaction
// log below, and a single input line that submits free-text actions.
type Model struct {
	client  *client.Client
	session *workspace.Session
	log     *workspace.InteractionLog
	cfg     *config.PlatformConfig

	input      textinput.Model
	spin       spinner.Model
	recent     []types.CaseID
	activePlan types.PlanID
	processing bool
	status     string
	width      int
}

// New creates the workspace model. No case is active until the user
// selects or creates one.
func New(c *client.Client, cfg *config.PlatformConfig) Model {
	input := textinput.New()
	input.Placeholder = "Enter a case ID to open it"
	input.Focus()
	input.CharLimit = 512

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return Model{
		client:  c,
		session: workspace.NewSession(),
		log:     workspace.NewInteractionLog(),
		cfg:     cfg,
		input:   input,
		spin:    spin,
	}
}

// Init loads the recent case list
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCases(), m.spin.Tick)
}

func (m Model) loadCases() tea.Cmd {
	return func() tea.Msg {
		ids, err := m.client.ListCases(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return casesLoadedMsg{ids}
	}
}

func (m Model) loadCase(id types.CaseID) tea.Cmd {
	return func() tea.Msg {
		c, err := m.client.GetCase(context.Background(), id)
		if err != nil {
			return errMsg{err}
		}
		return caseLoadedMsg{c}
	}
}

func (m Model) submitAction(input string) tea.Cmd {
	caseID := m.session.Active()
	return func() tea.Msg {
		plan, err := m.client.SubmitAction(context.Background(), caseID, input)
		if err != nil {
			return errMsg{err}
		}
		return planStartedMsg{plan}
	}
}

func (m Model) pollPlan(id types.PlanID) tea.Cmd {
	return func() tea.Msg {
		plan, err := m.client.GetPlanStatus(context.Background(), id)
		if err != nil {
			return errMsg{err}
		}
		return planPolledMsg{plan}
	}
}

func scheduleNextPoll() tea.Cmd {
	return tea.Tick(poller.DefaultInterval, func(time.Time) tea.Msg {
		return pollTickMsg{}
	})
}

// Update routes messages through the workspace state machine
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.handleEnter()
		}

	case casesLoadedMsg:
		m.recent = msg.ids
		return m, nil

	case caseLoadedMsg:
		m.session.SetSummary(msg.c)
		m.status = ""
		return m, nil

	case planStartedMsg:
		m.log.AppendPlan(msg.plan)
		m.activePlan = msg.plan.ID
		return m, scheduleNextPoll()

	case pollTickMsg:
		if m.activePlan == "" {
			return m, nil
		}
		return m, m.pollPlan(m.activePlan)

	case planPolledMsg:
		return m.handlePolledPlan(msg.plan)

	case errMsg:
		m.status = msg.err.Error()
		if m.processing {
			m.log.AppendError(m.status)
			m.processing = false
			m.activePlan = ""
			m.input.Placeholder = inputPlaceholder(false)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func inputPlaceholder(processing bool) string {
	if processing {
		return "Agent is executing a plan..."
	}
	return "What should I do next for this case?"
}

func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())
	if value == "" || m.processing {
		return m, nil
	}

	if !m.session.HasActive() {
		id := types.CaseID(value)
		if err := id.Validate(); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.session.Set(id)
		m.log.Clear()
		m.input.SetValue("")
		m.input.Placeholder = inputPlaceholder(false)
		return m, m.loadCase(id)
	}

	m.log.AppendUser(value)
	m.input.SetValue("")
	m.processing = true
	m.input.Placeholder = inputPlaceholder(true)
	return m, m.submitAction(value)
}

func (m Model) handlePolledPlan(plan *model.Plan) (tea.Model, tea.Cmd) {
	m.log.UpdatePlan(plan)

	if !plan.IsTerminal() {
		return m, scheduleNextPoll()
	}

	m.processing = false
	m.activePlan = ""
	m.input.Placeholder = inputPlaceholder(false)
	if plan.FinalAnswer != nil {
		m.log.AppendAgent(render.Answer(plan.FinalAnswer))
	}

	if plan.MutatedCase() {
		return m, m.loadCase(m.session.Active())
	}
	return m, nil
}

// View renders the workspace
func (m Model) View() string {
	var b strings.Builder

	if !m.session.HasActive() {
		b.WriteString(titleStyle.Render("Network Engineer Agent"))
		b.WriteString("\n\nPlease select a case to begin or create a new one.\n")
		if len(m.recent) > 0 {
			b.WriteString("\nRecent cases:\n")
			for _, id := range m.recent {
				fmt.Fprintf(&b, "  %s\n", id)
			}
		}
		b.WriteString("\n" + m.input.View() + "\n")
		if m.status != "" {
			b.WriteString(errorStyle.Render(m.status) + "\n")
		}
		b.WriteString(hintStyle.Render("enter: open case • esc: quit"))
		return b.String()
	}

	b.WriteString(titleStyle.Render(fmt.Sprintf("Case: %s", m.session.Active())))
	b.WriteString("\n")

	if summary := m.session.Summary(); summary != nil {
		var sb strings.Builder
		render.Summary(&sb, summary, m.cfg)
		b.WriteString(summaryStyle.Render(sb.String()))
	} else {
		b.WriteString(fmt.Sprintf("%s Loading summary for case %s...", m.spin.View(), m.session.Active()))
	}
	b.WriteString("\n\n")

	for _, entry := range m.log.Entries() {
		switch entry.Kind {
		case workspace.EntryUser:
			b.WriteString(userStyle.Render("You: ") + entry.Text + "\n")
		case workspace.EntryAgent:
			b.WriteString(agentStyle.Render("Agent: ") + entry.Text + "\n")
		case workspace.EntryError:
			b.WriteString(errorStyle.Render(entry.Text) + "\n")
		case workspace.EntryPlan:
			var pb strings.Builder
			render.PlanView(&pb, entry.Plan)
			b.WriteString(pb.String())
		}
	}

	b.WriteString("\n")
	if m.processing {
		b.WriteString(m.spin.View() + " ")
	}
	b.WriteString(m.input.View() + "\n")
	if m.status != "" && !m.processing {
		b.WriteString(errorStyle.Render(m.status) + "\n")
	}
	b.WriteString(hintStyle.Render("enter: submit • esc: quit"))
	return b.String()
}

// Run starts the interactive workspace program
func Run(c *client.Client, cfg *config.PlatformConfig) error {
	p := tea.NewProgram(New(c, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
