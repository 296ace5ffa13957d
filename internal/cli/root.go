package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/config"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/models"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/scheduler"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/storage"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/utils"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/validation"
)

// ConfirmFunc asks the user a yes/no question.
type ConfirmFunc func(title, description string) (bool, error)

type Context struct {
	Store     storage.Provider
	Scheduler *scheduler.Scheduler
	Config    *config.Config
	// ConfigPath is the YAML file the config was read from.
	ConfigPath string
	Out        io.Writer
	Confirm    ConfirmFunc
}

var (
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	WarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	DangerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	MutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	HeaderStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
)

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.out(), args...)
}

// Ask runs the configured confirmation prompt, falling back to a huh form.
func (c *Context) Ask(title, description string) (bool, error) {
	if c.Confirm != nil {
		return c.Confirm(title, description)
	}
	return HuhConfirm(title, description)
}

// Now is the scheduler's clock, or the wall clock without a scheduler.
func (c *Context) Now() time.Time {
	if c.Scheduler != nil {
		return c.Scheduler.Now()
	}
	return time.Now()
}

func HuhConfirm(title, description string) (bool, error) {
	var ok bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Description(description).
			Affirmative("Replace").
			Negative("Cancel").
			Value(&ok),
	))
	if err := form.Run(); err != nil {
		return false, err
	}
	return ok, nil
}

// RejectedError reports a candidate the scheduler refused. Commands exit
// with status 2 so scripts can tell a rejection from a failure.
type RejectedError struct {
	Classification validation.Classification
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("rule %s: %s", e.Classification.Outcome, e.Classification.Message())
}

func (e *RejectedError) ExitCode() int {
	return 2
}

func (e *RejectedError) Unwrap() error {
	return e.Classification.Reason
}

// FormatRule renders one rule for list output.
func FormatRule(r models.AlarmRule, now time.Time) string {
	var b strings.Builder
	status := r.Status(now)
	label := status.Label()
	switch status {
	case models.RuleStatusExpired:
		label = MutedStyle.Render(label)
	case models.RuleStatusActiveNow:
		label = SuccessStyle.Render(label)
	}
	if !r.Enabled {
		label += MutedStyle.Render(" (disabled)")
	}

	fmt.Fprintf(&b, "  #%d [%s] %s - %s", r.ID, label, r.Summary(), utils.DurationLabel(r.Candidate))
	if r.IsRecurring() {
		fmt.Fprintf(&b, "\n      %s", MutedStyle.Render(utils.Describe(*r.Recurring)))
	}
	return b.String()
}

// FormatClassification renders a classification with the implicated rules.
func FormatClassification(c validation.Classification) string {
	var style lipgloss.Style
	switch c.Outcome {
	case validation.OutcomeAccepted:
		style = SuccessStyle
	case validation.OutcomeSuperseded:
		style = WarningStyle
	default:
		style = DangerStyle
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", style.Render(strings.ToUpper(string(c.Outcome))), c.Message())
	return b.String()
}
