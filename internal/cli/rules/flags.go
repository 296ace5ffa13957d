package rules

import (
	"fmt"
	"strconv"

	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/constants"
	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/models"
)

// RecurringFlags describe a weekly rule on the command line.
type RecurringFlags struct {
	Zone  string `short:"z" help:"Zone id." required:""`
	Days  string `short:"d" help:"Comma-separated weekdays, or weekdays/weekend/all." required:""`
	Start string `short:"s" help:"Start time (HH:MM)." default:"${default_start}"`
	End   string `short:"e" help:"End time (HH:MM). An end at or before the start continues into the next day." default:"${default_end}"`
	Mode  string `short:"m" help:"Alarm mode for multi-day rules (daily|continuous)." enum:"daily,continuous" default:"${default_mode}"`
}

func (f RecurringFlags) Candidate() (models.Candidate, error) {
	days, err := models.ParseWeekdays(f.Days)
	if err != nil {
		return models.Candidate{}, err
	}
	start, err := models.ParseTimeOfDay(f.Start)
	if err != nil {
		return models.Candidate{}, fmt.Errorf("invalid start time (expected HH:MM): %w", err)
	}
	end, err := models.ParseTimeOfDay(f.End)
	if err != nil {
		return models.Candidate{}, fmt.Errorf("invalid end time (expected HH:MM): %w", err)
	}
	mode, err := models.ParseAlarmMode(f.Mode)
	if err != nil {
		return models.Candidate{}, err
	}
	return models.NewRecurring(days, start, end, mode), nil
}

// OnceFlags describe a one-time rule on the command line.
type OnceFlags struct {
	Zone  string `short:"z" help:"Zone id." required:""`
	Start string `short:"s" help:"Start (YYYY-MM-DDTHH:MM, local time)." required:""`
	End   string `short:"e" help:"End (YYYY-MM-DDTHH:MM, local time)." required:""`
}

func (f OnceFlags) Candidate() (models.Candidate, error) {
	start, err := models.ParseLocalDateTime(f.Start)
	if err != nil {
		return models.Candidate{}, fmt.Errorf("invalid start (expected %s): %w", constants.DateTimeFormat, err)
	}
	end, err := models.ParseLocalDateTime(f.End)
	if err != nil {
		return models.Candidate{}, fmt.Errorf("invalid end (expected %s): %w", constants.DateTimeFormat, err)
	}
	return models.NewOneTime(start, end), nil
}

// Vars are the kong interpolation variables the flags reference.
func Vars() map[string]string {
	return map[string]string{
		"default_start": constants.DefaultStartTime,
		"default_end":   constants.DefaultEndTime,
		"default_mode":  constants.DefaultAlarmMode,

		"default_upcoming_days": strconv.Itoa(constants.DefaultUpcomingDays),
	}
}
