package constants

const (
	AppName = "zonealarm"

	// TimeFormat is the wall-clock layout used for recurring rule times.
	TimeFormat = "15:04"
	// TimeFormatSeconds is accepted on input; older documents store times with seconds.
	TimeFormatSeconds = "15:04:05"
	// DateTimeFormat is the ISO local layout used for one-time rules.
	DateTimeFormat        = "2006-01-02T15:04"
	DateTimeFormatSeconds = "2006-01-02T15:04:05"
	DateFormat            = "2006-01-02"

	MinutesPerDay = 24 * 60
	DaysPerWeek   = 7
)

// Defaults offered when a new recurring rule is created without explicit values.
const (
	DefaultStartTime = "22:00"
	DefaultEndTime   = "07:00"
	DefaultAlarmMode = "daily"
)

const (
	DefaultUpcomingDays = 7
	DefaultTopicPrefix  = "zonealarm/zones"
	DefaultRedisKey     = "zonealarm:zones"
)
