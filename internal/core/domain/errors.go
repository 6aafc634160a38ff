package domain

// DomainError is a request-level failure with a stable machine-readable code.
// The closed set below is the full contract: handlers map codes to HTTP
// statuses and never invent new ones. Storage faults stay ordinary errors and
// surface as opaque internal failures.
type DomainError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string {
	return e.Message
}

var (
	ErrInvalidDate            = &DomainError{Code: "INVALID_DATE", Message: "invalid date, expected YYYY-MM-DD"}
	ErrInvalidTimezone        = &DomainError{Code: "INVALID_TIMEZONE", Message: "unknown IANA timezone"}
	ErrPastDateReadonly       = &DomainError{Code: "PAST_DATE_READONLY", Message: "completions can only be created for today"}
	ErrHabitNotFound          = &DomainError{Code: "HABIT_NOT_FOUND", Message: "habit not found"}
	ErrHabitDeleted           = &DomainError{Code: "HABIT_DELETED", Message: "habit has been deleted"}
	ErrHabitNotActiveForWeek  = &DomainError{Code: "HABIT_NOT_ACTIVE_FOR_WEEK", Message: "habit is not active for this week"}
	ErrWeeklyTargetAlreadyMet = &DomainError{Code: "WEEKLY_TARGET_ALREADY_MET", Message: "weekly target has already been met"}
	ErrTextRequired           = &DomainError{Code: "TEXT_REQUIRED", Message: "text is required for this habit"}
	ErrCompletionNotFound     = &DomainError{Code: "COMPLETION_NOT_FOUND", Message: "completion not found"}
	ErrCompletionNotToday     = &DomainError{Code: "COMPLETION_NOT_TODAY", Message: "completions can only be deleted on the same day"}
	ErrGoalNotFound           = &DomainError{Code: "GOAL_NOT_FOUND", Message: "goal not found"}
	ErrGoalDeleted            = &DomainError{Code: "GOAL_DELETED", Message: "goal has been deleted"}
)
