package entity

// OutcomeStatus is the result of processing one row.
type OutcomeStatus int8

const (
	OutcomeStatusUnknown OutcomeStatus = iota
	// OutcomeStatusSkipped means the row lacked a name or an email.
	OutcomeStatusSkipped
	// OutcomeStatusSent means the relay accepted the message.
	OutcomeStatusSent
	// OutcomeStatusFailed means some step of the pipeline returned an error.
	OutcomeStatusFailed
)

func (s OutcomeStatus) String() string {
	switch s {
	case OutcomeStatusSkipped:
		return "skipped"
	case OutcomeStatusSent:
		return "sent"
	case OutcomeStatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome records what happened to one row of a batch. Outcomes are used for
// logging and counting only.
type Outcome struct {
	Row    int
	Email  string
	Status OutcomeStatus
	Err    error
}
