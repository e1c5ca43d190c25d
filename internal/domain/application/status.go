package application

type Status string

const (
	StatusApplied  Status = "Applied"
	StatusReviewed Status = "Reviewed"
	StatusAccepted Status = "Accepted"
	StatusRejected Status = "Rejected"
)

// transitions is the whole workflow. Reviewed always resolves to Accepted:
// there is no company decision step, so Rejected is only reachable through
// Restore.
var transitions = map[Status]Status{
	StatusApplied:  StatusReviewed,
	StatusReviewed: StatusAccepted,
	StatusAccepted: StatusAccepted,
	StatusRejected: StatusRejected,
}

// Next returns the status that follows s. Terminal and unknown statuses are
// returned unchanged.
func Next(s Status) Status {
	if n, ok := transitions[s]; ok {
		return n
	}
	return s
}

func (s Status) IsTerminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

func (s Status) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

// Label is the text shown to users.
func (s Status) Label() string {
	return string(s)
}

func (s Status) String() string {
	return string(s)
}
