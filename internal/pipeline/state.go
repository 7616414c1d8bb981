package pipeline

import "fmt"

// State is the position of the active run in the fetch sequence.
type State int

const (
	StateIdle State = iota
	StateFetchingProfile
	StateFetchingAvatar
	StateFetchingCard
	StateDone
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetchingProfile:
		return "fetching_profile"
	case StateFetchingAvatar:
		return "fetching_avatar"
	case StateFetchingCard:
		return "fetching_card"
	case StateDone:
		return "done"
	case StateAborted:
		return "aborted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Session identifies the subject on display and the run that owns the sink.
type Session struct {
	Generation uint64
	SubjectID  int
}

// Status is a point-in-time view of the orchestrator.
type Status struct {
	Session Session
	State   State
	// Card is the slot being fetched while State is StateFetchingCard.
	Card int
}

func (s Status) String() string {
	if s.State == StateFetchingCard {
		return fmt.Sprintf("user %d: %s(%d)", s.Session.SubjectID, s.State, s.Card)
	}
	return fmt.Sprintf("user %d: %s", s.Session.SubjectID, s.State)
}
