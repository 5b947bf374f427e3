package domain

// LearnedStatus is the backend representation of the learned flag.
type LearnedStatus string

const (
	LearnedStatusLearned    LearnedStatus = "learned"
	LearnedStatusNotLearned LearnedStatus = "not_learned"
)

func (s LearnedStatus) String() string { return string(s) }

func (s LearnedStatus) IsValid() bool {
	switch s {
	case LearnedStatusLearned, LearnedStatusNotLearned:
		return true
	}
	return false
}

// LearnedStatusOf maps a boolean flag to its backend status.
func LearnedStatusOf(learned bool) LearnedStatus {
	if learned {
		return LearnedStatusLearned
	}
	return LearnedStatusNotLearned
}

// SessionStatus represents the state of a test session.
type SessionStatus string

const (
	SessionStatusActive   SessionStatus = "ACTIVE"
	SessionStatusFinished SessionStatus = "FINISHED"
)

func (s SessionStatus) String() string { return string(s) }

func (s SessionStatus) IsValid() bool {
	switch s {
	case SessionStatusActive, SessionStatusFinished:
		return true
	}
	return false
}

// CardFlag names a per-card boolean the user can toggle.
type CardFlag string

const (
	CardFlagLearned CardFlag = "learned"
	CardFlagSaved   CardFlag = "saved"
)

func (f CardFlag) String() string { return string(f) }

func (f CardFlag) IsValid() bool {
	switch f {
	case CardFlagLearned, CardFlagSaved:
		return true
	}
	return false
}

// MutationState tracks one optimistic flag update.
//
//	IDLE -> PENDING -> CONFIRMED | ROLLED_BACK
type MutationState string

const (
	MutationStateIdle       MutationState = "IDLE"
	MutationStatePending    MutationState = "PENDING"
	MutationStateConfirmed  MutationState = "CONFIRMED"
	MutationStateRolledBack MutationState = "ROLLED_BACK"
)

func (s MutationState) String() string { return string(s) }

func (s MutationState) IsValid() bool {
	switch s {
	case MutationStateIdle, MutationStatePending, MutationStateConfirmed, MutationStateRolledBack:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition can happen.
func (s MutationState) IsTerminal() bool {
	return s == MutationStateConfirmed || s == MutationStateRolledBack
}
