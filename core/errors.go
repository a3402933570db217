package core

import "errors"

// Typed result codes. Every failing operation returns exactly one of
// these and leaves the ledger untouched.
var (
	ErrNotAuthorized             = errors.New("not authorized")
	ErrAlreadyMember             = errors.New("already a member")
	ErrNotMember                 = errors.New("not an active member")
	ErrInsufficientTokens        = errors.New("insufficient tokens")
	ErrProposalNotFound          = errors.New("proposal not found")
	ErrInvalidProposalState      = errors.New("invalid proposal state")
	ErrAlreadyVoted              = errors.New("already voted")
	ErrVotingClosed              = errors.New("voting closed")
	ErrProposalActive            = errors.New("proposal still active")
	ErrInvalidAmount             = errors.New("invalid amount")
	ErrMilestoneNotFound         = errors.New("milestone not found")
	ErrMilestoneAlreadyFunded    = errors.New("milestone already funded")
	ErrDelegationNotAllowed      = errors.New("delegation not allowed")
	ErrInvalidPhase              = errors.New("invalid phase")
	ErrTreasuryInsufficientFunds = errors.New("insufficient treasury funds")
)
