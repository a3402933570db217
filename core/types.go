package core

import (
	"github.com/ethereum/go-ethereum/common"
)

type ProposalState uint8

const (
	Draft ProposalState = iota
	Active
	Passed
	Rejected
	Executed
	Cancelled
)

func (s ProposalState) String() string {
	switch s {
	case Draft:
		return "draft"
	case Active:
		return "active"
	case Passed:
		return "passed"
	case Rejected:
		return "rejected"
	case Executed:
		return "executed"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

type ProposalPhase uint8

const (
	// Submission is the initial phase, the proposal is a draft open for edits
	Submission ProposalPhase = iota

	// Discussion is the review window before voting opens
	Discussion

	// Voting is the window in which members cast weighted ballots
	Voting

	// Execution is the post-vote phase of a passed proposal
	Execution
)

func (p ProposalPhase) String() string {
	switch p {
	case Submission:
		return "submission"
	case Discussion:
		return "discussion"
	case Voting:
		return "voting"
	case Execution:
		return "execution"
	default:
		return "unknown"
	}
}

type Member struct {
	Address      common.Address
	TokenBalance uint64
	IsActive     bool
	JoinedAt     uint64
	DelegatedTo  *common.Address
	IsExpert     bool
}

type Milestone struct {
	Description string
	Amount      uint64
	Completed   bool
	Funded      bool
}

type Proposal struct {
	ID          uint64
	Title       string
	Description string
	Link        string
	Proposer    common.Address
	CreatedAt   uint64

	FundingAmount uint64
	Milestones    []Milestone

	State         ProposalState
	Phase         ProposalPhase
	PhaseEndBlock uint64

	YesVotes uint64
	NoVotes  uint64

	ExecutedAt *uint64
}

type VoteRecord struct {
	Voter      common.Address
	ProposalID uint64
	VoteFor    bool
	Weight     uint64
	VotedAt    uint64
}

// CallContext carries the ambient identity and clock of a mutating call.
// The runtime that invokes the engine supplies both, the engine never
// looks them up on its own.
type CallContext struct {
	Caller common.Address
	Block  uint64
}

// AuthPolicy decides whether a caller may use the operations that the
// reference behavior leaves unrestricted (expert flag updates, treasury
// deposits). The default policy permits everyone.
type AuthPolicy func(caller common.Address) bool

func permitAll(common.Address) bool { return true }
