package core

import (
	"github.com/samber/lo"
)

// CreateProposal opens a new draft in the submission phase and returns
// its id. Ids are sequential and start at 1. The funding amount must
// equal the milestone sum exactly, this is checked once here and never
// re-verified because milestone amounts are immutable afterwards.
func (e *Engine) CreateProposal(call CallContext, title, description, link string, fundingAmount uint64, milestones []Milestone) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.state.activeMember(call.Caller); !ok {
		return 0, ErrNotMember
	}
	if len(milestones) > e.Config.Governance.MaxMilestones {
		return 0, ErrInvalidAmount
	}

	sum := lo.SumBy(milestones, func(m Milestone) uint64 { return m.Amount })
	if sum != fundingAmount {
		return 0, ErrInvalidAmount
	}

	ms := make([]Milestone, len(milestones))
	for i, m := range milestones {
		ms[i] = Milestone{Description: m.Description, Amount: m.Amount}
	}

	id := e.state.ProposalCount + 1
	e.state.ProposalCount = id
	e.state.Proposals[id] = &Proposal{
		ID:            id,
		Title:         title,
		Description:   description,
		Link:          link,
		Proposer:      call.Caller,
		CreatedAt:     call.Block,
		FundingAmount: fundingAmount,
		Milestones:    ms,
		State:         Draft,
		Phase:         Submission,
		PhaseEndBlock: call.Block + e.Config.Governance.SubmissionPhaseBlocks,
	}
	e.commit()

	e.Logger.Infof("proposal %d %q created by %s, funding %d over %d milestones", id, title, call.Caller, fundingAmount, len(ms))
	return id, nil
}

// StartDiscussion advances a draft from the submission phase once its
// deadline has passed. Proposer only.
func (e *Engine) StartDiscussion(call CallContext, proposalID uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.state.proposal(proposalID)
	if !ok {
		return ErrProposalNotFound
	}
	if call.Caller != p.Proposer {
		return ErrNotAuthorized
	}
	if p.State != Draft {
		return ErrInvalidProposalState
	}
	if p.Phase != Submission || call.Block < p.PhaseEndBlock {
		return ErrInvalidPhase
	}

	p.Phase = Discussion
	p.PhaseEndBlock = call.Block + e.Config.Governance.DiscussionPhaseBlocks
	e.commit()

	e.Logger.Infof("proposal %d entered discussion until block %d", proposalID, p.PhaseEndBlock)
	return nil
}

// StartVoting activates the proposal and opens the voting window. This
// is the only transition that changes state and phase together. Any
// active member may trigger it, not just the proposer.
func (e *Engine) StartVoting(call CallContext, proposalID uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.state.proposal(proposalID)
	if !ok {
		return ErrProposalNotFound
	}
	if call.Caller != p.Proposer {
		if _, ok := e.state.activeMember(call.Caller); !ok {
			return ErrNotAuthorized
		}
	}
	if p.State != Draft {
		return ErrInvalidProposalState
	}
	if p.Phase != Discussion || call.Block < p.PhaseEndBlock {
		return ErrInvalidPhase
	}

	p.State = Active
	p.Phase = Voting
	p.PhaseEndBlock = call.Block + e.Config.Governance.VotingPhaseBlocks
	e.commit()

	e.Logger.Infof("proposal %d voting open until block %d", proposalID, p.PhaseEndBlock)
	return nil
}

// VoteOnProposal casts a weighted ballot. The double-vote guard keys on
// the literal caller, so a delegator and their delegate are tracked
// independently. Weight always comes from the caller's own balance.
func (e *Engine) VoteOnProposal(call CallContext, proposalID uint64, voteFor bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.state.proposal(proposalID)
	if !ok {
		return ErrProposalNotFound
	}
	m, ok := e.state.activeMember(call.Caller)
	if !ok {
		return ErrNotMember
	}
	if p.State != Active {
		return ErrInvalidProposalState
	}
	if p.Phase != Voting || call.Block > p.PhaseEndBlock {
		return ErrVotingClosed
	}

	// one hop only, the delegate's own delegation is not followed
	effective := call.Caller
	if m.DelegatedTo != nil {
		effective = *m.DelegatedTo
	}
	if effective != call.Caller {
		if _, ok := e.state.activeMember(effective); !ok {
			return ErrDelegationNotAllowed
		}
	}

	if _, ok := e.state.vote(proposalID, call.Caller); ok {
		return ErrAlreadyVoted
	}

	weight := quadraticWeight(m.TokenBalance)
	if voteFor {
		p.YesVotes += weight
	} else {
		p.NoVotes += weight
	}
	e.state.Votes[voteKey(proposalID, call.Caller)] = &VoteRecord{
		Voter:      call.Caller,
		ProposalID: proposalID,
		VoteFor:    voteFor,
		Weight:     weight,
		VotedAt:    call.Block,
	}
	e.commit()

	e.Logger.Debugf("vote on proposal %d by %s (effective %s): for=%v weight=%d", proposalID, call.Caller, effective, voteFor, weight)
	return nil
}

// FinalizeProposal tallies a closed vote and settles the outcome.
// Passing moves the proposal into the execution phase, rejection
// leaves the phase where it was.
func (e *Engine) FinalizeProposal(call CallContext, proposalID uint64) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.state.proposal(proposalID)
	if !ok {
		return false, ErrProposalNotFound
	}
	if p.State != Active {
		return false, ErrInvalidProposalState
	}
	if p.Phase != Voting || call.Block < p.PhaseEndBlock {
		return false, ErrInvalidPhase
	}

	passed := e.proposalPassed(p)
	if passed {
		p.State = Passed
		p.Phase = Execution
	} else {
		p.State = Rejected
	}
	e.commit()

	e.Logger.Infof("proposal %d finalized: passed=%v yes=%d no=%d", proposalID, passed, p.YesVotes, p.NoVotes)
	return passed, nil
}

// CancelProposal withdraws a proposal. Executed and rejected proposals
// are final and cannot be cancelled.
func (e *Engine) CancelProposal(call CallContext, proposalID uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.state.proposal(proposalID)
	if !ok {
		return ErrProposalNotFound
	}
	if call.Caller != p.Proposer {
		return ErrNotAuthorized
	}
	if p.State == Executed || p.State == Rejected {
		return ErrInvalidProposalState
	}

	p.State = Cancelled
	e.commit()

	e.Logger.Infof("proposal %d cancelled by proposer", proposalID)
	return nil
}

// ExecuteProposal closes out a passed proposal once every milestone has
// been funded and completed.
func (e *Engine) ExecuteProposal(call CallContext, proposalID uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.state.proposal(proposalID)
	if !ok {
		return ErrProposalNotFound
	}
	if call.Caller != p.Proposer {
		return ErrNotAuthorized
	}
	if p.State != Passed {
		return ErrInvalidProposalState
	}

	done := lo.EveryBy(p.Milestones, func(m Milestone) bool { return m.Funded && m.Completed })
	if !done {
		return ErrProposalActive
	}

	p.State = Executed
	executedAt := call.Block
	p.ExecutedAt = &executedAt
	e.commit()

	e.Logger.Infof("proposal %d executed at block %d", proposalID, executedAt)
	return nil
}

// quorum and pass formulas, shared by FinalizeProposal and the
// read-side queries. Integer division throughout, truncating.

func (e *Engine) reachedQuorum(p *Proposal) bool {
	total := p.YesVotes + p.NoVotes
	return total >= e.state.TotalTokensIssued*e.Config.Governance.QuorumThresholdPercent/100
}

func (e *Engine) proposalPassed(p *Proposal) bool {
	total := p.YesVotes + p.NoVotes
	if total == 0 {
		// yes-percentage of an empty tally is defined as zero
		return false
	}
	return e.reachedQuorum(p) && p.YesVotes*100/total >= e.Config.Governance.AcceptanceThresholdPercent
}
