package core

import (
	"github.com/ethereum/go-ethereum/common"
)

// Read-side queries. All of them take the engine mutex for a consistent
// read, none of them mutate, and all return copies so callers cannot
// alias the ledger's records.

func (e *Engine) GetMember(addr common.Address) (*Member, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	m, ok := e.state.Members[memberKey(addr)]
	if !ok {
		return nil, ErrNotMember
	}

	cp := *m
	if m.DelegatedTo != nil {
		target := *m.DelegatedTo
		cp.DelegatedTo = &target
	}
	return &cp, nil
}

func (e *Engine) GetProposal(proposalID uint64) (*Proposal, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.state.proposal(proposalID)
	if !ok {
		return nil, ErrProposalNotFound
	}
	return copyProposal(p), nil
}

// GetMemberVote returns the vote the given member cast on the proposal,
// or nil if they have not voted.
func (e *Engine) GetMemberVote(proposalID uint64, voter common.Address) (*VoteRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.state.proposal(proposalID); !ok {
		return nil, ErrProposalNotFound
	}

	v, ok := e.state.vote(proposalID, voter)
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (e *Engine) GetTreasuryBalance() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.state.TreasuryBalance
}

func (e *Engine) GetTotalTokens() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.state.TotalTokensIssued
}

func (e *Engine) GetProposalCount() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.state.ProposalCount
}

// HasReachedQuorum applies the finalize quorum formula to the current
// tally, usable in any phase for polling.
func (e *Engine) HasReachedQuorum(proposalID uint64) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.state.proposal(proposalID)
	if !ok {
		return false, ErrProposalNotFound
	}
	return e.reachedQuorum(p), nil
}

// HasProposalPassed applies the finalize pass formula to the current
// tally without settling anything.
func (e *Engine) HasProposalPassed(proposalID uint64) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.state.proposal(proposalID)
	if !ok {
		return false, ErrProposalNotFound
	}
	return e.proposalPassed(p), nil
}

func copyProposal(p *Proposal) *Proposal {
	cp := *p
	cp.Milestones = make([]Milestone, len(p.Milestones))
	copy(cp.Milestones, p.Milestones)
	if p.ExecutedAt != nil {
		executedAt := *p.ExecutedAt
		cp.ExecutedAt = &executedAt
	}
	return &cp
}
