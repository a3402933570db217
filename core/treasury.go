package core

// AddToTreasury credits the treasury balance. Unrestricted by default,
// the injected policy can narrow who may deposit.
func (e *Engine) AddToTreasury(call CallContext, amount uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.authorize(call.Caller) {
		return ErrNotAuthorized
	}
	if amount == 0 {
		return ErrInvalidAmount
	}

	e.state.TreasuryBalance += amount
	e.commit()

	e.Logger.Infof("treasury credited %d by %s, balance %d", amount, call.Caller, e.state.TreasuryBalance)
	return nil
}

// FundMilestone disburses one milestone's amount from the treasury.
// The funded flag is persisted in the same commit as the debit, the
// two never diverge.
func (e *Engine) FundMilestone(call CallContext, proposalID uint64, milestoneIndex int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.state.proposal(proposalID)
	if !ok {
		return ErrProposalNotFound
	}
	if milestoneIndex < 0 || milestoneIndex >= len(p.Milestones) {
		return ErrMilestoneNotFound
	}

	ms := &p.Milestones[milestoneIndex]
	if ms.Funded {
		return ErrMilestoneAlreadyFunded
	}
	if e.state.TreasuryBalance < ms.Amount {
		return ErrTreasuryInsufficientFunds
	}

	e.state.TreasuryBalance -= ms.Amount
	ms.Funded = true
	e.commit()

	e.Logger.Infof("proposal %d milestone %d funded with %d, treasury balance %d", proposalID, milestoneIndex, ms.Amount, e.state.TreasuryBalance)
	return nil
}

// CompleteMilestone marks a funded milestone as delivered. Proposer
// only. Marking an already completed milestone is a no-op.
func (e *Engine) CompleteMilestone(call CallContext, proposalID uint64, milestoneIndex int) error {
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
	if milestoneIndex < 0 || milestoneIndex >= len(p.Milestones) {
		return ErrMilestoneNotFound
	}

	p.Milestones[milestoneIndex].Completed = true
	e.commit()

	e.Logger.Debugf("proposal %d milestone %d completed", proposalID, milestoneIndex)
	return nil
}
