package core

import (
	"github.com/ethereum/go-ethereum/common"
)

// Register creates a member record for the caller and credits the
// global issuance counter. A second registration for the same identity
// always fails and leaves the counter untouched.
func (e *Engine) Register(call CallContext, tokenAmount uint64, isExpert bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.state.activeMember(call.Caller); ok {
		return ErrAlreadyMember
	}
	if tokenAmount == 0 {
		return ErrInvalidAmount
	}

	e.state.Members[memberKey(call.Caller)] = &Member{
		Address:      call.Caller,
		TokenBalance: tokenAmount,
		IsActive:     true,
		JoinedAt:     call.Block,
		IsExpert:     isExpert,
	}
	e.state.TotalTokensIssued += tokenAmount
	e.commit()

	e.Logger.Infof("member %s registered with %d tokens, total issued %d", call.Caller, tokenAmount, e.state.TotalTokensIssued)
	return nil
}

// Delegate points the caller's vote at another active member. One hop
// only, the target's own delegation is never followed.
func (e *Engine) Delegate(call CallContext, delegate common.Address) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	m, ok := e.state.activeMember(call.Caller)
	if !ok {
		return ErrNotMember
	}
	if _, ok := e.state.activeMember(delegate); !ok {
		return ErrNotMember
	}
	if delegate == call.Caller {
		return ErrDelegationNotAllowed
	}

	target := delegate
	m.DelegatedTo = &target
	e.commit()

	e.Logger.Debugf("member %s delegated to %s", call.Caller, delegate)
	return nil
}

// RemoveDelegation clears the caller's delegation. No-op if unset.
func (e *Engine) RemoveDelegation(call CallContext) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	m, ok := e.state.activeMember(call.Caller)
	if !ok {
		return ErrNotMember
	}

	m.DelegatedTo = nil
	e.commit()

	return nil
}

// UpdateExpertStatus overwrites a member's expert flag. The reference
// behavior restricts nobody, the injected policy can.
func (e *Engine) UpdateExpertStatus(call CallContext, member common.Address, isExpert bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.authorize(call.Caller) {
		return ErrNotAuthorized
	}

	m, ok := e.state.activeMember(member)
	if !ok {
		return ErrNotMember
	}

	m.IsExpert = isExpert
	e.commit()

	e.Logger.Debugf("member %s expert status set to %v by %s", member, isExpert, call.Caller)
	return nil
}
