package core

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshdao/governance/repo"
)

var (
	alice = common.HexToAddress("0x1100000000000000000000000000000000000001")
	bob   = common.HexToAddress("0x1100000000000000000000000000000000000002")
	carol = common.HexToAddress("0x1100000000000000000000000000000000000003")
	dave  = common.HexToAddress("0x1100000000000000000000000000000000000004")
)

func newTestEngine(t *testing.T) *Engine {
	c := repo.DefaultConfig(t.TempDir())
	c.Log.Level = "debug"
	c.Governance.SubmissionPhaseBlocks = 10
	c.Governance.DiscussionPhaseBlocks = 10
	c.Governance.VotingPhaseBlocks = 10

	e, err := NewEngine(context.Background(), c, NewMockClient(1))
	require.Nil(t, err)
	return e
}

func call(caller common.Address, block uint64) CallContext {
	return CallContext{Caller: caller, Block: block}
}

func TestRegister(t *testing.T) {
	e := newTestEngine(t)

	require.Nil(t, e.Register(call(alice, 1), 100, false))

	m, err := e.GetMember(alice)
	require.Nil(t, err)
	assert.Equal(t, uint64(100), m.TokenBalance)
	assert.True(t, m.IsActive)
	assert.False(t, m.IsExpert)
	assert.Nil(t, m.DelegatedTo)
	assert.Equal(t, uint64(1), m.JoinedAt)

	assert.Equal(t, uint64(100), e.GetTotalTokens())
}

func TestRegisterTwiceFails(t *testing.T) {
	e := newTestEngine(t)

	require.Nil(t, e.Register(call(alice, 1), 100, false))
	assert.ErrorIs(t, e.Register(call(alice, 2), 50, true), ErrAlreadyMember)

	// issuance counter only reflects the first successful call
	assert.Equal(t, uint64(100), e.GetTotalTokens())
}

func TestRegisterZeroTokens(t *testing.T) {
	e := newTestEngine(t)

	assert.ErrorIs(t, e.Register(call(alice, 1), 0, false), ErrInvalidAmount)
	assert.Equal(t, uint64(0), e.GetTotalTokens())
}

func TestDelegate(t *testing.T) {
	e := newTestEngine(t)

	require.Nil(t, e.Register(call(alice, 1), 100, false))
	require.Nil(t, e.Register(call(bob, 1), 50, false))

	assert.ErrorIs(t, e.Delegate(call(carol, 2), alice), ErrNotMember)
	assert.ErrorIs(t, e.Delegate(call(alice, 2), carol), ErrNotMember)
	assert.ErrorIs(t, e.Delegate(call(alice, 2), alice), ErrDelegationNotAllowed)

	require.Nil(t, e.Delegate(call(alice, 2), bob))
	m, err := e.GetMember(alice)
	require.Nil(t, err)
	require.NotNil(t, m.DelegatedTo)
	assert.Equal(t, bob, *m.DelegatedTo)
}

func TestRemoveDelegation(t *testing.T) {
	e := newTestEngine(t)

	require.Nil(t, e.Register(call(alice, 1), 100, false))
	require.Nil(t, e.Register(call(bob, 1), 50, false))

	assert.ErrorIs(t, e.RemoveDelegation(call(carol, 2)), ErrNotMember)

	// no-op when nothing is delegated
	require.Nil(t, e.RemoveDelegation(call(alice, 2)))

	require.Nil(t, e.Delegate(call(alice, 2), bob))
	require.Nil(t, e.RemoveDelegation(call(alice, 3)))

	m, err := e.GetMember(alice)
	require.Nil(t, err)
	assert.Nil(t, m.DelegatedTo)
}

func TestUpdateExpertStatus(t *testing.T) {
	e := newTestEngine(t)

	require.Nil(t, e.Register(call(alice, 1), 100, false))

	assert.ErrorIs(t, e.UpdateExpertStatus(call(bob, 2), carol, true), ErrNotMember)

	// the reference behavior restricts nobody, even non-members may flip the flag
	require.Nil(t, e.UpdateExpertStatus(call(bob, 2), alice, true))
	m, err := e.GetMember(alice)
	require.Nil(t, err)
	assert.True(t, m.IsExpert)
}

func TestUpdateExpertStatusWithPolicy(t *testing.T) {
	e := newTestEngine(t)

	require.Nil(t, e.Register(call(alice, 1), 100, false))

	e.SetAuthPolicy(func(caller common.Address) bool { return caller == alice })

	assert.ErrorIs(t, e.UpdateExpertStatus(call(bob, 2), alice, true), ErrNotAuthorized)
	require.Nil(t, e.UpdateExpertStatus(call(alice, 2), alice, true))
}
