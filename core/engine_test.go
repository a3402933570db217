package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshdao/governance/repo"
)

func TestSnapshotRestore(t *testing.T) {
	c := repo.DefaultConfig(t.TempDir())
	c.Log.Level = "debug"
	c.Governance.SubmissionPhaseBlocks = 10
	c.Governance.DiscussionPhaseBlocks = 10
	c.Governance.VotingPhaseBlocks = 10

	e, err := NewEngine(context.Background(), c, NewMockClient(1))
	require.Nil(t, err)

	require.Nil(t, e.Register(call(alice, 1), 100, true))
	require.Nil(t, e.Register(call(bob, 1), 50, false))
	require.Nil(t, e.Delegate(call(bob, 2), alice))
	require.Nil(t, e.AddToTreasury(call(alice, 2), 500))

	id, err := e.CreateProposal(call(alice, 3), "grant", "desc", "link", 100, testMilestones())
	require.Nil(t, err)
	require.Nil(t, e.StartDiscussion(call(alice, 13), id))
	require.Nil(t, e.StartVoting(call(alice, 23), id))
	require.Nil(t, e.VoteOnProposal(call(alice, 24), id, true))

	require.Nil(t, e.Stop())

	// a second engine on the same repo root picks up the snapshot
	restored, err := NewEngine(context.Background(), c, NewMockClient(1))
	require.Nil(t, err)
	defer restored.Stop()

	assert.Equal(t, uint64(150), restored.GetTotalTokens())
	assert.Equal(t, uint64(500), restored.GetTreasuryBalance())
	assert.Equal(t, uint64(1), restored.GetProposalCount())

	m, err := restored.GetMember(bob)
	require.Nil(t, err)
	require.NotNil(t, m.DelegatedTo)
	assert.Equal(t, alice, *m.DelegatedTo)

	p, err := restored.GetProposal(id)
	require.Nil(t, err)
	assert.Equal(t, Active, p.State)
	assert.Equal(t, Voting, p.Phase)
	assert.Equal(t, uint64(33), p.PhaseEndBlock)
	assert.Equal(t, uint64(11), p.YesVotes)

	v, err := restored.GetMemberVote(id, alice)
	require.Nil(t, err)
	require.NotNil(t, v)
	assert.Equal(t, uint64(11), v.Weight)
}

func TestFailedCallLeavesStateUntouched(t *testing.T) {
	e := newTestEngine(t)
	id := createDraft(t, e)

	before, err := e.GetProposal(id)
	require.Nil(t, err)

	assert.ErrorIs(t, e.StartDiscussion(call(alice, 5), id), ErrInvalidPhase)
	assert.ErrorIs(t, e.StartVoting(call(alice, 11), id), ErrInvalidPhase)
	assert.ErrorIs(t, e.VoteOnProposal(call(alice, 11), id, true), ErrInvalidProposalState)
	_, err = e.FinalizeProposal(call(alice, 11), id)
	assert.ErrorIs(t, err, ErrInvalidProposalState)

	after, err := e.GetProposal(id)
	require.Nil(t, err)
	assert.Equal(t, before, after)
}

func TestQueriesReturnCopies(t *testing.T) {
	e := newTestEngine(t)
	id := createDraft(t, e)

	p, err := e.GetProposal(id)
	require.Nil(t, err)
	p.YesVotes = 999
	p.Milestones[0].Funded = true

	p2, err := e.GetProposal(id)
	require.Nil(t, err)
	assert.Equal(t, uint64(0), p2.YesVotes)
	assert.False(t, p2.Milestones[0].Funded)
}

func TestCurrentBlock(t *testing.T) {
	e := newTestEngine(t)

	h, err := e.CurrentBlock()
	require.Nil(t, err)
	assert.Equal(t, uint64(1), h)

	e.Client.(*MockClient).Advance(5)
	h, err = e.CurrentBlock()
	require.Nil(t, err)
	assert.Equal(t, uint64(6), h)
}
