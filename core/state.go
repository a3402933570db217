package core

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

const stateKey = "governanceState"

// ledgerState is the single aggregate holding every governance record.
// All mutation goes through the engine's operations, one at a time,
// and the whole aggregate is snapshotted to storage after each commit.
type ledgerState struct {
	Members   map[string]*Member     `json:"members"`
	Proposals map[uint64]*Proposal   `json:"proposals"`
	Votes     map[string]*VoteRecord `json:"votes"`

	TreasuryBalance   uint64 `json:"treasuryBalance"`
	TotalTokensIssued uint64 `json:"totalTokensIssued"`
	ProposalCount     uint64 `json:"proposalCount"`
}

func newLedgerState() *ledgerState {
	return &ledgerState{
		Members:   make(map[string]*Member),
		Proposals: make(map[uint64]*Proposal),
		Votes:     make(map[string]*VoteRecord),
	}
}

func memberKey(addr common.Address) string {
	return addr.Hex()
}

func voteKey(proposalID uint64, voter common.Address) string {
	return fmt.Sprintf("%d/%s", proposalID, voter.Hex())
}

func (s *ledgerState) activeMember(addr common.Address) (*Member, bool) {
	m, ok := s.Members[memberKey(addr)]
	if !ok || !m.IsActive {
		return nil, false
	}
	return m, true
}

func (s *ledgerState) proposal(id uint64) (*Proposal, bool) {
	p, ok := s.Proposals[id]
	return p, ok
}

func (s *ledgerState) vote(proposalID uint64, voter common.Address) (*VoteRecord, bool) {
	v, ok := s.Votes[voteKey(proposalID, voter)]
	return v, ok
}
