package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common"

	"github.com/meshdao/governance/core"
)

// newQueryServer exposes the read-side queries over HTTP. Mutating
// operations are not served here, contract invocation stays outside
// this process.
func newQueryServer(engine *core.Engine, addr string) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/member", func(w http.ResponseWriter, r *http.Request) {
		m, err := engine.GetMember(common.HexToAddress(r.URL.Query().Get("address")))
		writeResult(w, m, err)
	})

	mux.HandleFunc("/proposal", func(w http.ResponseWriter, r *http.Request) {
		id, ok := queryID(w, r)
		if !ok {
			return
		}
		p, err := engine.GetProposal(id)
		writeResult(w, p, err)
	})

	mux.HandleFunc("/proposal/vote", func(w http.ResponseWriter, r *http.Request) {
		id, ok := queryID(w, r)
		if !ok {
			return
		}
		v, err := engine.GetMemberVote(id, common.HexToAddress(r.URL.Query().Get("voter")))
		writeResult(w, v, err)
	})

	mux.HandleFunc("/proposal/quorum", func(w http.ResponseWriter, r *http.Request) {
		id, ok := queryID(w, r)
		if !ok {
			return
		}
		reached, err := engine.HasReachedQuorum(id)
		writeResult(w, map[string]bool{"reached": reached}, err)
	})

	mux.HandleFunc("/proposal/passed", func(w http.ResponseWriter, r *http.Request) {
		id, ok := queryID(w, r)
		if !ok {
			return
		}
		passed, err := engine.HasProposalPassed(id)
		writeResult(w, map[string]bool{"passed": passed}, err)
	})

	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		writeResult(w, map[string]uint64{
			"treasuryBalance": engine.GetTreasuryBalance(),
			"totalTokens":     engine.GetTotalTokens(),
			"proposalCount":   engine.GetProposalCount(),
		}, nil)
	})

	return &http.Server{Addr: addr, Handler: mux}
}

func queryID(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	id, err := strconv.ParseUint(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid proposal id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func writeResult(w http.ResponseWriter, v any, err error) {
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, core.ErrProposalNotFound) || errors.Is(err, core.ErrNotMember) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
