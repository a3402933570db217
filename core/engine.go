package core

import (
	"context"
	"encoding/json"
	"path/filepath"
	"sync"

	"github.com/axiomesh/axiom-kit/log"
	"github.com/axiomesh/axiom-kit/storage"
	"github.com/axiomesh/axiom-kit/storage/leveldb"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/meshdao/governance/repo"
)

// Engine runs the governance ledger. Every public operation takes the
// engine mutex, validates all preconditions against the current state
// and the caller-supplied block height, and only then mutates, so a
// failed call never leaves a partial write behind.
type Engine struct {
	Ctx    context.Context
	Client ChainClient
	Logger *logrus.Logger
	DB     storage.Storage
	Config *repo.Config

	mu        sync.Mutex
	state     *ledgerState
	authorize AuthPolicy
}

func NewEngine(ctx context.Context, config *repo.Config, client ChainClient) (*Engine, error) {
	logger := log.New()
	logger.SetLevel(log.ParseLevel(config.Log.Level))

	db, err := leveldb.New(filepath.Join(config.RepoRoot, "leveldb"))
	if err != nil {
		return nil, err
	}

	e := &Engine{
		Ctx:       ctx,
		Client:    client,
		Logger:    logger,
		DB:        db,
		Config:    config,
		state:     newLedgerState(),
		authorize: permitAll,
	}

	if err := e.restore(); err != nil {
		return nil, err
	}

	return e, nil
}

// SetAuthPolicy layers a stricter policy over the operations that are
// unrestricted by default. Passing nil keeps the permissive default.
func (e *Engine) SetAuthPolicy(policy AuthPolicy) {
	if policy == nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.authorize = policy
}

// CurrentBlock reads the chain head, the ambient clock for callers that
// do not bring their own.
func (e *Engine) CurrentBlock() (uint64, error) {
	return e.Client.BlockNumber(e.Ctx)
}

// Stop releases the underlying storage. The engine must not be used
// afterwards.
func (e *Engine) Stop() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.DB.Close()
}

func (e *Engine) restore() error {
	data := e.DB.Get([]byte(stateKey))
	if data == nil {
		return nil
	}

	st := newLedgerState()
	if err := json.Unmarshal(data, st); err != nil {
		return errors.Wrap(err, "restore governance state")
	}
	e.state = st

	e.Logger.Infof("restored governance state: %d members, %d proposals", len(st.Members), len(st.Proposals))
	return nil
}

// commit snapshots the whole aggregate. Called with the mutex held,
// after the last mutation of a successful operation.
func (e *Engine) commit() {
	data, err := json.Marshal(e.state)
	if err != nil {
		e.Logger.Errorf("marshal governance state: %s", err)
		return
	}

	e.DB.Put([]byte(stateKey), data)
}

// quadraticWeight is the vote weight for a token balance. The linear
// approximation of a square root is part of the ledger's contract,
// conformance depends on it staying exactly 1 + balance/10.
func quadraticWeight(balance uint64) uint64 {
	return 1 + balance/10
}
