package core

import (
	"context"
	"sync"
)

// ChainClient supplies the ambient block height used as the engine's
// clock. ethclient.Client satisfies it.
type ChainClient interface {
	BlockNumber(ctx context.Context) (uint64, error)
}

var _ ChainClient = (*MockClient)(nil)

// MockClient is a manually advanced chain head for tests.
type MockClient struct {
	mu     sync.Mutex
	height uint64
}

func NewMockClient(height uint64) *MockClient {
	return &MockClient{height: height}
}

func (mc *MockClient) BlockNumber(ctx context.Context) (uint64, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	return mc.height, nil
}

func (mc *MockClient) Advance(blocks uint64) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.height += blocks
}
