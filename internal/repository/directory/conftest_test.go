package directory

import (
	"context"
	"net/url"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	selectFn func(ctx context.Context, table string, params url.Values) ([]byte, error)
	rpcFn    func(ctx context.Context, fn string, args any) ([]byte, error)
}

func (m *mockStore) Select(ctx context.Context, table string, params url.Values) ([]byte, error) {
	if m.selectFn != nil {
		return m.selectFn(ctx, table, params)
	}
	return []byte("[]"), nil
}

func (m *mockStore) RPC(ctx context.Context, fn string, args any) ([]byte, error) {
	if m.rpcFn != nil {
		return m.rpcFn(ctx, fn, args)
	}
	return []byte("[]"), nil
}
