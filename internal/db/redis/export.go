package redis

import "github.com/redis/rueidis"

// NewStoreWithClient wraps an existing rueidis client, such as a mock in tests.
func NewStoreWithClient(c rueidis.Client) *Store {
	return &Store{client: c}
}
