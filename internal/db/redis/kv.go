package redis

import (
	"context"
	"time"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/carefinder/internal/db"
)

// Get returns the value at key. A positive ttl uses GETEX so that every read
// restarts the expiry; frequently asked queries stay cached. A missing key
// returns db.ErrKeyNotFound.
func (s *Store) Get(ctx context.Context, key string, ttl time.Duration) ([]byte, error) {
	op := db.OpGet
	var cmd rueidis.Completed
	if secs := int64(ttl / time.Second); secs > 0 {
		op = db.OpGetEx
		cmd = s.client.B().Getex().Key(key).ExSeconds(secs).Build()
	} else {
		cmd = s.client.B().Get().Key(key).Build()
	}

	data, err := s.client.Do(ctx, cmd).AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, db.ErrKeyNotFound
		}
		return nil, &db.Error{Op: op, Key: key, Err: err}
	}
	return data, nil
}

// Put stores value at key, with expiry when ttl is positive.
func (s *Store) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	var cmd rueidis.Completed
	if ttl > 0 {
		cmd = s.client.B().Set().Key(key).Value(rueidis.BinaryString(value)).Ex(ttl).Build()
	} else {
		cmd = s.client.B().Set().Key(key).Value(rueidis.BinaryString(value)).Build()
	}
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpSet, Key: key, Err: err}
	}
	return nil
}
