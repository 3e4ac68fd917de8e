package db

import "errors"

// ErrKeyNotFound is returned by KV.Get for a missing or expired key.
var ErrKeyNotFound = errors.New("db: key not found")

// Op names the cache command that failed.
type Op string

// Cache commands, as sent on the wire.
const (
	OpPing  Op = "PING"
	OpGet   Op = "GET"
	OpGetEx Op = "GETEX"
	OpSet   Op = "SET"
)

// Error wraps a cache failure with the command that caused it.
type Error struct {
	Op  Op
	Key string
	Err error
}

func (e *Error) Error() string {
	if e.Key == "" {
		return string(e.Op) + ": " + e.Err.Error()
	}
	return string(e.Op) + " " + e.Key + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }
