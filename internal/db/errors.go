package db

import "errors"

// ErrKeyNotFound signals a read of a missing key.
var ErrKeyNotFound = errors.New("db: key not found")

// Op constants map to Redis/Valkey command names for error context.
const (
	OpGet           = "GET"
	OpSet           = "SET"
	OpMGet          = "MGET"
	OpDel           = "DEL"
	OpExists        = "EXISTS"
	OpZAdd          = "ZADD"
	OpZRem          = "ZREM"
	OpZRangeByLex   = "ZRANGEBYLEX"
	OpZRangeByScore = "ZRANGEBYSCORE"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
