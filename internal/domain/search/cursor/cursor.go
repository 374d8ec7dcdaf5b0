// Package cursor implements the opaque pagination token: the ordering key
// of the last record a page returned.
package cursor

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/teepals/roundsearch/internal/domain"
)

// Cursor is a position in the (effectiveDateMillis, id) total order.
// The zero Cursor sorts before every record.
type Cursor struct {
	millis int64
	id     string
}

// New creates a cursor from an ordering key.
func New(millis int64, id string) Cursor {
	return Cursor{millis: millis, id: id}
}

// Millis returns the ordering timestamp in unix milliseconds.
func (c Cursor) Millis() int64 { return c.millis }

// ID returns the tie-break record identifier.
func (c Cursor) ID() string { return c.id }

// IsZero reports whether the cursor is unset (first page).
func (c Cursor) IsZero() bool { return c.millis == 0 && c.id == "" }

// Precedes reports whether the ordering key (millis, id) strictly follows
// this cursor, i.e. whether a record with that key belongs to a later page.
func (c Cursor) Precedes(millis int64, id string) bool {
	if millis != c.millis {
		return millis > c.millis
	}
	return id > c.id
}

// Encode returns the opaque wire form of the cursor.
func (c Cursor) Encode() string {
	raw := strconv.FormatInt(c.millis, 10) + ":" + c.id
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// Decode parses an opaque cursor produced by Encode. An empty token is a
// valid zero cursor; anything else malformed is rejected.
func Decode(token string) (Cursor, error) {
	if token == "" {
		return Cursor{}, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("%w: %v", domain.ErrInvalidCursor, err)
	}
	millisPart, id, ok := strings.Cut(string(raw), ":")
	if !ok {
		return Cursor{}, fmt.Errorf("%w: missing separator", domain.ErrInvalidCursor)
	}
	millis, err := strconv.ParseInt(millisPart, 10, 64)
	if err != nil {
		return Cursor{}, fmt.Errorf("%w: bad timestamp", domain.ErrInvalidCursor)
	}
	if id == "" {
		return Cursor{}, fmt.Errorf("%w: missing id", domain.ErrInvalidCursor)
	}
	return Cursor{millis: millis, id: id}, nil
}
