package pagination

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	apperr "github.com/noelps-git/tastemates/pkg/errors"
)

// Cursor is the opaque polling state a client echoes back. CreatedNano
// (full unix nanoseconds, so no precision is lost against the stored
// created_at) plus MessageID establish a strict total order per group, so
// same-timestamp messages are neither missed nor duplicated.
type Cursor struct {
	CreatedNano int64 `json:"created_nano"`
	MessageID   uint  `json:"message_id,omitempty"`
}

// Time returns the cursor position as a wall-clock instant.
func (c Cursor) Time() time.Time {
	return time.Unix(0, c.CreatedNano).UTC()
}

// FromTime builds a cursor for the given message position.
func FromTime(t time.Time, messageID uint) Cursor {
	return Cursor{CreatedNano: t.UnixNano(), MessageID: messageID}
}

// Encode converts a Cursor into a Base64 string.
func Encode(c Cursor) (string, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal cursor: %w", err)
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// Decode parses a cursor token. Empty token means first page. A bare
// integer is accepted as a unix-millis timestamp for clients that only kept
// the created_at of the last message they saw.
func Decode(token string) (Cursor, error) {
	if token == "" {
		return Cursor{}, nil
	}

	if ms, err := strconv.ParseInt(token, 10, 64); err == nil {
		return Cursor{CreatedNano: ms * int64(time.Millisecond)}, nil
	}

	b, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, apperr.New(apperr.ErrCodeValidation, "invalid cursor token")
	}

	var c Cursor
	if err := json.Unmarshal(b, &c); err != nil {
		return Cursor{}, apperr.New(apperr.ErrCodeValidation, "invalid cursor token")
	}
	return c, nil
}
