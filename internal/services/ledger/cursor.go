package ledger

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// The cursor encodes the (createdAt, id) sort position of the last row a page
// emitted, as base64url without padding over "<epoch-millis>:<id>". The format
// is a wire contract: previously issued cursors must keep decoding.

// encodeCursor returns the token for the given position, or "" when there is
// no next page.
func encodeCursor(createdAt *time.Time, id *int64) string {
	if createdAt == nil || id == nil {
		return ""
	}
	raw := fmt.Sprintf("%d:%d", createdAt.UnixMilli(), *id)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// decodeCursor reverses encodeCursor. Malformed input of any kind degrades to
// (nil, nil) — pagination restarts from the beginning instead of failing the
// request.
func decodeCursor(cursor string) (*time.Time, *int64) {
	if strings.TrimSpace(cursor) == "" {
		return nil, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return nil, nil
	}
	parts := strings.Split(string(raw), ":")
	if len(parts) < 2 {
		return nil, nil
	}
	millis, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return nil, nil
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return nil, nil
	}
	createdAt := time.UnixMilli(millis).UTC()
	return &createdAt, &id
}
