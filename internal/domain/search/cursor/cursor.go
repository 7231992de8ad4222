// Package cursor encodes pagination offsets as opaque tokens.
package cursor

import (
	"encoding/base64"
	"strconv"
	"strings"
)

const prefix = "o:"

// Encode wraps offset in an opaque token. Non-positive offsets encode as "".
func Encode(offset int) string {
	if offset <= 0 {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString([]byte(prefix + strconv.Itoa(offset)))
}

// Decode returns the offset stored in token. Absent or malformed tokens decode to 0.
func Decode(token string) int {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return 0
	}
	digits, ok := strings.CutPrefix(string(raw), prefix)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
