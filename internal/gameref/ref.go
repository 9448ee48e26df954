// Package gameref implements the opaque, URL-safe references games are
// addressed by externally. A reference encodes the internal game ID; clients
// treat it as an opaque token.
package gameref

import (
	"encoding/base64"
	"strings"

	"github.com/mcoot/thirtyone-go/internal/model"
)

const refPrefix = "game:"

// Encode produces the opaque reference for a game ID
func Encode(id model.GameID) string {
	return base64.RawURLEncoding.EncodeToString([]byte(refPrefix + string(id)))
}

// Decode resolves an opaque reference back to a game ID.
// Malformed references yield model.ErrBadReference; whether the ID exists is
// the caller's problem.
func Decode(ref string) (model.GameID, error) {
	raw, err := base64.RawURLEncoding.DecodeString(ref)
	if err != nil {
		return "", model.ErrBadReference
	}

	decoded := string(raw)
	if !strings.HasPrefix(decoded, refPrefix) {
		return "", model.ErrBadReference
	}

	id := strings.TrimPrefix(decoded, refPrefix)
	if id == "" {
		return "", model.ErrBadReference
	}

	return model.GameID(id), nil
}
