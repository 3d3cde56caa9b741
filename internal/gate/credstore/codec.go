package credstore

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"

	"github.com/herfa/gate/internal/gate/domain"
)

// codecVersion prefixes every encoded record so the format can change
// without old rows being misread as garbage.
const codecVersion = "g1."

// errDecode reports an unreadable encoded record. Never surfaced to users;
// the store treats it as "absent".
var errDecode = errors.New("credstore: undecodable record")

// Encode serializes a session record reversibly. This is obfuscation, NOT
// confidentiality: anyone holding the encoded string can recover the tokens.
// Treat the stored value with the same sensitivity as a password.
func Encode(rec domain.SessionRecord) (string, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return "", err
	}
	return codecVersion + base64.RawURLEncoding.EncodeToString(raw), nil
}

// Decode reverses Encode. Any malformed input yields errDecode.
func Decode(encoded string) (domain.SessionRecord, error) {
	payload, ok := strings.CutPrefix(encoded, codecVersion)
	if !ok {
		return domain.SessionRecord{}, errDecode
	}

	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return domain.SessionRecord{}, errDecode
	}

	var rec domain.SessionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return domain.SessionRecord{}, errDecode
	}
	return rec, nil
}
