package session

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"

	"golang.org/x/crypto/nacl/secretbox"

	"github.com/kingstalent/poster-gateway/internal/errors"
)

const nonceSize = 24

// Codec seals and opens session payloads for cookie transport. The key is
// derived once from the configured cookie secret; an undecryptable or
// tampered cookie opens as ErrSessionInvalid.
type Codec struct {
	key [32]byte
}

// NewCodec derives the sealing key from the configured secret.
func NewCodec(secret string) *Codec {
	return &Codec{key: sha256.Sum256([]byte(secret))}
}

// Seal encrypts a session into a cookie-safe string.
func (c *Codec) Seal(s Session) (string, error) {
	payload, err := json.Marshal(s)
	if err != nil {
		return "", errors.Wrapf(err, "session Seal marshal")
	}

	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", errors.Wrapf(err, "session Seal nonce")
	}

	sealed := secretbox.Seal(nonce[:], payload, &nonce, &c.key)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Open decrypts a cookie value back into a session.
func (c *Codec) Open(value string) (Session, error) {
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return Session{}, errors.Wrapf(errors.ErrSessionInvalid, "session Open decode")
	}
	if len(raw) <= nonceSize {
		return Session{}, errors.Wrapf(errors.ErrSessionInvalid, "session Open short payload")
	}

	var nonce [nonceSize]byte
	copy(nonce[:], raw[:nonceSize])

	payload, ok := secretbox.Open(nil, raw[nonceSize:], &nonce, &c.key)
	if !ok {
		return Session{}, errors.Wrapf(errors.ErrSessionInvalid, "session Open unseal")
	}

	var s Session
	if err := json.Unmarshal(payload, &s); err != nil {
		return Session{}, errors.Wrapf(errors.ErrSessionInvalid, "session Open unmarshal")
	}
	return s, nil
}
