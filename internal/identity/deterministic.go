package identity

import (
	"github.com/goliatone/go-sdui/internal/schema"
	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// Fingerprint hashes the canonical serialization of a document. Two documents
// share a fingerprint only when they export to the same JSON; the content is
// hashed verbatim, without case or whitespace normalization.
func Fingerprint(doc *schema.Schema) (uuid.UUID, error) {
	payload, err := schema.Fingerprint(doc)
	if err != nil {
		return uuid.Nil, err
	}
	return derive("go-sdui:content:" + string(payload)), nil
}

// derive hashes key with go-hashid, falling back to a SHA-1 name UUID.
func derive(key string) uuid.UUID {
	uid, err := hashid.NewUUID(key, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(false))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key))
	}
	return uid
}
