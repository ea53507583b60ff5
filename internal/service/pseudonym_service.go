package service

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const pseudonymKeySize = 32

// pseudonymSpace keeps partner pseudonyms apart from uuids derived for other
// purposes with the same key
var pseudonymSpace = uuid.MustParse("6f1d3c52-8a0e-4b7d-9c35-2e4f8a61b0d7")

// PseudonymService maps patient ids to the ids partner roles see. Without
// the key a pseudonym cannot be recomputed from a patient id.
type PseudonymService interface {
	Pseudonym(patientID string) uuid.UUID
}

type pseudonymService struct {
	key []byte
}

// NewPseudonymService keys pseudonyms with key. An empty key is replaced by
// a random one, so pseudonyms only stay stable for the life of the process.
func NewPseudonymService(log *logrus.Logger, key string) (PseudonymService, error) {
	k := []byte(key)
	if len(k) == 0 {
		k = make([]byte, pseudonymKeySize)
		if _, err := rand.Read(k); err != nil {
			return nil, fmt.Errorf("generate pseudonym key: %w", err)
		}
		log.Warn("PARTNER_PSEUDONYM_KEY is not set, partner pseudonyms change on every run")
	} else if len(k) < pseudonymKeySize/2 {
		log.Warnf("PARTNER_PSEUDONYM_KEY is only %d bytes long", len(k))
	}
	return &pseudonymService{key: k}, nil
}

// Pseudonym is an HMAC-SHA256 of the patient id laid out as a version 5 uuid
func (s *pseudonymService) Pseudonym(patientID string) uuid.UUID {
	return uuid.NewHash(hmac.New(sha256.New, s.key), pseudonymSpace, []byte(patientID), 5)
}
