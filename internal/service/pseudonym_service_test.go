package service

import (
	"crypto/sha1"
	"strconv"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPseudonyms(t *testing.T, key string) PseudonymService {
	t.Helper()
	s, err := NewPseudonymService(quietLogger(), key)
	require.NoError(t, err)
	return s
}

func TestPseudonym_StableForKey(t *testing.T) {
	a := newPseudonyms(t, "district-shared-secret-0001")
	b := newPseudonyms(t, "district-shared-secret-0001")

	assert.Equal(t, a.Pseudonym("4"), b.Pseudonym("4"))
	assert.NotEqual(t, a.Pseudonym("4"), a.Pseudonym("5"))
	assert.Equal(t, uuid.Version(5), a.Pseudonym("4").Version())
	assert.Equal(t, uuid.RFC4122, a.Pseudonym("4").Variant())
}

func TestPseudonym_NotDerivableWithoutKey(t *testing.T) {
	s := newPseudonyms(t, "district-shared-secret-0001")
	other := newPseudonyms(t, "guessed-key")
	observed := s.Pseudonym("4")

	// enumerate small ids with every unkeyed derivation a caller could try
	for i := 0; i < 1000; i++ {
		id := []byte(strconv.Itoa(i))
		assert.NotEqual(t, observed, uuid.NewSHA1(pseudonymSpace, id))
		assert.NotEqual(t, observed, uuid.NewSHA1(uuid.NameSpaceOID, id))
		assert.NotEqual(t, observed, uuid.NewHash(sha1.New(), pseudonymSpace, id, 5))
		assert.NotEqual(t, observed, other.Pseudonym(string(id)))
	}
}

func TestPseudonym_RandomKeyWhenUnset(t *testing.T) {
	a := newPseudonyms(t, "")
	b := newPseudonyms(t, "")

	assert.Equal(t, a.Pseudonym("1"), a.Pseudonym("1"))
	assert.NotEqual(t, a.Pseudonym("1"), b.Pseudonym("1"))
}
