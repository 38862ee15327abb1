package encryption_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront-ai/assistant-service/internal/pkg/encryption"
)

func newAES(t *testing.T) *encryption.AESGCM {
	key, err := encryption.GenerateKey()
	require.NoError(t, err)
	enc, err := encryption.NewAESGCM(key)
	require.NoError(t, err)
	return enc
}

func TestNewAESGCM_RawKey(t *testing.T) {
	// Arrange
	key := "0123456789abcdef0123456789abcdef"

	// Act
	enc, err := encryption.NewAESGCM(key)

	// Assert
	require.NoError(t, err)
	assert.NotNil(t, enc)
}

func TestNewAESGCM_InvalidKeyLength(t *testing.T) {
	enc, err := encryption.NewAESGCM("tooshort!!!")

	assert.Error(t, err)
	assert.Nil(t, enc)
	assert.Contains(t, err.Error(), "must be 32 bytes")
}

func TestAESGCM_SealOpen(t *testing.T) {
	// Arrange
	enc := newAES(t)
	payload := []byte(`{"id":"abc","messages":[]}`)
	ad := []byte("session:abc")

	// Act
	sealed, err := enc.Seal(payload, ad)
	require.NoError(t, err)
	opened, err := enc.Open(sealed, ad)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, payload, opened)
	assert.NotContains(t, sealed, "messages")
}

func TestAESGCM_OpenRejectsOtherKey(t *testing.T) {
	// Arrange
	enc := newAES(t)
	sealed, err := enc.Seal([]byte("payload"), []byte("session:a"))
	require.NoError(t, err)

	// Act
	_, err = enc.Open(sealed, []byte("session:b"))

	// Assert
	assert.Error(t, err)
}

func TestAESGCM_OpenShortPayload(t *testing.T) {
	enc := newAES(t)

	_, err := enc.Open("AAAA", nil)

	assert.ErrorIs(t, err, encryption.ErrCiphertextTooShort)
}

func TestAESGCM_SealIsRandomized(t *testing.T) {
	enc := newAES(t)

	a, err := enc.Seal([]byte("same"), nil)
	require.NoError(t, err)
	b, err := enc.Seal([]byte("same"), nil)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestFromKey_EmptyKeyIsNoOp(t *testing.T) {
	// Act
	enc, err := encryption.FromKey("")
	require.NoError(t, err)
	sealed, err := enc.Seal([]byte("plain"), nil)
	require.NoError(t, err)
	opened, err := enc.Open(sealed, nil)

	// Assert
	require.NoError(t, err)
	assert.IsType(t, encryption.NoOp{}, enc)
	assert.Equal(t, "plain", string(opened))
}
