package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignParseRoundtrip(t *testing.T) {
	secret := []byte("secret")

	signed, err := Sign(42, secret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	userID, err := Parse(signed, secret)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestParseWrongSecret(t *testing.T) {
	signed, err := Sign(42, []byte("secret"), time.Hour)
	require.NoError(t, err)

	_, err = Parse(signed, []byte("other-secret"))
	require.Error(t, err)
}

func TestParseExpired(t *testing.T) {
	secret := []byte("secret")

	signed, err := Sign(42, secret, -time.Minute)
	require.NoError(t, err)

	_, err = Parse(signed, secret)
	require.Error(t, err)
}

func TestParseGarbage(t *testing.T) {
	_, err := Parse("not-a-token", []byte("secret"))
	require.Error(t, err)
}
