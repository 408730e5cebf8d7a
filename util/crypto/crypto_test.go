package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("secret-password")
	assert.NoError(t, err)
	assert.NotEqual(t, "secret-password", hash)

	assert.True(t, CheckPasswordHash(hash, "secret-password"))
	assert.False(t, CheckPasswordHash(hash, "wrong-password"))
	assert.False(t, CheckPasswordHash("not-a-hash", "secret-password"))
}
