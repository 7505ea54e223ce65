package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/cinema-box-office/internal/utils"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := utils.HashPassword("123", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "123", hash)
	assert.True(t, utils.VerifyPassword(hash, "123"))
	assert.False(t, utils.VerifyPassword(hash, "1234"))
}

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := utils.NewAccessToken("secret", "customer", "CUSTOMER", 5)
	require.NoError(t, err)

	claims, err := utils.ParseAccessToken("secret", tok.Token)
	require.NoError(t, err)
	assert.Equal(t, utils.Claims{Username: "customer", Role: "CUSTOMER"}, claims)

	_, err = utils.ParseAccessToken("other", tok.Token)
	assert.Error(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	tok, err := utils.NewAccessToken("secret", "customer", "CUSTOMER", -1)
	require.NoError(t, err)
	_, err = utils.ParseAccessToken("secret", tok.Token)
	assert.Error(t, err)
}

func TestHashPasswordRejectsEmptyAndOversized(t *testing.T) {
	_, err := utils.HashPassword("", bcrypt.MinCost)
	assert.Error(t, err)

	long := make([]byte, 73)
	for i := range long {
		long[i] = 'a'
	}
	_, err = utils.HashPassword(string(long), bcrypt.MinCost)
	assert.Error(t, err)
}
