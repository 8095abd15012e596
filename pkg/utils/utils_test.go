package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessToken_RoundTrip(t *testing.T) {
	token, err := NewAccessToken("secret", 7, time.Hour)
	require.NoError(t, err)

	userID, err := ParseAccessToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), userID)
}

func TestAccessToken_Rejects(t *testing.T) {
	token, err := NewAccessToken("secret", 7, time.Hour)
	require.NoError(t, err)

	_, err = ParseAccessToken("other-secret", token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, err := NewAccessToken("secret", 7, -time.Minute)
	require.NoError(t, err)
	_, err = ParseAccessToken("secret", expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseAccessToken("secret", "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("hunter22", 4)
	require.NoError(t, err)

	assert.NotEqual(t, "hunter22", hash)
	assert.True(t, CheckPasswordHash("hunter22", hash))
	assert.False(t, CheckPasswordHash("hunter23", hash))
}

func TestCardNumber(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		valid bool
		last4 string
	}{
		{"spaced 16 digits", "4242 4242 4242 4242", true, "4242"},
		{"13 digits", "4000000000006", true, "0006"},
		{"too short", "123456789012", false, "9012"},
		{"letters", "4242-4242-4242-4242", false, "4242"},
		{"20 digits", "12345678901234567890", false, "7890"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.valid, IsValidCardNumber(tc.input))
			assert.Equal(t, tc.last4, CardLast4(tc.input))
		})
	}
}

func TestValidateStruct_CustomTags(t *testing.T) {
	type payload struct {
		Code string `validate:"required,iata"`
		Card string `validate:"required,cardnumber"`
	}

	assert.Nil(t, ValidateStruct(payload{Code: "JFK", Card: "4111 1111 1111 1111"}))

	errs := ValidateStruct(payload{Code: "JF1", Card: "41"})
	assert.Equal(t, "Must be a 3-letter airport code", errs["Code"])
	assert.Equal(t, "Card number must be 13 to 19 digits", errs["Card"])
	assert.Equal(t, "Card: Card number must be 13 to 19 digits; Code: Must be a 3-letter airport code", FormatValidationErrors(errs))
}

func TestPagination(t *testing.T) {
	assert.Equal(t, 0, CalculateTotalPages(0, 10))
	assert.Equal(t, 3, CalculateTotalPages(21, 10))
	assert.Equal(t, 20, CalculateOffset(3, 10))
	assert.Equal(t, 0, CalculateOffset(0, 10))
}
