package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	key := []byte("secret")

	tokenStr, err := GenerateAccountJWT(42, PurposeAuth, time.Hour, key)
	require.NoError(t, err)

	claims, err := ValidateAccountJWT(tokenStr, PurposeAuth, key)
	require.NoError(t, err)
	require.Equal(t, int64(42), claims.ID)
	require.Equal(t, PurposeAuth, claims.Purpose)
}

func TestValidateWrongPurpose(t *testing.T) {
	key := []byte("secret")

	tokenStr, err := GenerateAccountJWT(1, PurposeResetPassword, time.Hour, key)
	require.NoError(t, err)

	_, err = ValidateAccountJWT(tokenStr, PurposeAuth, key)
	require.ErrorIs(t, err, ErrWrongPurpose)
}

func TestValidateExpired(t *testing.T) {
	key := []byte("secret")

	tokenStr, err := GenerateAccountJWT(1, PurposeAuth, -time.Minute, key)
	require.NoError(t, err)

	_, err = ValidateAccountJWT(tokenStr, PurposeAuth, key)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateWrongKey(t *testing.T) {
	tokenStr, err := GenerateAccountJWT(1, PurposeAuth, time.Hour, []byte("secret"))
	require.NoError(t, err)

	_, err = ValidateAccountJWT(tokenStr, PurposeAuth, []byte("other"))
	require.ErrorIs(t, err, ErrInvalidToken)
}
