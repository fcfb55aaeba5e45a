package tokens

import "errors"

var (
	ErrTokenExpired = errors.New("token expired")
	ErrInvalidToken = errors.New("token is not valid")
	ErrWrongPurpose = errors.New("token issued for a different purpose")
)
