package auth

import "errors"

var (
	ErrInvalidToken             = errors.New("invalid or expired token")
	ErrRefreshTokenRevoked      = errors.New("refresh token has been revoked")
	ErrUserNotFound             = errors.New("user not found")
	ErrGoogleEmailNotVerified   = errors.New("google account email is not verified")
	ErrGoogleAccessDeniedByUser = errors.New("google access denied by user")
	ErrStateCookieEmpty         = errors.New("state cookie is empty")
	ErrStateParamEmpty          = errors.New("state parameter is empty")
	ErrStateMismatch            = errors.New("state mismatch")
	ErrCodeValueEmpty           = errors.New("code value is empty")

	ErrRefreshTokenCookieNotFound = errors.New("refresh token cookie not found")
	ErrRefreshTokenCookieEmpty    = errors.New("refresh token cookie is empty")
)
