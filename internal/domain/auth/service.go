package auth

import (
	"context"
)

type AuthService interface {
	// LoginWithGoogle resolves the Google profile to a local user,
	// creating one on first sight, and issues a token pair.
	LoginWithGoogle(ctx context.Context, profile GoogleProfile, sessionReq SessionTrackingRequest) (TokenResponse, error)

	// RefreshToken exchanges a valid refresh token for a new access token.
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)

	// Logout revokes the refresh token.
	Logout(ctx context.Context, refreshToken string) error
}
