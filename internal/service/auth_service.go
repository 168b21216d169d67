package services

import (
	"context"
	"fmt"

	"chat-app/session-service/internal/domain"
	"chat-app/session-service/internal/logging"
	"chat-app/session-service/internal/repository"
	"chat-app/session-service/internal/token"
)

type AuthService interface {
	Refresh(ctx context.Context, refreshToken string) (*domain.RefreshResult, error)
	VerifyAccessToken(tokenString string) (*domain.AccessDetails, error)
}

type AuthServiceImpl struct {
	registry repository.RefreshTokenRegistry
	signer   *token.Signer
	log      logging.Logger
}

func NewAuthService(registry repository.RefreshTokenRegistry, signer *token.Signer, log logging.Logger) AuthService {
	return &AuthServiceImpl{
		registry: registry,
		signer:   signer,
		log:      log.With("component", "auth"),
	}
}

// Refresh exchanges a registered refresh token for a new access token.
// The refresh token itself is never rotated: it stays registered until it
// fails verification here or is revoked elsewhere.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (*domain.RefreshResult, error) {
	if refreshToken == "" {
		return nil, domain.ErrMissingToken
	}

	known, err := s.registry.Contains(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: registry lookup: %v", domain.ErrStorage, err)
	}
	if !known {
		return nil, domain.ErrUnknownToken
	}

	claims, err := s.signer.VerifyRefresh(refreshToken)
	if err != nil {
		// Evict first so this exact value can never pass the lookup again.
		if rmErr := s.registry.Remove(ctx, refreshToken); rmErr != nil {
			s.log.Error(ctx, "failed to evict invalid refresh token", "err", rmErr)
		}
		s.log.Info(ctx, "refresh token rejected", "reason", err.Error())
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}

	accessToken, err := s.signer.SignAccess(claims.Identity())
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	return &domain.RefreshResult{AccessToken: accessToken}, nil
}

func (s *AuthServiceImpl) VerifyAccessToken(tokenString string) (*domain.AccessDetails, error) {
	if tokenString == "" {
		return nil, domain.ErrUnauthenticated
	}
	claims, err := s.signer.VerifyAccess(tokenString)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}

	details := &domain.AccessDetails{
		Identity:   claims.Identity(),
		AccessUuid: claims.ID,
	}
	if claims.ExpiresAt != nil {
		details.ExpiresAt = claims.ExpiresAt.Time
	}
	return details, nil
}
