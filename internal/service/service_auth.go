package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jmrodas/parkings-api/internal/logger"
	"github.com/jmrodas/parkings-api/internal/store"
	"github.com/jmrodas/parkings-api/internal/utils"
	"github.com/jmrodas/parkings-api/models"
)

// authService implements AuthService backed by the usuarios table and the
// token store.
type authService struct {
	querier store.RecordQuerier
	tokens  store.TokenRepository
	cfg     AuthConfig
}

var _ AuthService = (*authService)(nil)

func newAuthService(querier store.RecordQuerier, tokens store.TokenRepository, cfg AuthConfig) *authService {
	return &authService{querier: querier, tokens: tokens, cfg: cfg}
}

// Login authenticates the credentials, issues a signed token and persists
// its record.
func (s *authService) Login(ctx context.Context, usuario, password string) (models.Identity, string, error) {
	log := logger.FromContext(ctx)

	rows, err := s.querier.Filtered(ctx, "usuarios", map[string]any{"usuario": usuario}, "", 1)
	if err != nil {
		return models.Identity{}, "", fmt.Errorf("error loading user: %w", err)
	}
	if len(rows) == 0 {
		// Same error as a bad password so login probing can not tell
		// usernames apart.
		return models.Identity{}, "", ErrInvalidCredentials
	}
	user := rows[0]

	hash, _ := user["password"].(string)
	if err := utils.CheckPassword(hash, password); err != nil {
		return models.Identity{}, "", ErrInvalidCredentials
	}

	id, ok := user.ID()
	if !ok {
		return models.Identity{}, "", fmt.Errorf("user record has no id")
	}

	token, err := utils.GenerateJWTToken(s.cfg.TokenIssuer, id, s.cfg.TokenDuration, s.cfg.TokenSignKey)
	if err != nil {
		return models.Identity{}, "", fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	record := models.TokenRecord{
		TokenHash: utils.TokenDigest(token.SignedString),
		UserID:    id,
		IssuedAt:  token.IssuedAt.Time,
		ExpiresAt: token.ExpiresAt.Time,
	}
	if err := s.tokens.Save(ctx, record); err != nil {
		return models.Identity{}, "", fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	identity := identityFromRow(user, id)
	log.Info().Int64("user_id", id).Msg("user logged in")

	return identity, token.SignedString, nil
}

// Verify checks the token's signature and claims, then its stored record.
func (s *authService) Verify(ctx context.Context, signed string) (models.Identity, error) {
	token, err := utils.ValidateAndParseJWTToken(signed, s.cfg.TokenIssuer, s.cfg.TokenSignKey)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Identity{}, ErrTokenIsExpired
		}

		return models.Identity{}, ErrTokenInvalid
	}

	record, err := s.tokens.Find(ctx, utils.TokenDigest(signed))
	if err != nil {
		if errors.Is(err, store.ErrTokenNotFound) {
			return models.Identity{}, ErrTokenNotFound
		}

		return models.Identity{}, fmt.Errorf("error loading token record: %w", err)
	}

	if record.Revoked {
		return models.Identity{}, ErrTokenRevoked
	}
	if !time.Now().Before(record.ExpiresAt) {
		return models.Identity{}, ErrTokenIsExpired
	}

	user, err := s.querier.ByID(ctx, "usuarios", token.UserID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return models.Identity{}, ErrTokenInvalid
		}

		return models.Identity{}, fmt.Errorf("error loading user: %w", err)
	}

	return identityFromRow(user, token.UserID), nil
}

// Invalidate revokes the token. Tokens that fail claim checks are still
// looked up by digest so logout works on expired tokens too.
func (s *authService) Invalidate(ctx context.Context, signed string) error {
	if err := s.tokens.Revoke(ctx, utils.TokenDigest(signed)); err != nil {
		return fmt.Errorf("error revoking token: %w", err)
	}

	return nil
}

func identityFromRow(user models.Row, id int64) models.Identity {
	nombre, _ := user["nombre"].(string)
	rol, _ := user["rol"].(string)

	return models.Identity{ID: id, Nombre: nombre, Rol: rol}
}
