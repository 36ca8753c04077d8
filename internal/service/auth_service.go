package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"billtrack/internal/model"
	appErr "billtrack/internal/pkg/errors"
	"billtrack/internal/pkg/password"
	"billtrack/internal/pkg/timeutil"
	"billtrack/internal/pkg/token"
	"billtrack/internal/repo"
)

type AuthService struct {
	users  *repo.UserRepo
	tokens *repo.TokenRepo
	secret []byte
	ttl    time.Duration
}

func NewAuthService(users *repo.UserRepo, tokens *repo.TokenRepo, secret []byte, ttl time.Duration) *AuthService {
	return &AuthService{users: users, tokens: tokens, secret: secret, ttl: ttl}
}

// Login validates the credentials and issues a new bearer token backed by
// an access_tokens record. An unknown email and a wrong password both come
// back as ErrUnauthorized so the caller cannot tell them apart.
func (s *AuthService) Login(ctx context.Context, email, plainPassword string) (*model.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", appErr.ErrUnauthorized
	}
	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		return nil, "", appErr.ErrUnauthorized
	}
	now := timeutil.NowUnix()
	record := &model.AccessToken{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Ctime:     now,
		ExpiresAt: now + int64(s.ttl/time.Second),
	}
	if err := s.tokens.Create(ctx, record); err != nil {
		return nil, "", err
	}
	signed, err := token.Generate(user.ID, record.ID, s.secret, s.ttl)
	if err != nil {
		return nil, "", err
	}
	return user, signed, nil
}

// Authenticate resolves a bearer token to its claims. Beyond the signature
// and expiry baked into the token itself, the server-side record must still
// exist: a token revoked by logout is rejected here.
func (s *AuthService) Authenticate(ctx context.Context, bearer string) (*token.Claims, error) {
	claims, err := token.Parse(bearer, s.secret)
	if err != nil {
		return nil, appErr.ErrUnauthorized
	}
	record, err := s.tokens.Get(ctx, claims.TokenID)
	if err != nil {
		return nil, appErr.ErrUnauthorized
	}
	if record.UserID != claims.UserID || record.ExpiresAt <= timeutil.NowUnix() {
		return nil, appErr.ErrUnauthorized
	}
	return claims, nil
}

// Logout revokes every active token of the user. Other sessions of the
// same user are revoked together, matching the all-or-nothing contract.
func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	_, err := s.tokens.DeleteByUser(ctx, userID)
	return err
}
