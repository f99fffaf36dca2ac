package service

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"strings"
	"time"

	"github.com/seekers/backend/pkg/auth"
)

// AuthService は管理者ログインのインターフェース
type AuthService interface {
	// Login checks the admin credentials and returns a signed token.
	Login(ctx context.Context, email, password string) (string, error)
}

// AuthServiceImpl は AuthService の実装。管理者は設定で与えられる 1 名のみ
type AuthServiceImpl struct {
	adminEmail    string
	adminPassword string
	secret        []byte
	ttl           time.Duration
	now           func() time.Time
}

// NewAuthService は AuthServiceImpl を生成する
func NewAuthService(adminEmail, adminPassword string, secret []byte, ttl time.Duration) *AuthServiceImpl {
	return &AuthServiceImpl{
		adminEmail:    adminEmail,
		adminPassword: adminPassword,
		secret:        secret,
		ttl:           ttl,
		now:           time.Now,
	}
}

func (s *AuthServiceImpl) Login(_ context.Context, email, password string) (string, error) {
	emailOK := subtle.ConstantTimeCompare([]byte(strings.ToLower(strings.TrimSpace(email))), []byte(strings.ToLower(s.adminEmail))) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.adminPassword)) == 1
	if !emailOK || !passOK {
		slog.Warn("admin login rejected", "email", email)
		return "", ErrUnauthorized
	}
	token, err := auth.IssueToken(s.adminEmail, s.secret, s.ttl, s.now())
	if err != nil {
		return "", err
	}
	slog.Info("admin logged in", "email", s.adminEmail)
	return token, nil
}
