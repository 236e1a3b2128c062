package identity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/portfolio-admin/admin-backend/internal/auth/domain"
)

// dummyHash keeps response timing the same for unknown emails.
const dummyHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z9wd4NcvVLgc2R8YPYhY5u6."

// StaticProvider accepts a single configured admin account. It is meant for
// local runs without a Firebase project.
type StaticProvider struct {
	email string
	hash  []byte
	now   func() time.Time
}

func NewStaticProvider(email, passwordHash string) (*StaticProvider, error) {
	email = strings.TrimSpace(email)
	if email == "" || passwordHash == "" {
		return nil, fmt.Errorf("admin email and password hash are required")
	}
	if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
		return nil, fmt.Errorf("invalid admin password hash: %w", err)
	}
	return &StaticProvider{email: email, hash: []byte(passwordHash), now: time.Now}, nil
}

func (p *StaticProvider) SignInWithPassword(_ context.Context, email, password string) (*domain.Principal, error) {
	if !strings.EqualFold(strings.TrimSpace(email), p.email) {
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(p.hash, []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return &domain.Principal{
		UID:        "static:" + strings.ToLower(p.email),
		Email:      p.email,
		SignedInAt: p.now().UTC(),
	}, nil
}

func (p *StaticProvider) SignOut(context.Context, *domain.Principal) error {
	return nil
}
