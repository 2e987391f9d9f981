package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dlclark/regexp2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/vietanh2810/festivals-api/internal/domain"
	"github.com/vietanh2810/festivals-api/internal/repository"
)

const (
	passwordRegexPattern = `^(?=.*[A-Za-z])(?=.*\d)(?=.*[^A-Za-z\d]).{8,}$`
)

var (
	// ErrInvalidCredentials is returned for an unknown username and for a
	// wrong password alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAdminExists        = repository.ErrAdminExists

	passwordExp = regexp2.MustCompile(passwordRegexPattern, regexp2.None)
)

type AuthAdminRepository interface {
	Create(ctx context.Context, admin domain.Admin) (domain.Admin, error)
	FindByUsername(ctx context.Context, username string) (domain.Admin, error)
}

type AuthService struct {
	repo AuthAdminRepository

	dummyOnce sync.Once
	dummyHash []byte
}

func NewAuthService(repo AuthAdminRepository) *AuthService {
	return &AuthService{
		repo: repo,
	}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (domain.Admin, error) {
	admin, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			// Burn the same bcrypt time as a real comparison.
			_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(password))
			return domain.Admin{}, ErrInvalidCredentials
		}

		return domain.Admin{}, fmt.Errorf("s.repo.FindByUsername -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return domain.Admin{}, ErrInvalidCredentials
	}

	return admin, nil
}

// EnsureAdmin creates the admin account unless one with the same username
// already exists. An existing account keeps its current password.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) (domain.Admin, bool, error) {
	existing, err := s.repo.FindByUsername(ctx, username)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, repository.ErrAdminNotFound) {
		return domain.Admin{}, false, fmt.Errorf("s.repo.FindByUsername -> %w", err)
	}

	if !IsStrongPassword(password) {
		zap.L().Warn("seeding admin with a weak password, change it via configuration", zap.String("username", username))
	}

	hash, err := hashPassword(password)
	if err != nil {
		return domain.Admin{}, false, err
	}

	created, err := s.repo.Create(ctx, domain.Admin{
		Username: username,
		Password: hash,
	})
	if err != nil {
		if errors.Is(err, repository.ErrAdminExists) {
			// Another process seeded it between our lookup and insert.
			existing, err = s.repo.FindByUsername(ctx, username)
			if err != nil {
				return domain.Admin{}, false, fmt.Errorf("s.repo.FindByUsername -> %w", err)
			}
			return existing, false, nil
		}

		return domain.Admin{}, false, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, true, nil
}

// IsStrongPassword reports whether password has at least 8 characters with
// a letter, a digit and a symbol.
func IsStrongPassword(password string) bool {
	ok, err := passwordExp.MatchString(password)
	return err == nil && ok
}

func (s *AuthService) dummy() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
	})
	return s.dummyHash
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}
	return string(hash), nil
}
