package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/vietanh2810/lucky-ticket-api/internal/domain"
	"github.com/vietanh2810/lucky-ticket-api/internal/repository"
)

var (
	ErrWrongPassword = errors.New("wrong password")
	ErrUserNotFound  = repository.ErrUserNotFound
)

type AuthUserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
}

// AuthService implements the promotion's legacy login: one shared password
// for every account, and the account is created on first login. The
// reserved username "admin" gets the ADMIN role at creation and keeps it
// forever. Both rules are documented defects of the original campaign site,
// kept for compatibility.
type AuthService struct {
	repo          AuthUserRepository
	fixedPassword []byte
}

func NewAuthService(repo AuthUserRepository, fixedPassword string) *AuthService {
	return &AuthService{
		repo:          repo,
		fixedPassword: []byte(fixedPassword),
	}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (domain.User, error) {
	if subtle.ConstantTimeCompare([]byte(password), s.fixedPassword) != 1 {
		return domain.User{}, ErrWrongPassword
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return domain.User{}, fmt.Errorf("s.repo.FindByUsername -> %w", err)
	}

	return s.createUser(ctx, username, password)
}

func (s *AuthService) createUser(ctx context.Context, username, password string) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}

	role := domain.RoleUser
	if strings.EqualFold(username, "admin") {
		role = domain.RoleAdmin
	}

	created, err := s.repo.Create(ctx, domain.User{
		Username: username,
		Password: string(hash),
		Role:     role,
	})
	if err != nil {
		// Two first logins racing: the unique constraint picks a winner and
		// the loser signs in with the winner's row.
		if errors.Is(err, repository.ErrUsernameExists) {
			winner, ferr := s.repo.FindByUsername(ctx, username)
			if ferr != nil {
				return domain.User{}, fmt.Errorf("s.repo.FindByUsername -> %w", ferr)
			}
			return winner, nil
		}

		return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}
