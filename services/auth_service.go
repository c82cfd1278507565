package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/davitama/storefront/models"
	"github.com/davitama/storefront/repository"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ITokenService abstracts JWT creation and validation for mocking.
type ITokenService interface {
	GenerateTokenPair(userID, email string) (*TokenPair, error)
	ValidateToken(tokenStr, expectedType string) (jwt.MapClaims, error)
}

// AuthService handles registration, login, and identity lookup.
type AuthService interface {
	Register(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) (*TokenPair, uuid.UUID, error)
	CurrentUser(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

type authServiceImpl struct {
	userRepo     repository.UserRepository
	tokenService ITokenService
	db           *gorm.DB
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokenService ITokenService, db *gorm.DB) AuthService {
	return &authServiceImpl{userRepo: userRepo, tokenService: tokenService, db: db}
}

func (s *authServiceImpl) Register(ctx context.Context, email, password string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		txRepo := repository.NewGormUserRepository(tx)

		_, err := txRepo.FindByEmail(ctx, email)
		if err == nil {
			return ErrEmailTaken
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password")
		}

		newUser := &models.User{
			ID:       uuid.New(),
			Email:    email,
			Password: string(hashedPassword),
		}

		if err := txRepo.Create(ctx, newUser); err != nil {
			return fmt.Errorf("failed to create account: %w", err)
		}
		return nil
	})
}

func (s *authServiceImpl) Login(ctx context.Context, email, password string) (*TokenPair, uuid.UUID, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, uuid.Nil, fmt.Errorf("invalid email or password")
	}

	pair, err := s.tokenService.GenerateTokenPair(user.ID.String(), user.Email)
	if err != nil {
		return nil, uuid.Nil, err
	}
	return pair, user.ID, nil
}

func (s *authServiceImpl) CurrentUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	if userID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user not found")
	}
	return user, nil
}
