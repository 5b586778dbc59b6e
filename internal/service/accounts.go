package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/tribalarts/storefront-service/internal/apperrors"
	"github.com/tribalarts/storefront-service/internal/config"
	"github.com/tribalarts/storefront-service/internal/models"
	"github.com/tribalarts/storefront-service/internal/repository"
)

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// AccountService handles signup, signin, and profile updates. The back-office
// admin is a single env-configured credential, not a database row.
type AccountService struct {
	users  repository.UserRepository
	cfg    *config.Config
	logger *log.Entry
}

func NewAccountService(users repository.UserRepository, cfg *config.Config) *AccountService {
	return &AccountService{
		users:  users,
		cfg:    cfg,
		logger: log.WithField("component", "account-service"),
	}
}

// Signup creates an account with a bcrypt password hash.
func (s *AccountService) Signup(ctx context.Context, req *models.SignupRequest) (*models.User, error) {
	if err := ValidateSignup(req); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, apperrors.NewValidationError("email", "account already exists")
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.WithField("email", user.Email).Info("Account created")
	return user, nil
}

// Signin authenticates the admin credential or a stored account and issues a
// bearer token carrying the role claim.
func (s *AccountService) Signin(ctx context.Context, req *models.SigninRequest) (*models.SigninResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, apperrors.NewValidationError("credentials", "email and password are required")
	}

	if s.cfg.Auth.AdminPassword != "" &&
		req.Email == s.cfg.Auth.AdminEmail && req.Password == s.cfg.Auth.AdminPassword {
		token, err := s.issueToken(req.Email, RoleAdmin)
		if err != nil {
			return nil, err
		}
		return &models.SigninResponse{
			User:    &models.User{ID: "admin", Name: "Admin", Email: s.cfg.Auth.AdminEmail},
			Token:   token,
			IsAdmin: true,
		}, nil
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, apperrors.ErrUnauthorized
	}

	token, err := s.issueToken(user.Email, RoleCustomer)
	if err != nil {
		return nil, err
	}

	return &models.SigninResponse{User: user, Token: token}, nil
}

// GetProfile returns a stored account by email.
func (s *AccountService) GetProfile(ctx context.Context, email string) (*models.User, error) {
	return s.users.GetByEmail(ctx, email)
}

// UpdateProfile applies non-empty profile fields.
func (s *AccountService) UpdateProfile(ctx context.Context, email string, req *models.UpdateProfileRequest) (*models.User, error) {
	return s.users.UpdateProfile(ctx, email, req)
}

func (s *AccountService) issueToken(email, role string) (string, error) {
	claims := jwt.MapClaims{
		"email": email,
		"role":  role,
		"exp":   time.Now().Add(s.cfg.Auth.TokenTTL).Unix(),
		"iat":   time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Auth.JWTSecret))
}
