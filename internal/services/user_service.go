package services

import (
	"context"
	"errors"
	"log"

	"kds-backend/internal/auth"
	"kds-backend/internal/cache"
	"kds-backend/internal/models"
)

// ErrInvalidCredentials is returned for any failed login, deliberately not
// distinguishing unknown code from wrong PIN.
var ErrInvalidCredentials = errors.New("invalid code or PIN")

// UserService handles floor-staff accounts and PIN login.
type UserService struct {
	Users UserStore
	JWT   *auth.JWTManager
}

func NewUserService(users UserStore, jwtManager *auth.JWTManager) *UserService {
	return &UserService{Users: users, JWT: jwtManager}
}

// Login verifies a code+PIN pair and issues a token. bcrypt comparisons are
// slow on purpose, so verified pairs are cached briefly; the PIN pad gets
// hammered during service.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	if req.Code == "" || req.PIN == "" {
		return nil, ErrInvalidCredentials
	}

	if userID, ok := cache.GetCachedAuth(ctx, req.Code, req.PIN); ok {
		user, err := s.Users.Get(ctx, int(userID))
		if err == nil && user.IsActive {
			return s.issue(user)
		}
	}

	user, err := s.Users.GetByCode(ctx, req.Code)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive || !auth.CheckPIN(req.PIN, user.PINHash) {
		return nil, ErrInvalidCredentials
	}

	cache.CacheAuth(ctx, req.Code, req.PIN, int64(user.ID))
	return s.issue(user)
}

func (s *UserService) issue(user *models.User) (*models.AuthResponse, error) {
	token, err := s.JWT.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: user}, nil
}

// Create registers a new floor employee.
func (s *UserService) Create(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	if req.Name == "" {
		return nil, &models.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if req.Code == "" {
		return nil, &models.ValidationError{Field: "code", Reason: "must not be empty"}
	}
	if len(req.PIN) < 4 {
		return nil, &models.ValidationError{Field: "pin", Reason: "at least 4 digits required"}
	}
	switch req.Role {
	case "cook", "expeditor", "manager":
	default:
		return nil, &models.ValidationError{Field: "role", Reason: "must be cook, expeditor or manager"}
	}

	hash, err := auth.HashPIN(req.PIN)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     req.Name,
		Code:     req.Code,
		PINHash:  hash,
		Role:     req.Role,
		IsActive: true,
	}
	if err := s.Users.Create(ctx, user); err != nil {
		return nil, err
	}
	log.Printf("[Users] Created %s (%s)", user.Name, user.Role)
	return user, nil
}
