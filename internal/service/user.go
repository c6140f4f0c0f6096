package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"paylock/internal/dto"
	"paylock/internal/model"
	"paylock/internal/repository"
)

type UserService interface {
	Signup(ctx context.Context, name, email, password string) (*dto.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*dto.AuthResponse, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
}

type userServiceImpl struct {
	userRepo   repository.UserRepository
	jwtSecret  []byte
	adminEmail string
}

func NewUserService(userRepo repository.UserRepository, jwtSecret, adminEmail string) UserService {
	return &userServiceImpl{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		adminEmail: strings.ToLower(adminEmail),
	}
}

func (s *userServiceImpl) Signup(ctx context.Context, name, email, password string) (*dto.AuthResponse, error) {
	if name == "" {
		return nil, validationErr("name", "required")
	}
	if email == "" {
		return nil, validationErr("email", "required")
	}
	if len(password) < 6 {
		return nil, validationErr("password", "must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := "user"
	if strings.ToLower(email) == s.adminEmail {
		role = "admin"
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.authResponse(user)
}

func (s *userServiceImpl) Login(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return s.authResponse(user)
}

func (s *userServiceImpl) ListUsers(ctx context.Context) ([]*model.User, error) {
	return s.userRepo.List(ctx)
}

func (s *userServiceImpl) authResponse(user *model.User) (*dto.AuthResponse, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &dto.AuthResponse{
		User: dto.AuthUser{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		},
		Token: token,
	}, nil
}
