package services

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/senyabanana/freight-service/internal/auth"
	"github.com/senyabanana/freight-service/internal/models"
	"github.com/senyabanana/freight-service/internal/repository"
)

type AuthService struct {
	Repo   repository.UserRepository
	Tokens *auth.JWTManager
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(repo repository.UserRepository, tokens *auth.JWTManager) *AuthService {
	return &AuthService{Repo: repo, Tokens: tokens}
}

// Register создает учётную запись клиента или перевозчика.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" || strings.TrimSpace(req.FullName) == "" {
		return nil, models.BadRequest("missing required fields")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, models.BadRequest("invalid email")
	}
	if req.Role != models.ClientRole && req.Role != models.TransporterRole {
		return nil, models.BadRequest("invalid role. Must be 'client' or 'transporter'")
	}

	hash, err := auth.HashPassword(req.Password)
	if errors.Is(err, auth.ErrPasswordTooShort) {
		return nil, models.BadRequest(err.Error())
	}
	if err != nil {
		return nil, err
	}

	user, err := s.Repo.CreateUser(ctx, models.User{
		Email:        email,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(req.FullName),
		Phone:        req.Phone,
		Company:      req.Company,
		Role:         req.Role,
	})
	if err != nil {
		return nil, repoError("register", err, "user not found", "email is already registered")
	}
	return user, nil
}

// Login проверяет пароль и выдает токен доступа.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, models.BadRequest("email and password are required")
	}

	user, err := s.Repo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, models.Unauthorized("invalid email or password")
	}
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, models.Unauthorized("invalid email or password")
	}

	token, expiresIn, err := s.Tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{AccessToken: token, ExpiresIn: expiresIn, User: *user}, nil
}

// Me возвращает профиль текущего пользователя.
func (s *AuthService) Me(ctx context.Context, actor auth.Actor) (*models.User, error) {
	user, err := s.Repo.GetUserByID(ctx, actor.ID)
	if err != nil {
		return nil, repoError("me", err, "user not found", "user conflict")
	}
	return user, nil
}
