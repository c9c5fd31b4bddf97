package services

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"insurance-system/internal/dto"
	"insurance-system/internal/repositories"
	apperrors "insurance-system/pkg/errors"
	"insurance-system/pkg/service"
)

type AuthService struct {
	userRepo repositories.UserRepositoryInterface
	jwtSvc   service.JWTService
	logger   *zap.Logger
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	jwtSvc service.JWTService,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		jwtSvc:   jwtSvc,
		logger:   logger,
	}
}

func (s *AuthService) Login(ctx context.Context, d dto.LoginDTO) (*dto.TokenPairDTO, error) {
	user, err := s.userRepo.FindByLogin(ctx, d.Login)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Неизвестный логин и неверный пароль снаружи неразличимы.
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(d.Password)); err != nil {
		s.logger.Warn("неудачная попытка входа", zap.String("login", d.Login))
		return nil, apperrors.ErrInvalidCredentials
	}

	access, refresh, err := s.jwtSvc.GenerateTokens(int(user.ID))
	if err != nil {
		return nil, err
	}

	return &dto.TokenPairDTO{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh меняет действующий refresh-токен на новую пару токенов.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairDTO, error) {
	claims, err := s.jwtSvc.ValidateToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrInvalidToken
	}

	if _, err := s.userRepo.FindUser(ctx, uint64(claims.UserID)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	access, refresh, err := s.jwtSvc.GenerateTokens(claims.UserID)
	if err != nil {
		return nil, err
	}

	return &dto.TokenPairDTO{AccessToken: access, RefreshToken: refresh}, nil
}
