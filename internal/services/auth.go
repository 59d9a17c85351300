package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gym-admin/internal/dto"
	"gym-admin/internal/repositories"
	"gym-admin/pkg/config"
	apperrors "gym-admin/pkg/errors"
	"gym-admin/pkg/service"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceInterface interface {
	StaffLogin(ctx context.Context, payload dto.StaffLoginDTO) (*dto.AuthResponseDTO, error)
}

type AuthService struct {
	staffRepo  repositories.StaffRepositoryInterface
	cacheRepo  repositories.CacheRepositoryInterface
	jwtService service.JWTService
	logger     *zap.Logger
	cfg        config.AuthConfig
}

// NewAuthService - cacheRepo может быть nil, тогда блокировка после неудачных попыток не работает.
func NewAuthService(
	staffRepo repositories.StaffRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	jwtService service.JWTService,
	logger *zap.Logger,
	cfg config.AuthConfig,
) AuthServiceInterface {
	return &AuthService{
		staffRepo:  staffRepo,
		cacheRepo:  cacheRepo,
		jwtService: jwtService,
		logger:     logger,
		cfg:        cfg,
	}
}

func (s *AuthService) StaffLogin(ctx context.Context, payload dto.StaffLoginDTO) (*dto.AuthResponseDTO, error) {
	nic := strings.TrimSpace(payload.NIC)
	logger := s.logger.With(zap.String("nic", nic))

	if err := s.checkLockout(ctx, nic); err != nil {
		logger.Warn("Вход заблокирован после неудачных попыток")
		return nil, err
	}

	staff, err := s.staffRepo.FindByID(ctx, nil, nic)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.handleFailedLoginAttempt(ctx, nic)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(payload.Password)); err != nil {
		s.handleFailedLoginAttempt(ctx, nic)
		logger.Warn("Неверный пароль сотрудника")
		return nil, apperrors.ErrInvalidCredentials
	}
	s.resetLoginAttempts(ctx, nic)

	token, err := s.jwtService.GenerateAccessToken(staff.NIC, staff.Role)
	if err != nil {
		logger.Error("Не удалось выпустить токен", zap.Error(err))
		return nil, err
	}
	logger.Info("Сотрудник вошёл в систему")

	return &dto.AuthResponseDTO{
		AccessToken: token,
		StaffID:     staff.NIC,
		Role:        staff.Role,
		ExpiresIn:   int64(s.jwtService.GetAccessTokenTTL().Seconds()),
	}, nil
}

func (s *AuthService) checkLockout(ctx context.Context, nic string) error {
	if s.cacheRepo == nil {
		return nil
	}
	// Если ключ существует, аккаунт заблокирован
	if _, err := s.cacheRepo.Get(ctx, fmt.Sprintf("lockout:%s", nic)); err == nil {
		return apperrors.ErrAccountLocked
	}
	return nil
}

func (s *AuthService) handleFailedLoginAttempt(ctx context.Context, nic string) {
	if s.cacheRepo == nil || s.cfg.MaxLoginAttempts <= 0 {
		return
	}
	attemptsKey := fmt.Sprintf("login_attempts:%s", nic)
	attempts, err := s.cacheRepo.Incr(ctx, attemptsKey)
	if err != nil {
		s.logger.Warn("Не удалось учесть неудачную попытку входа", zap.Error(err))
		return
	}
	if attempts == 1 {
		_, _ = s.cacheRepo.Expire(ctx, attemptsKey, s.cfg.LockoutDuration)
	}
	if attempts >= int64(s.cfg.MaxLoginAttempts) {
		// счётчик сбрасываем только когда блокировка реально записана
		if err := s.cacheRepo.Set(ctx, fmt.Sprintf("lockout:%s", nic), "locked", s.cfg.LockoutDuration); err != nil {
			s.logger.Warn("Не удалось заблокировать вход", zap.Int64("attempts", attempts), zap.Error(err))
			return
		}
		_ = s.cacheRepo.Del(ctx, attemptsKey)
	}
}

func (s *AuthService) resetLoginAttempts(ctx context.Context, nic string) {
	if s.cacheRepo == nil {
		return
	}
	_ = s.cacheRepo.Del(ctx, fmt.Sprintf("login_attempts:%s", nic), fmt.Sprintf("lockout:%s", nic))
}
