package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/fintrack_app/internal/apperrors"
	"github.com/SscSPs/fintrack_app/internal/core/domain"
	portsrepo "github.com/SscSPs/fintrack_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fintrack_app/internal/core/ports/services"
	"github.com/SscSPs/fintrack_app/internal/utils"
	"github.com/pquerna/otp/totp"
)

// BackupCodeCount is the number of backup codes issued at a time.
const BackupCodeCount = 10

type twoFactorService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	issuer   string
}

// NewTwoFactorService creates the TOTP enrolment service. issuer is shown in authenticator apps.
func NewTwoFactorService(userRepo portsrepo.UserRepositoryFacade, issuer string) portssvc.TwoFactorSvc {
	return &twoFactorService{userRepo: userRepo, issuer: issuer}
}

var _ portssvc.TwoFactorSvc = (*twoFactorService)(nil)

func (s *twoFactorService) SetupTwoFactor(ctx context.Context, userID string) (string, string, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return "", "", err
	}
	if user.TwoFactorEnabled {
		return "", "", fmt.Errorf("%w: two-factor authentication is already enabled", apperrors.ErrValidation)
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.issuer,
		AccountName: user.Email,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to generate TOTP secret")
		return "", "", fmt.Errorf("failed to generate secret: %w", err)
	}

	secret := key.Secret()
	if err := s.userRepo.UpdateTwoFactor(ctx, userID, false, &secret, []string{}); err != nil {
		s.LogError(ctx, err, "Failed to store pending TOTP secret")
		return "", "", fmt.Errorf("failed to store secret: %w", err)
	}
	return secret, key.URL(), nil
}

func (s *twoFactorService) EnableTwoFactor(ctx context.Context, userID string, code string) ([]string, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.TwoFactorEnabled {
		return nil, fmt.Errorf("%w: two-factor authentication is already enabled", apperrors.ErrValidation)
	}
	if user.TwoFactorSecret == nil || *user.TwoFactorSecret == "" {
		return nil, fmt.Errorf("%w: two-factor setup has not been started", apperrors.ErrValidation)
	}
	if !totp.Validate(strings.TrimSpace(code), *user.TwoFactorSecret) {
		return nil, apperrors.ErrInvalidTwoFactorCode
	}

	codes, hashes, err := generateBackupCodes()
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdateTwoFactor(ctx, userID, true, user.TwoFactorSecret, hashes); err != nil {
		s.LogError(ctx, err, "Failed to enable two-factor authentication")
		return nil, fmt.Errorf("failed to enable two-factor authentication: %w", err)
	}
	s.LogInfo(ctx, "Two-factor authentication enabled", slog.String("user_id", userID))
	return codes, nil
}

func (s *twoFactorService) DisableTwoFactor(ctx context.Context, userID string, password string, code string) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.TwoFactorEnabled {
		return fmt.Errorf("%w: two-factor authentication is not enabled", apperrors.ErrValidation)
	}
	if user.PasswordHash == "" || !utils.CheckPasswordHash(password, user.PasswordHash) {
		return apperrors.ErrUnauthorized
	}
	if _, err := checkSecondFactor(user, code); err != nil {
		return err
	}

	if err := s.userRepo.UpdateTwoFactor(ctx, userID, false, nil, []string{}); err != nil {
		s.LogError(ctx, err, "Failed to disable two-factor authentication")
		return fmt.Errorf("failed to disable two-factor authentication: %w", err)
	}
	s.LogInfo(ctx, "Two-factor authentication disabled", slog.String("user_id", userID))
	return nil
}

func (s *twoFactorService) RegenerateBackupCodes(ctx context.Context, userID string, code string) ([]string, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.TwoFactorEnabled {
		return nil, fmt.Errorf("%w: two-factor authentication is not enabled", apperrors.ErrValidation)
	}
	backupHash, err := checkSecondFactor(user, code)
	if err != nil {
		return nil, err
	}
	if backupHash != "" {
		if err := s.consumeBackupCode(ctx, userID, backupHash); err != nil {
			return nil, err
		}
	}

	codes, hashes, err := generateBackupCodes()
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdateTwoFactor(ctx, userID, true, user.TwoFactorSecret, hashes); err != nil {
		s.LogError(ctx, err, "Failed to store backup codes")
		return nil, fmt.Errorf("failed to store backup codes: %w", err)
	}
	return codes, nil
}

func (s *twoFactorService) VerifyLoginCode(ctx context.Context, user *domain.User, code string) error {
	if !user.TwoFactorEnabled {
		return nil
	}
	backupHash, err := checkSecondFactor(user, code)
	if err != nil {
		return err
	}
	if backupHash != "" {
		if err := s.consumeBackupCode(ctx, user.UserID, backupHash); err != nil {
			return err
		}
		s.LogInfo(ctx, "Backup code used for login", slog.String("user_id", user.UserID))
	}
	return nil
}

// consumeBackupCode removes hash from the stored set. A code another request already
// spent is reported as invalid.
func (s *twoFactorService) consumeBackupCode(ctx context.Context, userID string, hash string) error {
	err := s.userRepo.ConsumeBackupCode(ctx, userID, hash)
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.ErrInvalidTwoFactorCode
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to consume backup code")
		return fmt.Errorf("failed to consume backup code: %w", err)
	}
	return nil
}

// checkSecondFactor accepts a TOTP code or one of the user's backup codes.
// For a backup code it returns the matching stored hash, which the caller must consume.
func checkSecondFactor(user *domain.User, code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", apperrors.ErrTwoFactorRequired
	}
	if user.TwoFactorSecret != nil && totp.Validate(code, *user.TwoFactorSecret) {
		return "", nil
	}

	normalized := utils.NormalizeBackupCode(code)
	for _, hash := range user.BackupCodeHashes {
		if utils.CompareTokenHash(normalized, hash) {
			return hash, nil
		}
	}
	return "", apperrors.ErrInvalidTwoFactorCode
}

func generateBackupCodes() ([]string, []string, error) {
	codes := make([]string, 0, BackupCodeCount)
	hashes := make([]string, 0, BackupCodeCount)
	for i := 0; i < BackupCodeCount; i++ {
		code, err := utils.GenerateBackupCode()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to generate backup code: %w", err)
		}
		codes = append(codes, code)
		hashes = append(hashes, utils.HashToken(code))
	}
	return codes, hashes, nil
}
