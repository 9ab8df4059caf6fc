package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/fintrack_app/internal/apperrors"
	"github.com/SscSPs/fintrack_app/internal/core/domain"
	portssvc "github.com/SscSPs/fintrack_app/internal/core/ports/services"
	"github.com/SscSPs/fintrack_app/internal/core/services"
	"github.com/SscSPs/fintrack_app/internal/utils"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/suite"
)

// memoryUserStore holds a single user so 2FA state changes can be observed.
type memoryUserStore struct {
	mu   sync.Mutex
	user domain.User
}

func (s *memoryUserStore) get() domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

func (s *memoryUserStore) FindUserByID(_ context.Context, userID string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if userID != s.user.UserID {
		return nil, apperrors.ErrNotFound
	}
	u := s.user
	u.BackupCodeHashes = append([]string(nil), s.user.BackupCodeHashes...)
	return &u, nil
}

func (s *memoryUserStore) FindUserByUsername(ctx context.Context, _ string) (*domain.User, error) {
	return s.FindUserByID(ctx, s.user.UserID)
}

func (s *memoryUserStore) FindUserByEmail(ctx context.Context, _ string) (*domain.User, error) {
	return s.FindUserByID(ctx, s.user.UserID)
}

func (s *memoryUserStore) SaveUser(_ context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	return nil
}

func (s *memoryUserStore) UpdateTwoFactor(_ context.Context, _ string, enabled bool, secret *string, hashes []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user.TwoFactorEnabled = enabled
	s.user.TwoFactorSecret = secret
	s.user.BackupCodeHashes = hashes
	return nil
}

func (s *memoryUserStore) ConsumeBackupCode(_ context.Context, _ string, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, h := range s.user.BackupCodeHashes {
		if h == hash {
			s.user.BackupCodeHashes = append(s.user.BackupCodeHashes[:i:i], s.user.BackupCodeHashes[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (s *memoryUserStore) UpdateRefreshToken(_ context.Context, _ string, hash string, expiry *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user.RefreshTokenHash = hash
	s.user.RefreshTokenExpiryTime = expiry
	return nil
}

func (s *memoryUserStore) LinkProvider(_ context.Context, _ string, provider domain.AuthProvider, providerUserID string, verified bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user.AuthProvider = provider
	s.user.ProviderUserID = &providerUserID
	s.user.EmailVerified = verified
	return nil
}

type TwoFactorServiceTestSuite struct {
	suite.Suite
	store   *memoryUserStore
	service portssvc.TwoFactorSvc
	ctx     context.Context
}

func (suite *TwoFactorServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	hash, err := utils.HashPassword("password")
	suite.Require().NoError(err)
	suite.store = &memoryUserStore{user: domain.User{UserID: "u-1", Username: "demo", Email: "demo@example.com", PasswordHash: hash}}
	suite.service = services.NewTwoFactorService(suite.store, "FinTrack")
}

func (suite *TwoFactorServiceTestSuite) enable() (string, []string) {
	secret, url, err := suite.service.SetupTwoFactor(suite.ctx, "u-1")
	suite.Require().NoError(err)
	suite.Contains(url, "otpauth://totp/")
	suite.False(suite.store.get().TwoFactorEnabled)

	code, err := totp.GenerateCode(secret, time.Now())
	suite.Require().NoError(err)
	backups, err := suite.service.EnableTwoFactor(suite.ctx, "u-1", code)
	suite.Require().NoError(err)
	return secret, backups
}

func (suite *TwoFactorServiceTestSuite) TestEnableIssuesBackupCodes() {
	_, backups := suite.enable()

	suite.Len(backups, services.BackupCodeCount)
	for _, c := range backups {
		suite.Regexp(`^[0-9A-F]{4}-[0-9A-F]{4}-[0-9A-F]{4}$`, c)
	}
	stored := suite.store.get()
	suite.True(stored.TwoFactorEnabled)
	suite.Len(stored.BackupCodeHashes, services.BackupCodeCount)
	suite.NotContains(stored.BackupCodeHashes, backups[0])
}

func (suite *TwoFactorServiceTestSuite) TestEnableRejectsWrongCode() {
	_, _, err := suite.service.SetupTwoFactor(suite.ctx, "u-1")
	suite.Require().NoError(err)

	_, err = suite.service.EnableTwoFactor(suite.ctx, "u-1", "000000x")
	suite.ErrorIs(err, apperrors.ErrInvalidTwoFactorCode)
	suite.False(suite.store.get().TwoFactorEnabled)
}

func (suite *TwoFactorServiceTestSuite) TestEnableWithoutSetup() {
	_, err := suite.service.EnableTwoFactor(suite.ctx, "u-1", "123456")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TwoFactorServiceTestSuite) TestLoginWithTOTP() {
	secret, _ := suite.enable()
	user, _ := suite.store.FindUserByID(suite.ctx, "u-1")

	suite.ErrorIs(suite.service.VerifyLoginCode(suite.ctx, user, ""), apperrors.ErrTwoFactorRequired)

	code, err := totp.GenerateCode(secret, time.Now())
	suite.Require().NoError(err)
	suite.NoError(suite.service.VerifyLoginCode(suite.ctx, user, code))
	suite.Len(suite.store.get().BackupCodeHashes, services.BackupCodeCount)
}

func (suite *TwoFactorServiceTestSuite) TestBackupCodeIsSingleUse() {
	_, backups := suite.enable()

	user, _ := suite.store.FindUserByID(suite.ctx, "u-1")
	suite.NoError(suite.service.VerifyLoginCode(suite.ctx, user, "  "+backups[3][:9]+backups[3][10:]))
	suite.Len(suite.store.get().BackupCodeHashes, services.BackupCodeCount-1)

	user, _ = suite.store.FindUserByID(suite.ctx, "u-1")
	suite.ErrorIs(suite.service.VerifyLoginCode(suite.ctx, user, backups[3]), apperrors.ErrInvalidTwoFactorCode)
}

func (suite *TwoFactorServiceTestSuite) TestConcurrentLoginsShareOneBackupCode() {
	_, backups := suite.enable()

	// Both requests loaded the user before either consumed the code.
	first, _ := suite.store.FindUserByID(suite.ctx, "u-1")
	second, _ := suite.store.FindUserByID(suite.ctx, "u-1")

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i, user := range []*domain.User{first, second} {
		wg.Add(1)
		go func(i int, user *domain.User) {
			defer wg.Done()
			results[i] = suite.service.VerifyLoginCode(suite.ctx, user, backups[0])
		}(i, user)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
			continue
		}
		suite.ErrorIs(err, apperrors.ErrInvalidTwoFactorCode)
	}
	suite.Equal(1, succeeded)
	suite.Len(suite.store.get().BackupCodeHashes, services.BackupCodeCount-1)
}

func (suite *TwoFactorServiceTestSuite) TestRegenerateRejectsSpentBackupCode() {
	_, backups := suite.enable()

	user, _ := suite.store.FindUserByID(suite.ctx, "u-1")
	suite.NoError(suite.service.VerifyLoginCode(suite.ctx, user, backups[1]))

	_, err := suite.service.RegenerateBackupCodes(suite.ctx, "u-1", backups[1])
	suite.ErrorIs(err, apperrors.ErrInvalidTwoFactorCode)
}

func (suite *TwoFactorServiceTestSuite) TestLoginWithoutTwoFactorIsNoop() {
	user, _ := suite.store.FindUserByID(suite.ctx, "u-1")
	suite.NoError(suite.service.VerifyLoginCode(suite.ctx, user, ""))
}

func (suite *TwoFactorServiceTestSuite) TestDisableNeedsPasswordAndCode() {
	secret, _ := suite.enable()
	code, err := totp.GenerateCode(secret, time.Now())
	suite.Require().NoError(err)

	suite.ErrorIs(suite.service.DisableTwoFactor(suite.ctx, "u-1", "wrong", code), apperrors.ErrUnauthorized)
	suite.ErrorIs(suite.service.DisableTwoFactor(suite.ctx, "u-1", "password", ""), apperrors.ErrTwoFactorRequired)
	suite.True(suite.store.get().TwoFactorEnabled)

	suite.NoError(suite.service.DisableTwoFactor(suite.ctx, "u-1", "password", code))
	stored := suite.store.get()
	suite.False(stored.TwoFactorEnabled)
	suite.Nil(stored.TwoFactorSecret)
	suite.Empty(stored.BackupCodeHashes)
}

func (suite *TwoFactorServiceTestSuite) TestRegenerateReplacesCodes() {
	secret, old := suite.enable()
	code, err := totp.GenerateCode(secret, time.Now())
	suite.Require().NoError(err)

	fresh, err := suite.service.RegenerateBackupCodes(suite.ctx, "u-1", code)
	suite.Require().NoError(err)
	suite.Len(fresh, services.BackupCodeCount)

	user, _ := suite.store.FindUserByID(suite.ctx, "u-1")
	suite.ErrorIs(suite.service.VerifyLoginCode(suite.ctx, user, old[0]), apperrors.ErrInvalidTwoFactorCode)
	suite.NoError(suite.service.VerifyLoginCode(suite.ctx, user, fresh[0]))
}

func TestTwoFactorServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TwoFactorServiceTestSuite))
}
