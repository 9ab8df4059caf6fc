package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/SscSPs/fintrack_app/internal/apperrors"
	"github.com/SscSPs/fintrack_app/internal/core/domain"
	"github.com/SscSPs/fintrack_app/internal/dto"
	"github.com/SscSPs/fintrack_app/internal/utils"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) ravi(twoFactor bool) *domain.User {
	return &domain.User{
		UserID:           testUserID,
		Username:         "ravi",
		Email:            "ravi@example.com",
		Name:             "Dr. Ravi",
		TwoFactorEnabled: twoFactor,
	}
}

// expectSession primes the token and refresh-token calls made when a session is issued.
func (suite *HandlerTestSuite) expectSession(user *domain.User, rawRefresh string) time.Time {
	accessExpiry := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	refreshExpiry := time.Now().Add(24 * time.Hour)
	suite.tokens.On("GenerateAccessToken", mock.Anything, user).Return("access-jwt", accessExpiry, nil).Once()
	suite.tokens.On("GenerateRefreshToken", mock.Anything, user).Return(rawRefresh, refreshExpiry, nil).Once()
	suite.users.On("UpdateRefreshToken", mock.Anything, user.UserID, utils.HashToken(rawRefresh), refreshExpiry).Return(nil).Once()
	return accessExpiry
}

func (suite *HandlerTestSuite) TestLogin_IssuesTokenAndCookie() {
	user := suite.ravi(false)
	suite.users.On("AuthenticateUser", mock.Anything, "ravi", "secret").Return(user, nil).Once()
	expiry := suite.expectSession(user, "abc123")

	w := suite.do(http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{Username: "ravi", Password: "secret"}, "")

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.LoginResponse
	suite.decode(w, &resp)
	suite.Equal("access-jwt", resp.Token)
	suite.Require().NotNil(resp.ExpiresAt)
	suite.True(expiry.Equal(*resp.ExpiresAt))
	suite.Require().NotNil(resp.User)
	suite.Equal("ravi", resp.User.Username)
	suite.False(resp.Requires2FA)

	cookie := suite.cookie(w, "rtid")
	suite.Require().NotNil(cookie)
	suite.Equal(testUserID+".abc123", cookie.Value)
	suite.True(cookie.HttpOnly)
	suite.Equal("/api/v1/auth", cookie.Path)
}

func (suite *HandlerTestSuite) TestLogin_ByEmail() {
	user := suite.ravi(false)
	suite.users.On("AuthenticateUser", mock.Anything, "ravi@example.com", "secret").Return(user, nil).Once()
	suite.expectSession(user, "def456")

	w := suite.do(http.MethodPost, "/api/v1/auth/login", map[string]any{"email": "ravi@example.com", "password": "secret"}, "")

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
}

func (suite *HandlerTestSuite) TestLogin_BadCredentials() {
	suite.users.On("AuthenticateUser", mock.Anything, "ravi", "wrong").Return(nil, apperrors.ErrUnauthorized).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{Username: "ravi", Password: "wrong"}, "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.JSONEq(`{"error":"Invalid username or password"}`, w.Body.String())
	suite.Nil(suite.cookie(w, "rtid"))
}

func (suite *HandlerTestSuite) TestLogin_TwoFactorChallenge() {
	user := suite.ravi(true)
	suite.users.On("AuthenticateUser", mock.Anything, "ravi", "secret").Return(user, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{Username: "ravi", Password: "secret"}, "")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.LoginResponse
	suite.decode(w, &resp)
	suite.True(resp.Requires2FA)
	suite.Empty(resp.Token)
	suite.Nil(suite.cookie(w, "rtid"))
}

func (suite *HandlerTestSuite) TestLogin_TwoFactorCode() {
	user := suite.ravi(true)
	suite.users.On("AuthenticateUser", mock.Anything, "ravi", "secret").Return(user, nil).Twice()
	suite.twoFactor.On("VerifyLoginCode", mock.Anything, user, "000000").Return(apperrors.ErrInvalidTwoFactorCode).Once()
	suite.twoFactor.On("VerifyLoginCode", mock.Anything, user, "ABCD-EF01-2345").Return(nil).Once()
	suite.expectSession(user, "ghi789")

	w := suite.do(http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{Username: "ravi", Password: "secret", Token: "000000"}, "")
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.JSONEq(`{"error":"invalid authentication code"}`, w.Body.String())

	w = suite.do(http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{Username: "ravi", Password: "secret", Token: "ABCD-EF01-2345"}, "")
	suite.Equal(http.StatusOK, w.Code, w.Body.String())
}

func (suite *HandlerTestSuite) TestRegister() {
	req := dto.CreateUserRequest{Username: "meera", Email: "meera@example.com", Password: "hunter22"}
	suite.users.On("CreateUser", mock.Anything, req).Return(&domain.User{UserID: "u2", Username: "meera", Email: req.Email}, nil).Once()
	suite.users.On("CreateUser", mock.Anything, req).Return(nil, apperrors.ErrDuplicate).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/register", req, "")
	suite.Equal(http.StatusCreated, w.Code, w.Body.String())

	w = suite.do(http.MethodPost, "/api/v1/auth/register", req, "")
	suite.Equal(http.StatusConflict, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/auth/register", map[string]any{"username": "x", "email": "bad", "password": "1"}, "")
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) refreshWithCookie(value string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
	if value != "" {
		req.AddCookie(&http.Cookie{Name: "rtid", Value: value})
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) TestRefresh_RotatesCookie() {
	user := suite.ravi(false)
	suite.tokens.On("ValidateAndParseRefreshToken", mock.Anything, testUserID, "oldtoken").Return(user, nil).Once()
	suite.expectSession(user, "newtoken")

	w := suite.refreshWithCookie(testUserID + ".oldtoken")

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.RefreshTokenResponse
	suite.decode(w, &resp)
	suite.Equal("access-jwt", resp.Token)
	cookie := suite.cookie(w, "rtid")
	suite.Require().NotNil(cookie)
	suite.Equal(testUserID+".newtoken", cookie.Value)
}

func (suite *HandlerTestSuite) TestRefresh_Failures() {
	w := suite.refreshWithCookie("")
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.refreshWithCookie("no-separator")
	suite.Equal(http.StatusUnauthorized, w.Code)

	suite.tokens.On("ValidateAndParseRefreshToken", mock.Anything, testUserID, "stale").Return(nil, apperrors.ErrRefreshTokenExpired).Once()
	w = suite.refreshWithCookie(testUserID + ".stale")
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.JSONEq(`{"error":"refresh token expired"}`, w.Body.String())
	cookie := suite.cookie(w, "rtid")
	suite.Require().NotNil(cookie)
	suite.Empty(cookie.Value)
	suite.True(cookie.MaxAge < 0)
}

func (suite *HandlerTestSuite) TestLogoutAndMe() {
	suite.users.On("ClearRefreshToken", mock.Anything, testUserID).Return(nil).Once()
	suite.users.On("GetUserByID", mock.Anything, testUserID).Return(suite.ravi(true), nil).Once()

	w := suite.authed(http.MethodGet, "/api/v1/auth/me", nil)
	suite.Equal(http.StatusOK, w.Code)
	var me dto.UserResponse
	suite.decode(w, &me)
	suite.True(me.TwoFactorEnabled)

	w = suite.authed(http.MethodPost, "/api/v1/auth/logout", nil)
	suite.Equal(http.StatusOK, w.Code)
	cookie := suite.cookie(w, "rtid")
	suite.Require().NotNil(cookie)
	suite.Empty(cookie.Value)

	w = suite.do(http.MethodPost, "/api/v1/auth/logout", nil, "")
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestTwoFactorEndpoints() {
	codes := []string{"AAAA-BBBB-CCCC", "DDDD-EEEE-FFFF"}
	suite.twoFactor.On("SetupTwoFactor", mock.Anything, testUserID).Return("JBSWY3DPEHPK3PXP", "otpauth://totp/FinTrack:ravi", nil).Once()
	suite.twoFactor.On("EnableTwoFactor", mock.Anything, testUserID, "123456").Return(codes, nil).Once()
	suite.twoFactor.On("DisableTwoFactor", mock.Anything, testUserID, "secret", "654321").Return(apperrors.ErrUnauthorized).Once()
	suite.twoFactor.On("RegenerateBackupCodes", mock.Anything, testUserID, "AAAA-BBBB-CCCC").Return(codes, nil).Once()

	w := suite.authed(http.MethodPost, "/api/v1/auth/2fa/setup", nil)
	suite.Equal(http.StatusOK, w.Code)
	var setup dto.TwoFactorSetupResponse
	suite.decode(w, &setup)
	suite.Equal("JBSWY3DPEHPK3PXP", setup.Secret)

	w = suite.authed(http.MethodPost, "/api/v1/auth/2fa/verify", dto.TwoFactorCodeRequest{Token: "123456"})
	suite.Equal(http.StatusOK, w.Code)
	var backup dto.BackupCodesResponse
	suite.decode(w, &backup)
	suite.Equal(codes, backup.BackupCodes)

	w = suite.authed(http.MethodPost, "/api/v1/auth/2fa/disable", dto.DisableTwoFactorRequest{Password: "secret", Token: "654321"})
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.authed(http.MethodPost, "/api/v1/auth/2fa/backup-codes", dto.TwoFactorCodeRequest{Token: "AAAA-BBBB-CCCC"})
	suite.Equal(http.StatusOK, w.Code)

	w = suite.authed(http.MethodPost, "/api/v1/auth/2fa/verify", map[string]any{})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestHealth() {
	w := suite.do(http.MethodGet, "/health", nil, "")
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}
