package service_test

import (
	"testing"
	"time"

	"github.com/aitoolhub/backend/internal/apperr"
	"github.com/aitoolhub/backend/internal/models"
	"github.com/aitoolhub/backend/internal/repository"
	"github.com/aitoolhub/backend/internal/service"
	"github.com/aitoolhub/backend/internal/testutil"
	"github.com/aitoolhub/backend/internal/utils"
	"github.com/aitoolhub/backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

const authTestSecret = "auth-service-test-secret"

type AuthServiceTestSuite struct {
	suite.Suite
	testDB      *testutil.TestDatabase
	authService *service.AuthService
}

func (s *AuthServiceTestSuite) SetupSuite() {
	logger.Init(false)

	s.testDB = testutil.SetupTestDatabase(s.T())

	userRepo := repository.NewUserRepository(s.testDB.DB)
	s.authService = service.NewAuthService(userRepo, authTestSecret, 30*time.Minute)
}

func (s *AuthServiceTestSuite) TearDownSuite() {
	s.testDB.Teardown(s.T())
}

func (s *AuthServiceTestSuite) SetupTest() {
	testutil.CleanDatabase(s.T(), s.testDB.DB)
}

func (s *AuthServiceTestSuite) TestSignupDefaultsToUserRole() {
	user, token, err := s.authService.Signup("alice", "Password123", "")

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), models.RoleUser, user.Role)
	assert.NotEmpty(s.T(), token)

	// The issued token verifies immediately and carries the identity.
	claims, err := utils.ValidateToken(token, authTestSecret)
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), "alice", claims.Username)
	assert.Equal(s.T(), models.RoleUser, claims.Role)
}

func (s *AuthServiceTestSuite) TestSignupAdminRole() {
	user, _, err := s.authService.Signup("root", "Password123", models.RoleAdmin)

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), models.RoleAdmin, user.Role)
}

func (s *AuthServiceTestSuite) TestSignupDuplicateUsernameIsConflict() {
	_, _, err := s.authService.Signup("alice", "Password123", "")
	assert.NoError(s.T(), err)

	_, _, err = s.authService.Signup("alice", "OtherPassword1", "")
	assert.ErrorIs(s.T(), err, apperr.ErrConflict)
}

func (s *AuthServiceTestSuite) TestSignupUnknownRoleIsInvalidInput() {
	_, _, err := s.authService.Signup("bob", "Password123", models.Role("superuser"))
	assert.ErrorIs(s.T(), err, apperr.ErrInvalidInput)
}

func (s *AuthServiceTestSuite) TestSignupShortPasswordIsInvalidInput() {
	_, _, err := s.authService.Signup("bob", "short", "")
	assert.ErrorIs(s.T(), err, apperr.ErrInvalidInput)
}

func (s *AuthServiceTestSuite) TestLoginIssuesToken() {
	_, _, err := s.authService.Signup("alice", "Password123", "")
	assert.NoError(s.T(), err)

	user, token, err := s.authService.Login("alice", "Password123")
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), "alice", user.Username)

	claims, err := utils.ValidateToken(token, authTestSecret)
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), "alice", claims.Username)
}

func (s *AuthServiceTestSuite) TestLoginWrongPasswordIsUnauthenticated() {
	_, _, err := s.authService.Signup("alice", "Password123", "")
	assert.NoError(s.T(), err)

	_, _, err = s.authService.Login("alice", "WrongPassword1")
	assert.ErrorIs(s.T(), err, apperr.ErrUnauthenticated)
}

func (s *AuthServiceTestSuite) TestLoginUnknownUserIsUnauthenticated() {
	_, _, err := s.authService.Login("nobody", "Password123")
	assert.ErrorIs(s.T(), err, apperr.ErrUnauthenticated)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
