package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aitoolhub/backend/internal/handler"
	"github.com/aitoolhub/backend/internal/middleware"
	"github.com/aitoolhub/backend/internal/models"
	"github.com/aitoolhub/backend/internal/repository"
	"github.com/aitoolhub/backend/internal/service"
	"github.com/aitoolhub/backend/internal/testutil"
	"github.com/aitoolhub/backend/internal/utils"
	"github.com/aitoolhub/backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const apiTestSecret = "handler-integration-test-secret"

type APIIntegrationTestSuite struct {
	suite.Suite
	testDB *testutil.TestDatabase
	router *gin.Engine
}

func (s *APIIntegrationTestSuite) SetupSuite() {
	logger.Init(false)
	gin.SetMode(gin.TestMode)

	s.testDB = testutil.SetupTestDatabase(s.T())

	userRepo := repository.NewUserRepository(s.testDB.DB)
	toolRepo := repository.NewToolRepository(s.testDB.DB)
	reviewRepo := repository.NewReviewRepository(s.testDB.DB)
	counterRepo := repository.NewCounterRepository(s.testDB.DB)

	authService := service.NewAuthService(userRepo, apiTestSecret, 30*time.Minute)
	reviewService := service.NewReviewService(reviewRepo, counterRepo)
	toolService := service.NewToolService(toolRepo, reviewRepo, counterRepo, reviewService)
	statsService := service.NewStatsService(userRepo, toolRepo, reviewRepo)

	authHandler := handler.NewAuthHandler(authService)
	toolHandler := handler.NewToolHandler(toolService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	adminHandler := handler.NewAdminHandler(reviewService, statsService)

	// Same route layout as cmd/server, without CORS and rate limiting.
	router := gin.New()

	router.POST("/api/auth/signup", authHandler.Signup)
	router.POST("/api/auth/login", authHandler.Login)
	router.GET("/api/tools", toolHandler.List)
	router.GET("/api/tools/:id", toolHandler.Get)
	router.GET("/api/reviews/:toolId", reviewHandler.ListApproved)

	authed := router.Group("/api")
	authed.Use(middleware.AuthMiddleware(apiTestSecret))
	{
		authed.GET("/auth/me", authHandler.Me)
		authed.POST("/reviews/:toolId", reviewHandler.Submit)
	}

	admin := router.Group("/api")
	admin.Use(middleware.AuthMiddleware(apiTestSecret), middleware.AdminMiddleware())
	{
		admin.POST("/tools", toolHandler.Create)
		admin.PUT("/tools/:id", toolHandler.Update)
		admin.DELETE("/tools/:id", toolHandler.Delete)
		admin.GET("/admin/reviews/pending", adminHandler.PendingReviews)
		admin.PUT("/admin/reviews/:id", adminHandler.SetReviewStatus)
		admin.GET("/admin/stats", adminHandler.Stats)
	}

	s.router = router
}

func (s *APIIntegrationTestSuite) TearDownSuite() {
	s.testDB.Teardown(s.T())
}

func (s *APIIntegrationTestSuite) SetupTest() {
	testutil.CleanDatabase(s.T(), s.testDB.DB)
}

func (s *APIIntegrationTestSuite) request(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(s.T(), err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *APIIntegrationTestSuite) signup(username, password string, role models.Role) string {
	w := s.request(http.MethodPost, "/api/auth/signup", "", gin.H{
		"username": username,
		"password": password,
		"role":     role,
	})
	require.Equal(s.T(), http.StatusCreated, w.Code, "signup failed: %s", w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(s.T(), resp.Token)
	return resp.Token
}

func (s *APIIntegrationTestSuite) TestSignupAndLogin() {
	s.signup("alice", "Password123", "")

	w := s.request(http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "alice",
		"password": "Password123",
	})
	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Contains(s.T(), w.Body.String(), "token")
}

func (s *APIIntegrationTestSuite) TestDuplicateSignupIsConflict() {
	s.signup("alice", "Password123", "")

	w := s.request(http.MethodPost, "/api/auth/signup", "", gin.H{
		"username": "alice",
		"password": "Password123",
	})
	assert.Equal(s.T(), http.StatusConflict, w.Code)
}

func (s *APIIntegrationTestSuite) TestLoginWrongPasswordIsUnauthorized() {
	s.signup("alice", "Password123", "")

	w := s.request(http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "alice",
		"password": "WrongPassword1",
	})
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *APIIntegrationTestSuite) TestProtectedRouteWithoutToken() {
	w := s.request(http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *APIIntegrationTestSuite) TestProtectedRouteWithToken() {
	token := s.signup("alice", "Password123", "")

	w := s.request(http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Contains(s.T(), w.Body.String(), "alice")
}

func (s *APIIntegrationTestSuite) TestExpiredTokenIsUnauthorized() {
	user, err := testutil.CreateTestUser("ghost", "Password123", models.RoleUser)
	require.NoError(s.T(), err)

	token, err := utils.GenerateToken(user, apiTestSecret, -time.Minute)
	require.NoError(s.T(), err)

	w := s.request(http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *APIIntegrationTestSuite) TestAdminRouteRoleGating() {
	userToken := s.signup("alice", "Password123", "")
	adminToken := s.signup("root", "Password123", models.RoleAdmin)

	// No token: authentication failure.
	w := s.request(http.MethodGet, "/api/admin/reviews/pending", "", nil)
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)

	// Valid token, wrong role: authorization failure, not 401.
	w = s.request(http.MethodGet, "/api/admin/reviews/pending", userToken, nil)
	assert.Equal(s.T(), http.StatusForbidden, w.Code)

	w = s.request(http.MethodGet, "/api/admin/reviews/pending", adminToken, nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
}

func (s *APIIntegrationTestSuite) TestModerationFlow() {
	adminToken := s.signup("root", "Password123", models.RoleAdmin)
	userToken := s.signup("alice", "Password123", "")

	// Admin creates a tool.
	w := s.request(http.MethodPost, "/api/tools", adminToken, gin.H{
		"name":     "Writer",
		"useCase":  "long-form writing",
		"category": "writing",
		"pricing":  "free",
	})
	require.Equal(s.T(), http.StatusCreated, w.Code)

	var created struct {
		ID int64 `json:"id"`
	}
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &created))

	// User submits a review; it is not public yet.
	w = s.request(http.MethodPost, fmt.Sprintf("/api/reviews/%d", created.ID), userToken, gin.H{
		"rating":  4.0,
		"comment": "does the job",
	})
	require.Equal(s.T(), http.StatusCreated, w.Code)

	var submitted struct {
		ID int64 `json:"id"`
	}
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &submitted))

	w = s.request(http.MethodGet, fmt.Sprintf("/api/reviews/%d", created.ID), "", nil)
	require.Equal(s.T(), http.StatusOK, w.Code)
	assert.Equal(s.T(), "[]", w.Body.String())

	// Admin sees it in the moderation queue and approves it.
	w = s.request(http.MethodGet, "/api/admin/reviews/pending", adminToken, nil)
	require.Equal(s.T(), http.StatusOK, w.Code)
	assert.Contains(s.T(), w.Body.String(), "does the job")

	w = s.request(http.MethodPut,
		fmt.Sprintf("/api/admin/reviews/%d?status=approved", submitted.ID), adminToken, nil)
	require.Equal(s.T(), http.StatusOK, w.Code)

	// Now the review is public and drives the listing aggregate.
	w = s.request(http.MethodGet, fmt.Sprintf("/api/reviews/%d", created.ID), "", nil)
	require.Equal(s.T(), http.StatusOK, w.Code)
	assert.Contains(s.T(), w.Body.String(), "does the job")

	w = s.request(http.MethodGet, "/api/tools", "", nil)
	require.Equal(s.T(), http.StatusOK, w.Code)

	var tools []struct {
		ID          int64   `json:"id"`
		AvgRating   float64 `json:"avgRating"`
		ReviewCount int     `json:"reviewCount"`
	}
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &tools))
	require.Len(s.T(), tools, 1)
	assert.Equal(s.T(), 4.0, tools[0].AvgRating)
	assert.Equal(s.T(), 1, tools[0].ReviewCount)
}

func (s *APIIntegrationTestSuite) TestSetReviewStatusRejectsUnknownValue() {
	adminToken := s.signup("root", "Password123", models.RoleAdmin)

	w := s.request(http.MethodPut, "/api/admin/reviews/1?status=published", adminToken, nil)
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func (s *APIIntegrationTestSuite) TestNonNumericToolIDIsBadRequest() {
	w := s.request(http.MethodGet, "/api/tools/abc", "", nil)
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func (s *APIIntegrationTestSuite) TestMissingToolIsNotFound() {
	w := s.request(http.MethodGet, "/api/tools/42", "", nil)
	assert.Equal(s.T(), http.StatusNotFound, w.Code)
}

func (s *APIIntegrationTestSuite) TestAdminStats() {
	adminToken := s.signup("root", "Password123", models.RoleAdmin)
	s.signup("alice", "Password123", "")

	w := s.request(http.MethodGet, "/api/admin/stats", adminToken, nil)
	require.Equal(s.T(), http.StatusOK, w.Code)

	var stats struct {
		Users   int64 `json:"users"`
		Tools   int64 `json:"tools"`
		Reviews int64 `json:"reviews"`
	}
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(s.T(), int64(2), stats.Users)
	assert.Equal(s.T(), int64(0), stats.Tools)
}

func TestAPIIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(APIIntegrationTestSuite))
}
