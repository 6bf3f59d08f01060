package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/webshoplabs/webshop-backend/services/common/logger"
	"github.com/webshoplabs/webshop-backend/services/common/middleware"
	"github.com/webshoplabs/webshop-backend/services/user-service/models"
	"github.com/webshoplabs/webshop-backend/services/user-service/repository"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Initialize("test")
	os.Exit(m.Run())
}

type mockUserRepo struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]models.User)}
}

func (m *mockUserRepo) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == user.Username {
			return repository.ErrUsernameTaken
		}
	}
	m.users[user.ID] = *user
	return nil
}

func (m *mockUserRepo) GetUserByID(_ context.Context, userID string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &u, nil
}

func (m *mockUserRepo) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			user := u
			return &user, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockUserRepo) ListUsers(context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.User
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *mockUserRepo) UpdateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	m.users[user.ID] = *user
	return nil
}

func (m *mockUserRepo) UpdatePassword(_ context.Context, userID, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	m.users[userID] = u
	return nil
}

func (m *mockUserRepo) DeleteUser(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, userID)
	return nil
}

func stubSigner(userID string, _ time.Duration) (string, error) {
	return "token-for-" + userID, nil
}

func setupRouter(repo repository.UserRepository, authedUser string) *gin.Engine {
	r := gin.New()
	controller := NewUserController(repo, stubSigner, time.Hour)

	if authedUser != "" {
		r.Use(func(c *gin.Context) {
			c.Set(middleware.UserIDKey, authedUser)
		})
	}

	r.POST("/users/register", controller.Register)
	r.POST("/users/login", controller.Login)
	r.GET("/users", controller.ListUsers)
	r.GET("/users/:userId", controller.GetUser)
	r.GET("/users/by-username/:username", controller.GetUserByUsername)
	r.PUT("/users/:userId", controller.UpdateUser)
	r.DELETE("/users/:userId", controller.DeleteUser)
	r.POST("/users/password", controller.ChangePassword)
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func seedUser(t *testing.T, repo *mockUserRepo, id, username, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	repo.users[id] = models.User{ID: id, Username: username, PasswordHash: string(hash)}
}

func TestRegister_CreatedAndDuplicateConflict(t *testing.T) {
	repo := newMockUserRepo()
	r := setupRouter(repo, "")

	body := `{"username":"alice","password":"s3cretpass","name":"Alice","email":"alice@example.com"}`
	w := doJSON(r, http.MethodPost, "/users/register", body)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "password")

	w = doJSON(r, http.MethodPost, "/users/register", body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegister_RejectsShortPassword(t *testing.T) {
	r := setupRouter(newMockUserRepo(), "")
	w := doJSON(r, http.MethodPost, "/users/register", `{"username":"alice","password":"short"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_IssuesToken(t *testing.T) {
	repo := newMockUserRepo()
	seedUser(t, repo, "U1", "alice", "s3cretpass")
	r := setupRouter(repo, "")

	w := doJSON(r, http.MethodPost, "/users/login", `{"username":"alice","password":"s3cretpass"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"access_token":"token-for-U1"`)
}

func TestLogin_WrongPasswordUnauthorized(t *testing.T) {
	repo := newMockUserRepo()
	seedUser(t, repo, "U1", "alice", "s3cretpass")
	r := setupRouter(repo, "")

	w := doJSON(r, http.MethodPost, "/users/login", `{"username":"alice","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_UnknownUserUnauthorized(t *testing.T) {
	r := setupRouter(newMockUserRepo(), "")
	w := doJSON(r, http.MethodPost, "/users/login", `{"username":"ghost","password":"whatever"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestChangePassword_VerifiesOldPassword(t *testing.T) {
	repo := newMockUserRepo()
	seedUser(t, repo, "U1", "alice", "s3cretpass")
	r := setupRouter(repo, "U1")

	w := doJSON(r, http.MethodPost, "/users/password", `{"old_password":"wrong","new_password":"newpassword"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodPost, "/users/password", `{"old_password":"s3cretpass","new_password":"newpassword"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	u, err := repo.GetUserByID(context.Background(), "U1")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("newpassword")))
}

func TestGetUserByUsername(t *testing.T) {
	repo := newMockUserRepo()
	seedUser(t, repo, "U1", "alice", "s3cretpass")
	r := setupRouter(repo, "U1")

	w := doJSON(r, http.MethodGet, "/users/by-username/alice", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"U1"`)

	w = doJSON(r, http.MethodGet, "/users/by-username/ghost", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateUser_PartialUpdate(t *testing.T) {
	repo := newMockUserRepo()
	seedUser(t, repo, "U1", "alice", "s3cretpass")
	r := setupRouter(repo, "U1")

	w := doJSON(r, http.MethodPut, "/users/U1", `{"address":"1 Main St"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	u, err := repo.GetUserByID(context.Background(), "U1")
	require.NoError(t, err)
	assert.Equal(t, "1 Main St", u.Address)
	assert.Equal(t, "alice", u.Username)
}

func TestDeleteUser_Idempotent(t *testing.T) {
	repo := newMockUserRepo()
	seedUser(t, repo, "U1", "alice", "s3cretpass")
	r := setupRouter(repo, "U1")

	w := doJSON(r, http.MethodDelete, "/users/U1", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodDelete, "/users/U1", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
