package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mdsajjadhossain25/portfolio-backend/config"
	"github.com/mdsajjadhossain25/portfolio-backend/database"
	"github.com/mdsajjadhossain25/portfolio-backend/models"
	"github.com/mdsajjadhossain25/portfolio-backend/storage"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testAdminPassword = "correct horse battery staple"

type recordingNotifier struct {
	mu       sync.Mutex
	messages []models.ContactMessage
	err      error
}

func (n *recordingNotifier) NotifyContact(_ context.Context, msg models.ContactMessage) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, msg)
	return n.err
}

type testServer struct {
	t        *testing.T
	handler  http.Handler
	db       *gorm.DB
	files    *storage.LocalStorage
	notifier *recordingNotifier
	token    string
}

type testOption func(*config.Config, *Dependencies)

func withRedis(client *redis.Client, limit int) testOption {
	return func(cfg *config.Config, deps *Dependencies) {
		deps.Redis = client
		cfg.PublicRateLimit = limit
	}
}

func newTestServer(t *testing.T, opts ...testOption) *testServer {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, models.Migrate(db))

	files, err := storage.NewLocalStorage(t.TempDir(), "http://localhost:8080/storage")
	require.NoError(t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := config.Config{
		AcceptedOrigins:   []string{"http://localhost:3000"},
		AdminPasswordHash: string(hash),
		AdminJWTSecret:    "test-secret",
		AdminTokenTTL:     time.Hour,
		PublicRateWindow:  time.Minute,
		SiteBaseURL:       "https://example.com",
		Storage:           config.Storage{PublicURL: "http://localhost:8080/storage"},
	}
	notifier := &recordingNotifier{}
	deps := Dependencies{
		Database: database.New(db),
		Files:    files,
		Notifier: notifier,
	}
	for _, opt := range opts {
		opt(&cfg, &deps)
	}

	ts := &testServer{
		t:        t,
		handler:  newRouter(deps, withConfig(cfg), withStartupTime(time.Now())),
		db:       db,
		files:    files,
		notifier: notifier,
	}
	ts.token = ts.login()
	return ts
}

func (s *testServer) login() string {
	rec := s.do(http.MethodPost, "/admin/login", map[string]string{"password": testAdminPassword}, false)
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())
	var resp loginResponse
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Token
}

// do sends body as JSON; admin requests carry the bearer token
func (s *testServer) do(method, path string, body any, admin bool) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if admin {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}
