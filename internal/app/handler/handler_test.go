package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sync"
	"testing"
	"time"

	"imagehost/internal/app/auth"
	"imagehost/internal/app/config"
	"imagehost/internal/app/ds"
	"imagehost/internal/app/filetype"
	"imagehost/internal/app/middleware"
	"imagehost/internal/app/repository"
	"imagehost/internal/app/role"
	"imagehost/internal/app/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// memStorage — объектное хранилище в памяти для тестов
type memStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	infos   map[string]storage.ObjectInfo
	failPut bool
	puts    int
}

func newMemStorage() *memStorage {
	return &memStorage{
		objects: make(map[string][]byte),
		infos:   make(map[string]storage.ObjectInfo),
	}
}

func (m *memStorage) Put(_ context.Context, name string, data []byte, info storage.ObjectInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failPut {
		return fmt.Errorf("put failed")
	}
	m.puts++
	buf := make([]byte, len(data))
	copy(buf, data)
	m.objects[name] = buf
	info.ETag = fmt.Sprintf("etag-%s", name)
	m.infos[name] = info
	return nil
}

func (m *memStorage) Get(_ context.Context, name string) ([]byte, storage.ObjectInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[name]
	if !ok {
		return nil, storage.ObjectInfo{}, storage.ErrNotFound
	}
	return data, m.infos[name], nil
}

func (m *memStorage) Delete(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, name)
	delete(m.infos, name)
	return nil
}

func (m *memStorage) Exists(_ context.Context, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[name]
	return ok, nil
}

func (m *memStorage) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

type testEnv struct {
	db     *gorm.DB
	repo   *repository.Repository
	store  *memStorage
	auth   *auth.Service
	router *gin.Engine
	cfg    *config.Config
}

// newTestEnv собирает приложение на sqlite в памяти и фейковом хранилище
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	repo, err := repository.NewWithDB(db)
	require.NoError(t, err)

	cfg := &config.Config{
		PublicBaseURL: "http://localhost:8080",
		JWT: config.JWTConfig{
			Secret:    "test-secret",
			ExpiresIn: time.Hour,
		},
		Upload: config.UploadConfig{
			MaxFileSize:  1 * 1024 * 1024,
			AllowedTypes: []string{"image/jpeg", "image/png", "image/gif", "image/webp", "image/svg+xml"},
		},
		CORS: config.CORSConfig{AllowedOrigins: []string{"*"}},
	}

	store := newMemStorage()
	authService := auth.NewService(cfg)
	validator := filetype.NewValidator(cfg.Upload.AllowedTypes, cfg.Upload.TrustClientType)

	h := NewHandler(repo, store, nil, authService, validator, cfg)
	authMiddleware := middleware.NewAuthMiddleware(nil, authService)

	router := gin.New()
	h.RegisterRoutes(router, authMiddleware)

	return &testEnv{
		db:     db,
		repo:   repo,
		store:  store,
		auth:   authService,
		router: router,
		cfg:    cfg,
	}
}

// performRaw прогоняет готовый запрос через роутер
func performRaw(env *testEnv, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// createUser создает пользователя напрямую в БД
func (env *testEnv) createUser(t *testing.T, username, password string, userRole role.Role, isActive bool) *ds.User {
	t.Helper()
	hash, err := env.auth.HashPassword(password)
	require.NoError(t, err)

	user := &ds.User{
		Username: username,
		Password: hash,
		IsActive: isActive,
		Role:     userRole,
	}
	require.NoError(t, env.repo.CreateUser(user))
	return user
}

func (env *testEnv) tokenFor(t *testing.T, user *ds.User) string {
	t.Helper()
	token, err := env.auth.GenerateToken(user)
	require.NoError(t, err)
	return token
}

// doJSON выполняет запрос с JSON телом и опциональным bearer токеном
func (env *testEnv) doJSON(method, url string, body interface{}, token string) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewBuffer(b)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// doUpload выполняет multipart загрузку с заявленным Content-Type части
func (env *testEnv) doUpload(t *testing.T, filename, contentType string, data []byte, token string) *httptest.ResponseRecorder {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, _ := http.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func parseBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// pngBytes возвращает валидный по сигнатуре PNG буфер заданного размера
func pngBytes(size int) []byte {
	data := make([]byte, size)
	copy(data, []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A})
	for i := 8; i < size; i++ {
		data[i] = byte(i % 251)
	}
	return data
}
