package handler

import (
	"net/http"
	"testing"

	"imagehost/internal/app/dto"
	"imagehost/internal/app/role"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminAccessControl(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "plain", "pw123456", role.User, true)
	userToken := env.tokenFor(t, user)

	// Не-администратор получает 403 на любом админском эндпоинте,
	// даже с валидным токеном
	adminEndpoints := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/admin/users"},
		{http.MethodPost, "/api/admin/users/activate"},
		{http.MethodPost, "/api/admin/users/update-password"},
		{http.MethodPost, "/api/admin/users/delete"},
		{http.MethodGet, "/api/admin/files"},
	}

	for _, ep := range adminEndpoints {
		t.Run(ep.method+" "+ep.path, func(t *testing.T) {
			w := env.doJSON(ep.method, ep.path, nil, userToken)
			assert.Equal(t, http.StatusForbidden, w.Code)

			w = env.doJSON(ep.method, ep.path, nil, "")
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestActivateUser(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "boss", "pw123456", role.Admin, true)
	target := env.createUser(t, "newbie", "pw123456", role.User, false)
	adminToken := env.tokenFor(t, admin)

	t.Run("Activate", func(t *testing.T) {
		isActive := true
		w := env.doJSON(http.MethodPost, "/api/admin/users/activate", dto.ActivateUserRequest{
			UserID:   target.ID,
			IsActive: &isActive,
		}, adminToken)
		require.Equal(t, http.StatusOK, w.Code)

		updated, err := env.repo.GetUserByID(target.ID)
		require.NoError(t, err)
		assert.True(t, updated.IsActive)
	})

	t.Run("Deactivate", func(t *testing.T) {
		isActive := false
		w := env.doJSON(http.MethodPost, "/api/admin/users/activate", dto.ActivateUserRequest{
			UserID:   target.ID,
			IsActive: &isActive,
		}, adminToken)
		require.Equal(t, http.StatusOK, w.Code)

		updated, err := env.repo.GetUserByID(target.ID)
		require.NoError(t, err)
		assert.False(t, updated.IsActive)
	})

	t.Run("Unknown User", func(t *testing.T) {
		isActive := true
		w := env.doJSON(http.MethodPost, "/api/admin/users/activate", dto.ActivateUserRequest{
			UserID:   99999,
			IsActive: &isActive,
		}, adminToken)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAdminUpdatePassword(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "boss", "pw123456", role.Admin, true)
	target := env.createUser(t, "member", "oldpass123", role.User, true)
	adminToken := env.tokenFor(t, admin)

	w := env.doJSON(http.MethodPost, "/api/admin/users/update-password", dto.UpdatePasswordRequest{
		UserID:      target.ID,
		NewPassword: "freshpass1",
	}, adminToken)
	require.Equal(t, http.StatusOK, w.Code)

	// Старый пароль не действует, новый работает
	resp := env.doJSON(http.MethodPost, "/api/login", dto.LoginRequest{Username: "member", Password: "oldpass123"}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	resp = env.doJSON(http.MethodPost, "/api/login", dto.LoginRequest{Username: "member", Password: "freshpass1"}, "")
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestAdminDeleteUser(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "boss", "pw123456", role.Admin, true)
	target := env.createUser(t, "victim", "pw123456", role.User, true)
	adminToken := env.tokenFor(t, admin)
	targetToken := env.tokenFor(t, target)

	// Пользователь загружает два файла
	w := env.doUpload(t, "one.png", "image/png", pngBytes(100), targetToken)
	require.Equal(t, http.StatusOK, w.Code)
	w = env.doUpload(t, "two.png", "image/png", pngBytes(200), targetToken)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 2, env.store.count())

	t.Run("Admin Cannot Delete Itself", func(t *testing.T) {
		w := env.doJSON(http.MethodPost, "/api/admin/users/delete", dto.DeleteUserRequest{UserID: admin.ID}, adminToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Cascade Delete", func(t *testing.T) {
		w := env.doJSON(http.MethodPost, "/api/admin/users/delete", dto.DeleteUserRequest{UserID: target.ID}, adminToken)
		require.Equal(t, http.StatusOK, w.Code)

		// Пользователь, строки файлов и объекты в хранилище удалены
		_, err := env.repo.GetUserByID(target.ID)
		assert.Error(t, err)
		files, err := env.repo.GetFilesByUser(target.ID)
		require.NoError(t, err)
		assert.Empty(t, files)
		assert.Equal(t, 0, env.store.count())
	})
}

func TestAdminFileListing(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "boss", "pw123456", role.Admin, true)
	alice := env.createUser(t, "alice", "pw123456", role.User, true)
	adminToken := env.tokenFor(t, admin)
	aliceToken := env.tokenFor(t, alice)

	w := env.doUpload(t, "a.png", "image/png", pngBytes(100), aliceToken)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.doJSON(http.MethodGet, "/api/admin/files", nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code)

	resp := parseBody(t, w)
	files, ok := resp["files"].([]interface{})
	require.True(t, ok)
	require.Len(t, files, 1)

	// Список дополнен логином владельца
	entry := files[0].(map[string]interface{})
	assert.Equal(t, "alice", entry["username"])
	assert.Equal(t, "a.png", entry["original_name"])
}
