package middleware

import (
	"net/http"

	"imagehost/internal/app/auth"
	"imagehost/internal/app/dto"
	"imagehost/internal/app/redis"
	"imagehost/internal/app/role"

	"github.com/gin-gonic/gin"
)

// Ключи контекста gin, выставляемые после успешной аутентификации
const (
	ContextUserID   = "userID"
	ContextUsername = "username"
	ContextUserRole = "userRole"
	ContextToken    = "token"
)

type AuthMiddleware struct {
	RedisClient *redis.Client
	Auth        *auth.Service
}

func NewAuthMiddleware(redisClient *redis.Client, authService *auth.Service) *AuthMiddleware {
	return &AuthMiddleware{
		RedisClient: redisClient,
		Auth:        authService,
	}
}

// WithAuthCheck middleware для проверки авторизации с ролями
func (am *AuthMiddleware) WithAuthCheck(assignedRoles ...role.Role) gin.HandlerFunc {
	return gin.HandlerFunc(func(gCtx *gin.Context) {
		// Извлекаем JWT токен из заголовка Authorization
		jwtStr := gCtx.GetHeader("Authorization")
		if jwtStr == "" {
			am.abort(gCtx, http.StatusUnauthorized, "unauthorized", "authorization header missing")
			return
		}

		// Убираем префикс "Bearer " если он есть
		if len(jwtStr) > 7 && jwtStr[:7] == "Bearer " {
			jwtStr = jwtStr[7:]
		}

		// Проверяем токен в blacklist Redis (если Redis настроен)
		if am.RedisClient != nil {
			err := am.RedisClient.CheckJWTInBlacklist(gCtx.Request.Context(), jwtStr)
			if err == nil {
				// Токен в blacklist
				am.abort(gCtx, http.StatusUnauthorized, "unauthorized", "token revoked")
				return
			}
		}

		// Любая ошибка проверки токена означает "не аутентифицирован"
		claims := am.Auth.VerifyToken(jwtStr)
		if claims == nil {
			am.abort(gCtx, http.StatusUnauthorized, "unauthorized", "invalid or expired token")
			return
		}

		// Проверяем роли пользователя
		if len(assignedRoles) > 0 && !am.hasRequiredRole(claims.Role, assignedRoles) {
			am.abort(gCtx, http.StatusForbidden, "forbidden", "insufficient role")
			return
		}

		// Сохраняем данные пользователя в контексте для последующего использования
		gCtx.Set(ContextUserID, claims.UserID)
		gCtx.Set(ContextUsername, claims.Username)
		gCtx.Set(ContextUserRole, claims.Role)
		gCtx.Set(ContextToken, jwtStr)

		gCtx.Next()
	})
}

func (am *AuthMiddleware) abort(gCtx *gin.Context, status int, code, message string) {
	gCtx.AbortWithStatusJSON(status, dto.ErrorResponse{
		Error:   code,
		Message: message,
	})
}

// hasRequiredRole проверяет, есть ли у пользователя необходимая роль
func (am *AuthMiddleware) hasRequiredRole(userRole role.Role, requiredRoles []role.Role) bool {
	for _, requiredRole := range requiredRoles {
		if userRole == requiredRole {
			return true
		}
	}
	return false
}

// UserIDFromContext извлекает ID пользователя, установленный WithAuthCheck
func UserIDFromContext(gCtx *gin.Context) (uint, bool) {
	v, ok := gCtx.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// RoleFromContext извлекает роль пользователя, установленную WithAuthCheck
func RoleFromContext(gCtx *gin.Context) (role.Role, bool) {
	v, ok := gCtx.Get(ContextUserRole)
	if !ok {
		return "", false
	}
	r, ok := v.(role.Role)
	return r, ok
}
