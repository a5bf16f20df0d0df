package role

// Роли пользователей системы
type Role string

const (
	User  Role = "user"
	Admin Role = "admin"
)

// IsValid проверяет, что роль входит в список известных
func (r Role) IsValid() bool {
	return r == User || r == Admin
}
