package profileservice

// Роли пользователей платформы
const (
	RoleStudent = "student"
	RoleAdvisor = "advisor"
	RoleAdmin   = "admin"
)

// User модель пользователя из ProfileService
type User struct {
	ID       int64  `json:"id"`
	Role     string `json:"role"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	// Department факультет/направление (для advisors)
	Department *string `json:"department,omitempty"`
}

// IsStudent возвращает true для роли студента
func (u *User) IsStudent() bool {
	return u.Role == RoleStudent
}

// IsAdvisor возвращает true для роли советника
func (u *User) IsAdvisor() bool {
	return u.Role == RoleAdvisor
}
