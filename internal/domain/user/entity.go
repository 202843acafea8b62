package user

import "time"

type Role string

const (
	RoleUser  Role = "user"  // Regular employee - can manage own work logs
	RoleAdmin Role = "admin" // Can view daily logs and monthly reports
)

type User struct {
	ID        string
	Email     string
	Name      string
	Image     *string
	Role      Role
	GoogleID  *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin checks if user can access admin reports
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
