package domain

import "time"

// UserRole is the role of an account
type UserRole string

const (
	RoleStudent     UserRole = "student"
	RoleFaculty     UserRole = "faculty"
	RoleCoordinator UserRole = "coordinator"
	RoleCustodian   UserRole = "custodian"
	RoleAdmin       UserRole = "admin"
)

// User represents an account of the reservation system
type User struct {
	ID        int64
	Name      string
	Email     string
	Role      UserRole
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin returns true for administrators
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanManageVenue returns true if the user is an admin or the venue's custodian
func (u *User) CanManageVenue(v *Venue) bool {
	if u.IsAdmin() {
		return true
	}
	return u.Role == RoleCustodian && v.IsManagedBy(u.ID)
}
