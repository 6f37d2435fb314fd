package entity

import "time"

// Roles recognized by the approval engine and the RBAC middleware.
const (
	RoleCashier    = "cashier"
	RoleSupervisor = "supervisor"
	RoleDirector   = "director"
	RoleAdmin      = "admin"
	RoleITAdmin    = "it-admin"
)

// User is an operator of the POS. Role drives approval authorization.
type User struct {
	ID           string
	Username     string
	Name         string
	PasswordHash string
	Role         string
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
