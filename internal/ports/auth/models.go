package auth

import "strings"

// Role es el claim de rol que viaja en el token verificado.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleTrainer  Role = "trainer"
	RoleAdmin    Role = "admin"
)

func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin
	case "trainer":
		return RoleTrainer
	default:
		return RoleCustomer
	}
}

// Claims representa la información extraída del token.
type Claims struct {
	UserID string
	Email  string
	Role   Role
}
