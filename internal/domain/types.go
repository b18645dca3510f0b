package domain

const (
	RoleCustomer = "customer"
	RoleEmployee = "employee"
)

// Identity is the authenticated caller carried from the bearer token.
type Identity struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"user_email"`
	Role     string `json:"role"`
}

// IsEmployee reports whether the caller may use back-office operations.
func (i Identity) IsEmployee() bool {
	return i.Role == RoleEmployee
}
