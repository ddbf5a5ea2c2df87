package domain

const (
	RoleCustomer = "customer"
	RoleSeller   = "seller"
)

func ValidRole(role string) bool {
	return role == RoleCustomer || role == RoleSeller
}
