package entity

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
)

type User struct {
	Base
	Username     string   `db:"username"`
	PasswordHash string   `db:"password_hash"`
	Role         UserRole `db:"role"`
}
