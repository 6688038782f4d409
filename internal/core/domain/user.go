package domain

import "time"

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// CartLine is a single (product, quantity) entry in a user's cart.
// A cart holds at most one line per distinct product; quantities are
// always >= 1; a quantity dropping to zero removes the line instead.
type CartLine struct {
	ProductID string `json:"product_id" bson:"product_id"`
	Quantity  int    `json:"quantity" bson:"quantity"`
}

// User models an authenticated actor. The cart is embedded in the user
// document so cart mutations stay within single-document atomicity.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	CartItems    []CartLine `json:"cart_items"`
	CreatedAt    time.Time  `json:"created_at"`
}

// IsAdmin reports whether the user may access admin-only routes.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
