package models

// Customer represents an account that owns orders.
// The password hash is never serialized.
type Customer struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Surname      string  `json:"surname"`
	Email        string  `json:"email"`
	Username     string  `json:"username"`
	Address      *string `json:"address"`
	PhoneNumber  *string `json:"phone_number"`
	PasswordHash string  `json:"-"`
}

// CustomerCreate is the payload accepted by POST /customers/
type CustomerCreate struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Surname     string  `json:"surname" validate:"required,max=255"`
	Email       string  `json:"email" validate:"required,email,max=255"`
	Username    string  `json:"username" validate:"required,max=255"`
	Password    string  `json:"password" validate:"required,max=72"`
	Address     *string `json:"address" validate:"omitempty,max=500"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=50"`
}
