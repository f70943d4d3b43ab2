package types

// User represents an account in the system.
// It contains identity, profile, role and credential data.
type User struct {
	// ID is the unique identifier of the user.
	ID int `json:"id" db:"id"`

	// Username is the unique login name chosen by the user.
	Username string `json:"username" db:"username"`

	// Email is the user's email address.
	Email string `json:"email" db:"email"`

	// FirstName and LastName are the user's display names.
	FirstName string `json:"first_name" db:"first_name"`
	LastName  string `json:"last_name" db:"last_name"`

	// Role indicates the user's authorization level
	// within the system (e.g., "admin", "user").
	Role string `json:"role" db:"role"`

	// PhoneNumber is optional contact data, changed through /users/phonenumber.
	PhoneNumber string `json:"phone_number" db:"phone_number"`

	// IsActive is set on registration and never cleared by the API.
	IsActive bool `json:"is_active" db:"is_active"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-" db:"hashed_password"`
}

// CreateUserRequest is the registration payload accepted by POST /auth/.
type CreateUserRequest struct {
	Username    string `json:"username" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
	Password    string `json:"password" validate:"required"`
	Role        string `json:"role" validate:"required"`
	PhoneNumber string `json:"phone_number"`
}

// UserVerification is the payload of PUT /users/password.
type UserVerification struct {
	Password    string `json:"password" validate:"required"`
	NewPassword string `json:"new_password" validate:"min=6"`
}

// Token is the OAuth2 bearer token response returned by POST /auth/token.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
