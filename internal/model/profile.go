package model

// Profile is the signed-in user's account record. The avatar is an opaque
// URL; upload mechanics live outside this module.
type Profile struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	AvatarURL string `json:"avatar_url"`
}

// ProfileRequest updates the signed-in user's account fields.
type ProfileRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone"`
}

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResult is the successful login response: a bearer token plus the
// signed-in profile.
type LoginResult struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
}
