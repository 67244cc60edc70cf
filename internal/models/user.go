package models

// User mirrors one entry of the persisted users document. Password holds the
// bcrypt hash; History keeps insertion order (most recent last).
type User struct {
	Username string   `json:"username"`
	Password string   `json:"password"`
	History  []string `json:"history"`
}

type Admin struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UsersFile / AdminFile are the on-disk document shapes:
// {"users": [...]} and {"admin": [...]}
type UsersFile struct {
	Users []*User `json:"users"`
}

type AdminFile struct {
	Admin []*Admin `json:"admin"`
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=user admin"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"omitempty,oneof=user admin"`
}

type AuthResponse struct {
	Token    string   `json:"token"`
	Username string   `json:"username"`
	Role     string   `json:"role"`
	History  []string `json:"history,omitempty"`
}
