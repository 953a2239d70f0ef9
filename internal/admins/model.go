package admins

import "time"

const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super-admin"
)

type Admin struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Email        string    `bson:"email" json:"email"`
	Name         string    `bson:"name" json:"name"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	Role         string    `bson:"role" json:"role"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Profile is the admin shape embedded in auth responses.
type Profile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type AuthResponse struct {
	Token string  `json:"token"`
	Admin Profile `json:"admin"`
}

func (a Admin) Profile() Profile {
	return Profile{ID: a.ID, Email: a.Email, Name: a.Name, Role: a.Role}
}
