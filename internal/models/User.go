package models

type User struct {
	Username string `json:"username" validate:"required|maxLen:64"`
	Email    string `json:"email" validate:"required|email"`
	Password string `json:"password" validate:"required"`
}

// PublicUser is the part of a user that leaves the server.
type PublicUser struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (u *User) Public() PublicUser {
	return PublicUser{Username: u.Username, Email: u.Email}
}

type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
