package model

type User struct {
	ID       string `json:"ID"`
	Name     string `json:"name"`
	Age      string `json:"age"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateUserDTO is a User without the server assigned identifier.
type CreateUserDTO struct {
	Name     string `json:"name"`
	Age      string `json:"age"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
