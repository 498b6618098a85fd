package dto

type RegisterInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
