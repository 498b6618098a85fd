package dto

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginOutput struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}
