package dto

type RegisterRequest struct {
	Name     string `form:"name"`
	Email    string `form:"email"`
	Password string `form:"password"`
}

type LoginRequest struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}
