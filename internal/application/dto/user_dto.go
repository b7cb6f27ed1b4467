package dto

// RegisterRequest pedido de registo de utilizador do backoffice.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"` // admin | secretaria | financeiro
}

// LoginRequest pedido de autenticação.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse resposta de autenticação com o token JWT.
type AuthResponse struct {
	Token string `json:"token"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}
