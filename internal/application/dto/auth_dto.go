package dto

// RegisterRequest entrada para registro. Roles solo se respeta si el caller
// autenticado es admin; si no, se asigna el rol por defecto configurado.
type RegisterRequest struct {
	Email     string   `json:"email"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Password  string   `json:"password"`
	Roles     []string `json:"roles,omitempty"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse salida de login/registro: usuario + token de acceso.
type AuthResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"accessToken"`
	TokenType   string       `json:"tokenType"` // siempre "Bearer"
	ExpiresIn   int          `json:"expiresIn"` // segundos
}
