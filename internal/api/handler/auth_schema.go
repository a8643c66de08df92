package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

// --- Request / Response types ---

// Password strength is checked by the auth service, which owns the policy.
type registerRequest struct {
	Email    string `json:"email"     validate:"required,email"`
	Name     string `json:"name"      validate:"required,min=2,max=100"`
	Password string `json:"password"  validate:"required"`
	UserType string `json:"user_type" validate:"omitempty,oneof=user dj"`
	DJName   string `json:"dj_name"   validate:"omitempty,max=50"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type messageResponse struct {
	Message string `json:"message"`
}
