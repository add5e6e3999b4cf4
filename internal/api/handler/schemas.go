package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// --- Accounts ---

// createUserRequest serves both self-registration and admin creation. The
// username rules match the canonical form enforced by the core: lowercase,
// 8-20 characters.
type createUserRequest struct {
	Username string `json:"username" validate:"required,min=8,max=20,lowercase"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=64"`
}

// replaceUserRequest is the full-replacement payload. Version is the value
// read by the client; a stale version is rejected with 409.
type replaceUserRequest struct {
	Username string `json:"username" validate:"required,min=8,max=20,lowercase"`
	Email    string `json:"email"    validate:"required,email"`
	IsAdmin  bool   `json:"is_admin"`
	Version  int    `json:"version"  validate:"required,gt=0"`
}

// setAdminRequest is the admin-only partial update; the pointer distinguishes
// an explicit false from an absent field.
type setAdminRequest struct {
	IsAdmin *bool `json:"is_admin" validate:"required"`
}

// --- Todos ---

type createTodoRequest struct {
	Title       string `json:"title"       validate:"required,max=50"`
	Description string `json:"description" validate:"max=500"`
}

// updateTodoRequest is a partial update; nil fields stay untouched. What a
// caller may actually change is decided by the core policy, not here.
type updateTodoRequest struct {
	Title       *string `json:"title"       validate:"omitempty,max=50"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	IsClosed    *bool   `json:"is_closed"`
}
