package dto

// Credential credencial de demostración.
type Credential struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SeedResponse resultado de una siembra idempotente: Created lista solo lo que no existía.
type SeedResponse struct {
	Message     string                `json:"message"`
	Created     []string              `json:"created"`
	Credentials map[string]Credential `json:"credentials"`
}
