package models

// Claims represents the identity carried by a token issued by the hosted backend.
type Claims struct {
	Subject string `json:"sub"`
	Email   string `json:"email,omitempty"`
	Role    string `json:"role,omitempty"`
	Exp     int64  `json:"exp"`
}
