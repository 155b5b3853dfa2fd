package auth

import "time"

// DefaultTokenTTL is the lifetime of minted tokens
const DefaultTokenTTL = 24 * time.Hour

// Error messages
const (
	ErrMsgMissingToken     = "missing bearer token"
	ErrMsgInvalidToken     = "invalid token"
	ErrMsgTokenExpired     = "token has expired"
	ErrMsgMissingSubject   = "token has no subject"
	ErrMsgUnexpectedMethod = "unexpected signing method: %v"
	ErrMsgEmptySecret      = "jwt secret must not be empty"
)
