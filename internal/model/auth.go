package model

import (
	"github.com/golang-jwt/jwt/v5"
)

// Actor is the authenticated user of a session. It never carries a password.
type Actor struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
	FullName   string `json:"fullName"`
	Department string `json:"department,omitempty"`
}

// Session is returned by a successful login.
type Session struct {
	Token string `json:"token"`
	Actor *Actor `json:"user"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SessionClaims are the JWT claims carried by a session token.
type SessionClaims struct {
	jwt.RegisteredClaims
	SessionID string `json:"sid"`
	Role      Role   `json:"role"`
}
