package model

import "github.com/golang-jwt/jwt/v5"

// UserClaims are the JWT claims issued at signup and login.
type UserClaims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// SignupRequest is the request body for account creation.
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the request body for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned after a successful signup or login.
type AuthResponse struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}
