package service

import (
	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/deppfellow/restaurant-backend/internal/server"
)

// AuthService configures the Clerk SDK. Session verification itself runs
// in middleware.
type AuthService struct {
	server *server.Server
}

func NewAuthService(s *server.Server) *AuthService {
	clerk.SetKey(s.Config.Auth.SecretKey)
	return &AuthService{
		server: s,
	}
}
