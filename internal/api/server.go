package api

import (
	"context"

	"github.com/vytor/profilesvc/internal/services"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "user-profile-service"

// Pinger is implemented by stores that can lose their connection.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	ProfileService services.ProfileService
	// Store is pinged by /ready when set.
	Store          Pinger
	AllowedOrigins []string
}
