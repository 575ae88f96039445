package auth

import (
	"context"
	"net/http"
)

// Service defines owner authentication. The stand has a single owner
// account; when no password hash is configured the API runs in public mode
// and the guard admits every request.
type Service interface {
	Login(ctx context.Context, password string) (string, error)
	Guard(next http.Handler) http.Handler
}
