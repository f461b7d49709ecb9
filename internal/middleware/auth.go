package middleware

import (
	"context"
	"net/http"
	"strings"

	"agenda/internal/domain"
	"agenda/internal/pkg/jwt"
	"agenda/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Context keys set by JWTAuth.
const (
	ProviderIDKey  = "provider_id"
	DisplayNameKey = "display_name"
	ImageURLKey    = "image_url"
)

// JWTAuth authenticates the provider from a bearer token issued by the
// identity provider.
func JWTAuth(tokens *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Abort(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Authorization header is required")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			response.Abort(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be: Bearer <token>")
			return
		}

		claims, err := tokens.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			return
		}

		c.Set(ProviderIDKey, claims.Subject)
		c.Set(DisplayNameKey, claims.Name)
		c.Set(ImageURLKey, claims.Picture)
		c.Next()
	}
}

// ProviderID is the authenticated provider's user id, or "" outside JWTAuth.
func ProviderID(c *gin.Context) string {
	return c.GetString(ProviderIDKey)
}

func Identity(c *gin.Context) domain.Identity {
	return domain.Identity{
		UserID:      c.GetString(ProviderIDKey),
		DisplayName: c.GetString(DisplayNameKey),
		ImageURL:    c.GetString(ImageURLKey),
	}
}

// ProfileEnsurer creates the provider profile on first access.
type ProfileEnsurer interface {
	Ensure(ctx context.Context, id domain.Identity) (*domain.Profile, error)
}

// EnsureProfile must run after JWTAuth.
func EnsureProfile(profiles ProfileEnsurer) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := Identity(c)
		if id.UserID == "" {
			response.Abort(c, http.StatusUnauthorized, response.CodeUnauthorized, "Authentication required")
			return
		}
		if _, err := profiles.Ensure(c.Request.Context(), id); err != nil {
			_ = c.Error(err)
			response.Abort(c, http.StatusInternalServerError, response.CodeInternal, "Failed to load profile")
			return
		}
		c.Next()
	}
}
