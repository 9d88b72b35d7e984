package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ihdim5/healthrecord-api/internal/handler"
	"github.com/ihdim5/healthrecord-api/internal/model"
	"github.com/ihdim5/healthrecord-api/internal/service/audit"
	"github.com/ihdim5/healthrecord-api/internal/service/doctor"
	"github.com/ihdim5/healthrecord-api/pkg/auth"
)

const (
	ContextAccountID   = "account_id"
	ContextAccountKind = "account_kind"
)

// TokenValidator validates an access token; the auth service implements it.
type TokenValidator interface {
	ValidateToken(token string) (*auth.Claims, error)
}

type AuthMiddleware struct {
	tokens  TokenValidator
	doctors doctor.DoctorService
}

func NewAuthMiddleware(tokens TokenValidator, doctors doctor.DoctorService) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:  tokens,
		doctors: doctors,
	}
}

// RequireAuth validates the bearer token and stamps account id and kind onto
// the request context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				handler.NewErrorResponse("missing or malformed authorization header"))
			return
		}

		claims, err := m.tokens.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				handler.NewErrorResponse("invalid token"))
			return
		}

		c.Set(ContextAccountID, claims.AccountID)
		c.Set(ContextAccountKind, string(claims.Kind))
		c.Request = c.Request.WithContext(audit.WithActor(c.Request.Context(), claims.AccountID))
		c.Next()
	}
}

// RequireKind restricts a route to the given account kinds. It runs after
// RequireAuth.
func (m *AuthMiddleware) RequireKind(kinds ...model.AccountKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		current := model.AccountKind(c.GetString(ContextAccountKind))
		for _, k := range kinds {
			if current == k {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden,
			handler.NewErrorResponse("insufficient permissions"))
	}
}

// RequirePatientAccess guards a single patient record addressed by the :id
// route parameter: admins always pass, a patient may reach only their own
// record, and a doctor must be verified.
func (m *AuthMiddleware) RequirePatientAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch model.AccountKind(c.GetString(ContextAccountKind)) {
		case model.KindAdmin:
			c.Next()
		case model.KindPatient:
			if c.GetString(ContextAccountID) != c.Param("id") {
				c.AbortWithStatusJSON(http.StatusForbidden,
					handler.NewErrorResponse("insufficient permissions"))
				return
			}
			c.Next()
		case model.KindDoctor:
			if err := m.doctors.EnsureVerified(c.Request.Context(), c.GetString(ContextAccountID)); err != nil {
				c.AbortWithStatusJSON(http.StatusForbidden,
					handler.NewErrorResponse("doctor is not verified"))
				return
			}
			c.Next()
		default:
			c.AbortWithStatusJSON(http.StatusForbidden,
				handler.NewErrorResponse("insufficient permissions"))
		}
	}
}

// RequireVerifiedDoctor gates the record-access workflow: the caller must be
// a doctor whose verification status is Verified. Admins pass through, since
// they manage the same records.
func (m *AuthMiddleware) RequireVerifiedDoctor() gin.HandlerFunc {
	return func(c *gin.Context) {
		kind := model.AccountKind(c.GetString(ContextAccountKind))
		if kind == model.KindAdmin {
			c.Next()
			return
		}
		if kind != model.KindDoctor {
			c.AbortWithStatusJSON(http.StatusForbidden,
				handler.NewErrorResponse("insufficient permissions"))
			return
		}

		if err := m.doctors.EnsureVerified(c.Request.Context(), c.GetString(ContextAccountID)); err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden,
				handler.NewErrorResponse("doctor is not verified"))
			return
		}
		c.Next()
	}
}
