package middleware

import (
	"strings"

	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"
	"job-board-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

// AccessTokenCookie is the cookie set on login and registration.
const AccessTokenCookie = "accessToken"

// ExtractToken reads the access token from the cookie, falling back to the
// Authorization header. The cookie wins when both are present.
func ExtractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie != "" {
		return cookie
	}

	header := c.GetHeader("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

// Authenticate resolves the token to an account and stores it on the
// context. Requests without a valid token are rejected with 401.
func Authenticate(authUC domain.AuthUsecase, secLog *security.SecurityLogger) gin.HandlerFunc {
	if secLog == nil {
		secLog = security.DefaultLogger()
	}

	return func(c *gin.Context) {
		token := ExtractToken(c)

		account, err := authUC.ResolvePrincipal(c.Request.Context(), token)
		if err != nil {
			if token != "" && apperror.Is(err, apperror.KindUnauthenticated) {
				secLog.LogTokenRejected(c.Request.Context(), c.ClientIP(), c.GetString(RequestIDKey), err.Error())
			}
			_ = c.Error(err)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyAccountID), account.ID)
		c.Set(string(domain.KeyAccount), account)
		c.Set(string(domain.KeyToken), token)
		c.Next()
	}
}

// RequireRole loads the role-scoped profile for the authenticated account and
// rejects accounts of any other role with 403. It must run after
// Authenticate.
func RequireRole(authUC domain.AuthUsecase, role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		account, ok := CurrentAccount(c)
		if !ok {
			_ = c.Error(apperror.Unauthorized("Authentication required"))
			c.Abort()
			return
		}

		principal, err := authUC.AuthorizeRole(c.Request.Context(), account, role)
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyPrincipal), principal)
		c.Next()
	}
}

func CurrentAccount(c *gin.Context) (*domain.Account, bool) {
	v, ok := c.Get(string(domain.KeyAccount))
	if !ok {
		return nil, false
	}
	account, ok := v.(*domain.Account)
	return account, ok && account != nil
}

func CurrentPrincipal(c *gin.Context) (*domain.Principal, bool) {
	v, ok := c.Get(string(domain.KeyPrincipal))
	if !ok {
		return nil, false
	}
	principal, ok := v.(*domain.Principal)
	return principal, ok && principal != nil
}
