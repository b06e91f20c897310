package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khawajaawaiz/goblog/models"
	"github.com/khawajaawaiz/goblog/utils"
)

// CookieName is the cookie carrying the session token.
const CookieName = "token"

// userKey is the gin context key holding the authenticated *models.User.
const userKey = "currentUser"

// CurrentUser returns the user attached by RequireAuth or OptionalAuth.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(userKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

// ClearSessionCookie expires the session cookie on the client.
func ClearSessionCookie(c *gin.Context) {
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
}

// RequireAuth resolves the session cookie to a live user record and attaches
// it to the context. Missing, invalid or stale tokens redirect to the login
// page; invalid tokens are also cleared from the client.
//
// The user row is re-read on every request, so role changes and deletions
// take effect on the subject's next request.
func RequireAuth(tokens *utils.TokenService, users *models.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(CookieName)
		if err != nil || tokenString == "" {
			c.Redirect(http.StatusSeeOther, "/auth/login")
			c.Abort()
			return
		}

		claims, err := tokens.Verify(tokenString)
		if err != nil {
			ClearSessionCookie(c)
			c.Redirect(http.StatusSeeOther, "/auth/login")
			c.Abort()
			return
		}

		user, err := users.FindByID(claims.UserID)
		if err != nil {
			// Account deleted after the token was issued.
			ClearSessionCookie(c)
			c.Redirect(http.StatusSeeOther, "/auth/login")
			c.Abort()
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// OptionalAuth attaches the user when a valid session token is present and
// proceeds anonymously otherwise. A dead cookie is cleared but never blocks
// the request.
func OptionalAuth(tokens *utils.TokenService, users *models.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(CookieName)
		if err != nil || tokenString == "" {
			c.Next()
			return
		}

		claims, err := tokens.Verify(tokenString)
		if err != nil {
			ClearSessionCookie(c)
			c.Next()
			return
		}

		user, err := users.FindByID(claims.UserID)
		if err != nil {
			ClearSessionCookie(c)
			c.Next()
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}
