package middlewares

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/khawajaawaiz/goblog/models"
)

// resourceKey is the gin context key holding the resource fetched by
// CheckOwnership.
const resourceKey = "resource"

// Ownable is any resource bound to the user that created it.
type Ownable interface {
	OwnerID() uint
}

// Finder fetches an ownable resource by id. Satisfied by *models.PostStore
// and any future store with the same shape.
type Finder[R Ownable] interface {
	FindByID(id uint) (R, error)
}

// CheckRole denies the request unless the authenticated user's role is one of
// allowed. RequireAuth must run first.
func CheckRole(allowed ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.String(http.StatusUnauthorized, "Access Denied: You must be logged in.")
			c.Abort()
			return
		}

		for _, role := range allowed {
			if user.Role == role {
				c.Next()
				return
			}
		}

		names := make([]string, len(allowed))
		for i, role := range allowed {
			names[i] = string(role)
		}
		c.String(http.StatusForbidden,
			"Access Denied: You do not have permission to perform this action. Required role: %s. Your role: %s.",
			strings.Join(names, " or "), user.Role)
		c.Abort()
	}
}

// CheckAdminOnly is shorthand for CheckRole(models.RoleAdmin).
func CheckAdminOnly() gin.HandlerFunc {
	return CheckRole(models.RoleAdmin)
}

// CheckOwnership fetches the resource named by the idParam route parameter
// and allows the request through when the authenticated user owns it. Admins
// bypass the ownership comparison unconditionally. The fetched resource is
// attached to the context for the handler.
func CheckOwnership[R Ownable](store Finder[R], idParam string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.String(http.StatusUnauthorized, "Access Denied: You must be logged in.")
			c.Abort()
			return
		}

		id, err := strconv.ParseUint(c.Param(idParam), 10, 64)
		if err != nil {
			c.String(http.StatusNotFound, "Resource not found")
			c.Abort()
			return
		}

		resource, err := store.FindByID(uint(id))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.String(http.StatusNotFound, "Resource not found")
			} else {
				c.String(http.StatusInternalServerError, "Server error during authorization")
			}
			c.Abort()
			return
		}

		if user.Role != models.RoleAdmin && resource.OwnerID() != user.ID {
			c.String(http.StatusForbidden, "Access Denied: You can only modify your own content.")
			c.Abort()
			return
		}

		c.Set(resourceKey, resource)
		c.Next()
	}
}

// Resource returns the resource attached by CheckOwnership.
func Resource[R Ownable](c *gin.Context) (R, bool) {
	var zero R
	v, exists := c.Get(resourceKey)
	if !exists {
		return zero, false
	}
	resource, ok := v.(R)
	if !ok {
		return zero, false
	}
	return resource, true
}
