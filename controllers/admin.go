package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/khawajaawaiz/goblog/middlewares"
	"github.com/khawajaawaiz/goblog/models"
)

// AdminController handles user management. Every route is gated admin-only at
// the router level.
type AdminController struct {
	logger *slog.Logger
	users  *models.UserStore
}

func NewAdminController(logger *slog.Logger, users *models.UserStore) *AdminController {
	return &AdminController{logger: logger, users: users}
}

// ListUsers shows all users, newest first. Password hashes never leave the
// store layer's json:"-" field.
func (ctl *AdminController) ListUsers(c *gin.Context) {
	users, err := ctl.users.FindAll()
	if err != nil {
		ctl.logger.Error("failed to list users", "error", err)
		c.String(http.StatusInternalServerError, "Error fetching users")
		return
	}

	admin, _ := middlewares.CurrentUser(c)
	c.HTML(http.StatusOK, "admin_users.html", gin.H{
		"users":   users,
		"user":    admin,
		"success": c.Query("success"),
	})
}

// ChangeUserRole updates another user's role. Changing your own role is
// refused so an admin cannot lock themselves out.
func (ctl *AdminController) ChangeUserRole(c *gin.Context) {
	admin, ok := middlewares.CurrentUser(c)
	if !ok {
		c.String(http.StatusUnauthorized, "Access Denied: You must be logged in.")
		return
	}

	targetID, err := strconv.ParseUint(c.PostForm("userId"), 10, 64)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid user id")
		return
	}
	newRole := models.Role(c.PostForm("newRole"))
	if !newRole.Valid() {
		c.String(http.StatusBadRequest, "Invalid role")
		return
	}
	if uint(targetID) == admin.ID {
		c.String(http.StatusBadRequest, "You cannot change your own role.")
		return
	}

	if err := ctl.users.UpdateRole(uint(targetID), newRole); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.String(http.StatusNotFound, "User not found")
			return
		}
		ctl.logger.Error("failed to update role", "target_id", targetID, "error", err)
		c.String(http.StatusInternalServerError, "Error updating role")
		return
	}

	ctl.logger.Info("role changed", "admin_id", admin.ID, "target_id", targetID, "new_role", newRole)
	c.Redirect(http.StatusSeeOther, "/admin/users?success=Role updated successfully")
}

// DeleteUser removes a user and all their posts in one transaction.
// Self-deletion is refused.
func (ctl *AdminController) DeleteUser(c *gin.Context) {
	admin, ok := middlewares.CurrentUser(c)
	if !ok {
		c.String(http.StatusUnauthorized, "Access Denied: You must be logged in.")
		return
	}

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusNotFound, "User not found")
		return
	}
	if uint(targetID) == admin.ID {
		c.String(http.StatusBadRequest, "You cannot delete your own account.")
		return
	}

	if err := ctl.users.DeleteWithPosts(uint(targetID)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.String(http.StatusNotFound, "User not found")
			return
		}
		ctl.logger.Error("failed to delete user", "target_id", targetID, "error", err)
		c.String(http.StatusInternalServerError, "Error deleting user")
		return
	}

	ctl.logger.Info("user deleted", "admin_id", admin.ID, "target_id", targetID)
	c.Redirect(http.StatusSeeOther, "/admin/users?success=User deleted successfully")
}
