package controllers

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/khawajaawaiz/goblog/models"
)

func setupAdmin(t *testing.T) (*gin.Engine, *gorm.DB, *http.Cookie, *models.User) {
	t.Helper()
	engine, db := newTestServer(t)
	register(t, engine, "root", "root@example.com", "password123")
	admin := promote(t, db, "root@example.com", models.RoleAdmin)
	cookie := login(t, engine, "root@example.com", "password123")
	return engine, db, cookie, admin
}

func TestAdminRoutesForbiddenForNonAdmins(t *testing.T) {
	r, _ := newTestServer(t)
	register(t, r, "alice", "alice@example.com", "password123")
	cookie := login(t, r, "alice@example.com", "password123")

	w := get(r, "/admin/users", cookie)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = postForm(r, "/admin/users/role", url.Values{"userId": {"1"}, "newRole": {"reader"}}, cookie)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = postForm(r, "/admin/users/1/delete", nil, cookie)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminRoutesRedirectAnonymous(t *testing.T) {
	r, _ := newTestServer(t)
	w := get(r, "/admin/users")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/auth/login", w.Header().Get("Location"))
}

func TestListUsers(t *testing.T) {
	r, _, adminCookie, _ := setupAdmin(t)

	w := get(r, "/admin/users", adminCookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "root@example.com")
}

func TestChangeUserRole(t *testing.T) {
	r, db, adminCookie, _ := setupAdmin(t)
	engine := r

	register(t, engine, "bob", "bob@example.com", "password123")
	bob := findUser(t, db, "bob@example.com")

	w := postForm(engine, "/admin/users/role", url.Values{
		"userId":  {fmt.Sprint(bob.ID)},
		"newRole": {"reader"},
	}, adminCookie)
	require.Equal(t, http.StatusSeeOther, w.Code)

	updated := findUser(t, db, "bob@example.com")
	assert.Equal(t, models.RoleReader, updated.Role)
}

func TestChangeUserRoleRejectsInvalidRole(t *testing.T) {
	r, db, adminCookie, _ := setupAdmin(t)
	engine := r

	register(t, engine, "bob", "bob@example.com", "password123")
	bob := findUser(t, db, "bob@example.com")

	w := postForm(engine, "/admin/users/role", url.Values{
		"userId":  {fmt.Sprint(bob.ID)},
		"newRole": {"superuser"},
	}, adminCookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	unchanged := findUser(t, db, "bob@example.com")
	assert.Equal(t, models.RoleAuthor, unchanged.Role)
}

func TestChangeOwnRoleRefused(t *testing.T) {
	r, db, adminCookie, admin := setupAdmin(t)

	w := postForm(r, "/admin/users/role", url.Values{
		"userId":  {fmt.Sprint(admin.ID)},
		"newRole": {"reader"},
	}, adminCookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	unchanged := findUser(t, db, "root@example.com")
	assert.Equal(t, models.RoleAdmin, unchanged.Role)
}

func TestDeleteUserCascadesToPosts(t *testing.T) {
	r, db, adminCookie, _ := setupAdmin(t)
	engine := r

	register(t, engine, "bob", "bob@example.com", "password123")
	bob := findUser(t, db, "bob@example.com")
	seedPost(t, db, bob.ID, "Bob Draft", models.StatusDraft)
	seedPost(t, db, bob.ID, "Bob Published", models.StatusPublished)

	w := postForm(engine, fmt.Sprintf("/admin/users/%d/delete", bob.ID), nil, adminCookie)
	require.Equal(t, http.StatusSeeOther, w.Code)

	err := db.First(&models.User{}, bob.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var residual int64
	require.NoError(t, db.Model(&models.Post{}).Where("author_id = ?", bob.ID).Count(&residual).Error)
	assert.Zero(t, residual, "no posts may reference the deleted author id")
}

func TestDeleteOwnAccountRefused(t *testing.T) {
	r, db, adminCookie, admin := setupAdmin(t)

	w := postForm(r, fmt.Sprintf("/admin/users/%d/delete", admin.ID), nil, adminCookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	err := db.First(&models.User{}, admin.ID).Error
	assert.NoError(t, err, "the admin account must still exist")
}

func TestDeleteMissingUser(t *testing.T) {
	r, _, adminCookie, _ := setupAdmin(t)

	w := postForm(r, "/admin/users/9999/delete", nil, adminCookie)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
