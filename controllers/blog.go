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

// BlogController handles post CRUD and the public listing.
type BlogController struct {
	logger *slog.Logger
	posts  *models.PostStore
}

func NewBlogController(logger *slog.Logger, posts *models.PostStore) *BlogController {
	return &BlogController{logger: logger, posts: posts}
}

// Index lists published posts for any visitor, newest first.
func (ctl *BlogController) Index(c *gin.Context) {
	posts, err := ctl.posts.FindAll(models.PostFilter{Status: models.StatusPublished})
	if err != nil {
		ctl.logger.Error("failed to list published posts", "error", err)
		c.String(http.StatusInternalServerError, "Error fetching posts")
		return
	}

	user, _ := middlewares.CurrentUser(c)
	c.HTML(http.StatusOK, "blog_index.html", gin.H{
		"posts": posts,
		"user":  user,
		"title": "All Blog Posts",
	})
}

// MyPosts lists every post owned by the authenticated user, drafts included.
func (ctl *BlogController) MyPosts(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		c.String(http.StatusUnauthorized, "Access Denied: You must be logged in.")
		return
	}

	posts, err := ctl.posts.FindAll(models.PostFilter{AuthorID: user.ID})
	if err != nil {
		ctl.logger.Error("failed to list user posts", "user_id", user.ID, "error", err)
		c.String(http.StatusInternalServerError, "Error fetching your posts")
		return
	}

	c.HTML(http.StatusOK, "blog_myposts.html", gin.H{
		"posts": posts,
		"user":  user,
	})
}

// Show renders a single post. Drafts are visible only to their author and
// admins; anonymous viewers of a draft are sent to login.
func (ctl *BlogController) Show(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusNotFound, "Post not found")
		return
	}

	post, err := ctl.posts.FindByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.String(http.StatusNotFound, "Post not found")
			return
		}
		ctl.logger.Error("failed to fetch post", "post_id", id, "error", err)
		c.String(http.StatusInternalServerError, "Error fetching post")
		return
	}

	user, _ := middlewares.CurrentUser(c)
	if post.Status == models.StatusDraft {
		if user == nil {
			c.Redirect(http.StatusSeeOther, "/auth/login")
			return
		}
		if post.AuthorID != user.ID && user.Role != models.RoleAdmin {
			c.String(http.StatusForbidden, "Access Denied: Private Draft")
			return
		}
	}

	c.HTML(http.StatusOK, "blog_show.html", gin.H{
		"post": post,
		"user": user,
	})
}

// ShowCreate renders the new-post form.
func (ctl *BlogController) ShowCreate(c *gin.Context) {
	user, _ := middlewares.CurrentUser(c)
	c.HTML(http.StatusOK, "blog_create.html", gin.H{"user": user})
}

// Create stores a new post. The author is always the authenticated user;
// client input can never assign authorship. Status defaults to draft.
func (ctl *BlogController) Create(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		c.String(http.StatusUnauthorized, "Access Denied: You must be logged in.")
		return
	}

	title := c.PostForm("title")
	content := c.PostForm("content")
	status := models.Status(c.PostForm("status"))

	if title == "" || content == "" {
		c.String(http.StatusBadRequest, "Title and content are required")
		return
	}
	if status != "" && !status.Valid() {
		c.String(http.StatusBadRequest, "Invalid status")
		return
	}

	post := &models.Post{
		Title:    title,
		Content:  content,
		AuthorID: user.ID,
		Status:   status,
	}
	if err := ctl.posts.Create(post); err != nil {
		ctl.logger.Error("failed to create post", "user_id", user.ID, "error", err)
		c.String(http.StatusInternalServerError, "Error creating post")
		return
	}

	c.Redirect(http.StatusSeeOther, "/blog/my-posts")
}

// ShowEdit renders the edit form using the resource attached by the
// ownership gate.
func (ctl *BlogController) ShowEdit(c *gin.Context) {
	post, ok := middlewares.Resource[*models.Post](c)
	if !ok {
		c.String(http.StatusNotFound, "Post not found")
		return
	}
	user, _ := middlewares.CurrentUser(c)
	c.HTML(http.StatusOK, "blog_edit.html", gin.H{
		"post": post,
		"user": user,
	})
}

// Update applies a partial update to an owned post. Only supplied fields
// change; with nothing supplied the post is returned untouched.
func (ctl *BlogController) Update(c *gin.Context) {
	post, ok := middlewares.Resource[*models.Post](c)
	if !ok {
		c.String(http.StatusNotFound, "Post not found")
		return
	}

	status := models.Status(c.PostForm("status"))
	if status != "" && !status.Valid() {
		c.String(http.StatusBadRequest, "Invalid status")
		return
	}

	update := models.PostUpdate{
		Title:   c.PostForm("title"),
		Content: c.PostForm("content"),
		Status:  status,
	}
	if _, err := ctl.posts.Update(post.ID, update); err != nil {
		ctl.logger.Error("failed to update post", "post_id", post.ID, "error", err)
		c.String(http.StatusInternalServerError, "Error updating post")
		return
	}

	c.Redirect(http.StatusSeeOther, "/blog/my-posts")
}

// Delete removes an owned post. Hard delete, no undo.
func (ctl *BlogController) Delete(c *gin.Context) {
	post, ok := middlewares.Resource[*models.Post](c)
	if !ok {
		c.String(http.StatusNotFound, "Post not found")
		return
	}

	if err := ctl.posts.Delete(post.ID); err != nil {
		ctl.logger.Error("failed to delete post", "post_id", post.ID, "error", err)
		c.String(http.StatusInternalServerError, "Error deleting post")
		return
	}

	c.Redirect(http.StatusSeeOther, "/blog/my-posts")
}

// Publish flips an owned post to published, leaving other fields untouched.
func (ctl *BlogController) Publish(c *gin.Context) {
	post, ok := middlewares.Resource[*models.Post](c)
	if !ok {
		c.String(http.StatusNotFound, "Post not found")
		return
	}

	if _, err := ctl.posts.Update(post.ID, models.PostUpdate{Status: models.StatusPublished}); err != nil {
		ctl.logger.Error("failed to publish post", "post_id", post.ID, "error", err)
		c.String(http.StatusInternalServerError, "Error publishing post")
		return
	}

	c.Redirect(http.StatusSeeOther, "/blog/my-posts")
}
