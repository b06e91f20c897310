package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/khawajaawaiz/goblog/middlewares"
	"github.com/khawajaawaiz/goblog/models"
	"github.com/khawajaawaiz/goblog/utils"
)

const minPasswordLength = 8

// AuthController handles registration, login, logout and the dashboard.
type AuthController struct {
	logger *slog.Logger
	users  *models.UserStore
	posts  *models.PostStore
	tokens *utils.TokenService
}

func NewAuthController(logger *slog.Logger, users *models.UserStore, posts *models.PostStore, tokens *utils.TokenService) *AuthController {
	return &AuthController{logger: logger, users: users, posts: posts, tokens: tokens}
}

// ShowRegister renders the registration form. Clients that already hold a
// session cookie are sent to the dashboard instead.
func (ctl *AuthController) ShowRegister(c *gin.Context) {
	if token, err := c.Cookie(middlewares.CookieName); err == nil && token != "" {
		c.Redirect(http.StatusSeeOther, "/auth/dashboard")
		return
	}
	c.HTML(http.StatusOK, "register.html", gin.H{})
}

// Register creates a new account with the default author role.
func (ctl *AuthController) Register(c *gin.Context) {
	username := c.PostForm("username")
	email := c.PostForm("email")
	password := c.PostForm("password")
	confirmPassword := c.PostForm("confirmPassword")

	if username == "" || email == "" || password == "" || confirmPassword == "" {
		c.String(http.StatusBadRequest, "Registration failed: all fields are required.")
		return
	}
	if password != confirmPassword {
		c.String(http.StatusBadRequest, "Registration failed: passwords do not match.")
		return
	}
	if len(password) < minPasswordLength {
		c.String(http.StatusBadRequest, "Registration failed: password must be at least 8 characters long.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		ctl.logger.Error("failed to hash password", "error", err)
		c.String(http.StatusInternalServerError, "Something went wrong. Please try again later.")
		return
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashed),
		Role:     models.RoleAuthor,
	}
	if err := ctl.users.Create(user); err != nil {
		if errors.Is(err, models.ErrEmailTaken) {
			c.String(http.StatusBadRequest, "Registration failed: this email is already registered.")
			return
		}
		ctl.logger.Error("failed to create user", "email", email, "error", err)
		c.String(http.StatusInternalServerError, "Something went wrong. Please try again later.")
		return
	}

	ctl.logger.Info("user registered", "user_id", user.ID, "username", username)
	c.Redirect(http.StatusSeeOther, "/auth/login")
}

// ShowLogin renders the login form, redirecting clients that already hold a
// session cookie.
func (ctl *AuthController) ShowLogin(c *gin.Context) {
	if token, err := c.Cookie(middlewares.CookieName); err == nil && token != "" {
		c.Redirect(http.StatusSeeOther, "/auth/dashboard")
		return
	}
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

// Login verifies credentials, mints a session token and sets it as an
// HttpOnly, SameSite=Strict cookie. The failure message never reveals
// whether the email or the password was wrong.
func (ctl *AuthController) Login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	if email == "" || password == "" {
		c.String(http.StatusBadRequest, "Login failed: email and password are required.")
		return
	}

	user, err := ctl.users.FindByEmail(email)
	if err != nil {
		c.String(http.StatusUnauthorized, "Login failed: invalid email or password.")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		c.String(http.StatusUnauthorized, "Login failed: invalid email or password.")
		return
	}

	token, err := ctl.tokens.Generate(user.ID, user.Username)
	if err != nil {
		ctl.logger.Error("failed to generate token", "user_id", user.ID, "error", err)
		c.String(http.StatusInternalServerError, "Something went wrong. Please try again later.")
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middlewares.CookieName, token, int(ctl.tokens.TTL().Seconds()), "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/auth/dashboard")
}

// Logout clears the session cookie. The token itself stays valid until its
// natural expiry; there is no server-side revocation.
func (ctl *AuthController) Logout(c *gin.Context) {
	middlewares.ClearSessionCookie(c)
	c.Redirect(http.StatusSeeOther, "/")
}

// Dashboard shows the authenticated user's own posts, drafts included.
func (ctl *AuthController) Dashboard(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		c.String(http.StatusUnauthorized, "Access Denied: You must be logged in.")
		return
	}

	posts, err := ctl.posts.FindAll(models.PostFilter{AuthorID: user.ID})
	if err != nil {
		ctl.logger.Error("failed to load dashboard posts", "user_id", user.ID, "error", err)
		c.String(http.StatusInternalServerError, "Could not load dashboard. Please try again.")
		return
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"user":  user,
		"posts": posts,
	})
}
