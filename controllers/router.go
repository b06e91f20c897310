package controllers

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/khawajaawaiz/goblog/middlewares"
	"github.com/khawajaawaiz/goblog/models"
	"github.com/khawajaawaiz/goblog/utils"
)

// NewRouter wires stores, controllers and the middleware chain into a gin
// engine. templatesGlob locates the HTML views (e.g. "templates/*.html").
func NewRouter(db *gorm.DB, logger *slog.Logger, tokens *utils.TokenService, templatesGlob string) *gin.Engine {
	users := models.NewUserStore(db)
	posts := models.NewPostStore(db)

	authCtl := NewAuthController(logger, users, posts, tokens)
	blogCtl := NewBlogController(logger, posts)
	adminCtl := NewAdminController(logger, users)

	requireAuth := middlewares.RequireAuth(tokens, users)
	optionalAuth := middlewares.OptionalAuth(tokens, users)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Content-Type"},
		AllowCredentials: true,
	}))
	r.LoadHTMLGlob(templatesGlob)

	r.GET("/", optionalAuth, func(c *gin.Context) {
		user, _ := middlewares.CurrentUser(c)
		c.HTML(http.StatusOK, "index.html", gin.H{"user": user})
	})

	auth := r.Group("/auth")
	{
		auth.GET("/register", authCtl.ShowRegister)
		auth.POST("/register", authCtl.Register)
		auth.GET("/login", authCtl.ShowLogin)
		auth.POST("/login", authCtl.Login)
		auth.POST("/logout", authCtl.Logout)
		auth.GET("/dashboard", requireAuth, authCtl.Dashboard)
	}

	blog := r.Group("/blog")
	{
		blog.GET("/", optionalAuth, blogCtl.Index)
		blog.GET("/post/:id", optionalAuth, blogCtl.Show)

		blog.GET("/my-posts", requireAuth, blogCtl.MyPosts)

		canWrite := middlewares.CheckRole(models.RoleAuthor, models.RoleAdmin)
		blog.GET("/create", requireAuth, canWrite, blogCtl.ShowCreate)
		blog.POST("/create", requireAuth, canWrite, blogCtl.Create)

		owns := middlewares.CheckOwnership[*models.Post](posts, "id")
		blog.GET("/:id/edit", requireAuth, owns, blogCtl.ShowEdit)
		blog.POST("/:id/edit", requireAuth, owns, blogCtl.Update)
		blog.POST("/:id/delete", requireAuth, owns, blogCtl.Delete)
		blog.POST("/:id/publish", requireAuth, owns, blogCtl.Publish)
	}

	admin := r.Group("/admin")
	admin.Use(requireAuth, middlewares.CheckAdminOnly())
	{
		admin.GET("/users", adminCtl.ListUsers)
		admin.POST("/users/role", adminCtl.ChangeUserRole)
		admin.POST("/users/:id/delete", adminCtl.DeleteUser)
	}

	return r
}
