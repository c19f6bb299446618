// Package api assembles the HTTP surface: routes, middleware order and the
// split between public reads and authenticated writes.
package api

import (
	"time"

	"reviewhub/internal/api/handler"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth       *handler.AuthHandler
	Users      *handler.UserHandler
	Categories *handler.CategoryHandler
	Genres     *handler.GenreHandler
	Titles     *handler.TitleHandler
	Reviews    *handler.ReviewHandler
	Comments   *handler.CommentHandler
}

// Middlewares carries the cross-cutting handlers the router needs; the
// router stays ignorant of how they are built.
type Middlewares struct {
	Auth         gin.HandlerFunc
	RequireAdmin gin.HandlerFunc
	AuthRate     gin.HandlerFunc
}

// NewRouter builds the engine. Safe methods on catalog and feedback
// resources are public; every write sits behind Auth, and catalog writes
// additionally behind RequireAdmin.
func NewRouter(h Handlers, mw Middlewares, log zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(log))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")

	auth := v1.Group("/auth", mw.AuthRate)
	{
		auth.POST("/signup", h.Auth.Signup)
		auth.POST("/token", h.Auth.Token)
	}

	users := v1.Group("/users", mw.Auth)
	{
		users.GET("/me", h.Users.Me)
		users.PATCH("/me", h.Users.UpdateMe)

		admin := users.Group("", mw.RequireAdmin)
		{
			admin.GET("", h.Users.List)
			admin.POST("", h.Users.Create)
			admin.GET("/:username", h.Users.Get)
			admin.PATCH("/:username", h.Users.Update)
			admin.DELETE("/:username", h.Users.Delete)
		}
	}

	v1.GET("/categories", h.Categories.List)
	categories := v1.Group("/categories", mw.Auth, mw.RequireAdmin)
	{
		categories.POST("", h.Categories.Create)
		categories.DELETE("/:slug", h.Categories.Delete)
	}

	v1.GET("/genres", h.Genres.List)
	genres := v1.Group("/genres", mw.Auth, mw.RequireAdmin)
	{
		genres.POST("", h.Genres.Create)
		genres.DELETE("/:slug", h.Genres.Delete)
	}

	v1.GET("/titles", h.Titles.List)
	v1.GET("/titles/:title_id", h.Titles.Get)
	titles := v1.Group("/titles", mw.Auth, mw.RequireAdmin)
	{
		titles.POST("", h.Titles.Create)
		titles.PATCH("/:title_id", h.Titles.Update)
		titles.DELETE("/:title_id", h.Titles.Delete)
	}

	v1.GET("/titles/:title_id/reviews", h.Reviews.List)
	v1.GET("/titles/:title_id/reviews/:review_id", h.Reviews.Get)
	reviews := v1.Group("/titles/:title_id/reviews", mw.Auth)
	{
		reviews.POST("", h.Reviews.Create)
		reviews.PATCH("/:review_id", h.Reviews.Update)
		reviews.DELETE("/:review_id", h.Reviews.Delete)
	}

	v1.GET("/titles/:title_id/reviews/:review_id/comments", h.Comments.List)
	v1.GET("/titles/:title_id/reviews/:review_id/comments/:comment_id", h.Comments.Get)
	comments := v1.Group("/titles/:title_id/reviews/:review_id/comments", mw.Auth)
	{
		comments.POST("", h.Comments.Create)
		comments.PATCH("/:comment_id", h.Comments.Update)
		comments.DELETE("/:comment_id", h.Comments.Delete)
	}

	return r
}

func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}
