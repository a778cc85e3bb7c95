package controllers

import (
	"Litfeed/api/middlewares"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) initializeRoutes() {

	s.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.Router.Group("/api/v1")
	{
		// Auth routes
		v1.POST("/login", middlewares.LoginRateLimitMiddleware(), s.Login)
		v1.POST("/password/forgot", middlewares.LoginRateLimitMiddleware(), s.ForgotPassword)
		v1.POST("/password/reset", middlewares.LoginRateLimitMiddleware(), s.ResetPassword)

		// Users routes
		v1.POST("/users", s.CreateUser)
		v1.GET("/users", s.GetUsers)
		v1.GET("/users/:id", s.GetUser)
		v1.PUT("/users/:id", middlewares.TokenAuthMiddleware(s.DB), s.UpdateUser)
		v1.PUT("/users/:id/avatar", middlewares.TokenAuthMiddleware(s.DB), s.UpdateAvatar)
		v1.DELETE("/users/:id", middlewares.TokenAuthMiddleware(s.DB), s.DeleteUser)

		// Author routes
		v1.GET("/authors", s.GetAuthors)
		v1.GET("/authors/:id", s.GetAuthor)
		v1.POST("/authors", middlewares.TokenAuthMiddleware(s.DB), s.CreateAuthor)
		v1.PUT("/authors/:id", middlewares.TokenAuthMiddleware(s.DB), s.UpdateAuthor)
		v1.PATCH("/authors/:id", middlewares.TokenAuthMiddleware(s.DB), s.PatchAuthor)
		v1.DELETE("/authors/:id", middlewares.TokenAuthMiddleware(s.DB), s.DeleteAuthor)

		// Book routes
		v1.GET("/books", s.GetBooks)
		v1.GET("/books/:id", s.GetBook)
		v1.POST("/books", middlewares.TokenAuthMiddleware(s.DB), s.CreateBook)
		v1.PUT("/books/:id", middlewares.TokenAuthMiddleware(s.DB), s.UpdateBook)
		v1.PATCH("/books/:id", middlewares.TokenAuthMiddleware(s.DB), s.PatchBook)
		v1.DELETE("/books/:id", middlewares.TokenAuthMiddleware(s.DB), s.DeleteBook)

		// Post routes
		v1.GET("/posts", s.GetPosts)
		v1.GET("/posts/:id", s.GetPost)
		v1.GET("/users/:id/posts", s.GetUserPosts)
		v1.POST("/posts", middlewares.TokenAuthMiddleware(s.DB), s.CreatePost)
		v1.PUT("/posts/:id", middlewares.TokenAuthMiddleware(s.DB), s.UpdatePost)
		v1.PATCH("/posts/:id", middlewares.TokenAuthMiddleware(s.DB), s.PatchPost)
		v1.DELETE("/posts/:id", middlewares.TokenAuthMiddleware(s.DB), s.DeletePost)

		// Comments routes
		v1.GET("/posts/:id/comments", s.GetComments)
		v1.POST("/posts/:id/comments", middlewares.TokenAuthMiddleware(s.DB), s.CreateComment)
		v1.PUT("/comments/:id", middlewares.TokenAuthMiddleware(s.DB), s.UpdateComment)
		v1.DELETE("/comments/:id", middlewares.TokenAuthMiddleware(s.DB), s.DeleteComment)

		// Like routes
		v1.GET("/posts/:id/likes", s.GetLikes)
		v1.POST("/posts/:id/like", middlewares.TokenAuthMiddleware(s.DB), s.LikePost)
		v1.DELETE("/posts/:id/like", middlewares.TokenAuthMiddleware(s.DB), s.UnlikePost)

		// Follow / feed routes
		v1.POST("/users/:id/follow", middlewares.TokenAuthMiddleware(s.DB), s.FollowUser)
		v1.DELETE("/users/:id/follow", middlewares.TokenAuthMiddleware(s.DB), s.UnfollowUser)
		v1.GET("/users/:id/followers", s.GetFollowers)
		v1.GET("/users/:id/following", s.GetFollowing)
		v1.GET("/users/:id/relationship", middlewares.TokenAuthMiddleware(s.DB), s.GetRelationship)
		v1.GET("/feed", middlewares.TokenAuthMiddleware(s.DB), s.GetFeed)

		// Admin moderation routes
		admin := v1.Group("/admin", middlewares.TokenAuthMiddleware(s.DB), middlewares.AdminOnlyMiddleware())
		{
			admin.GET("/posts", s.AdminListPosts)
			admin.DELETE("/posts/:id", s.AdminDeletePost)
		}
	}
}
