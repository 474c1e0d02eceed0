package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the operation endpoint and its REST aliases under /api.
func RegisterRoutes(r gin.IRouter, h *OperationHandler) {
	api := r.Group("/api")
	{
		api.POST("/operations", h.Execute)

		auth := api.Group("/auth")
		{
			auth.POST("/signup", h.Operation("addUser", http.StatusCreated))
			auth.POST("/login", h.Operation("login", http.StatusOK))
			auth.POST("/logout", Logout)
		}

		me := api.Group("/me")
		{
			me.GET("", h.Operation("me", http.StatusOK))
			me.POST("/wishlist", h.InputOperation("addToWishlist", http.StatusOK))
			me.POST("/currently-playing", h.InputOperation("addToCurrentlyPlaying", http.StatusOK))
		}

		posts := api.Group("/posts")
		{
			posts.GET("", h.Operation("getAllPosts", http.StatusOK))
			posts.POST("", h.Operation("createPost", http.StatusCreated))
			posts.GET("/:postId", h.Operation("getPost", http.StatusOK, "postId"))
			posts.PATCH("/:postId", h.Operation("updatePost", http.StatusOK, "postId"))
			posts.DELETE("/:postId", h.Operation("deletePost", http.StatusOK, "postId"))
			posts.GET("/:postId/comments", h.Operation("comments", http.StatusOK, "postId"))
			posts.POST("/:postId/comments", h.Operation("addComment", http.StatusCreated, "postId"))
		}

		comments := api.Group("/comments")
		{
			comments.PATCH("/:id", h.Operation("updateComment", http.StatusOK, "id"))
			comments.DELETE("/:id", h.Operation("deleteComment", http.StatusOK, "id"))
		}

		api.GET("/games", h.Operation("games", http.StatusOK))
	}
}
