package routes

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"blogapi/blogs"
)

func AddBlogRoutes(router *httprouter.Router, h *blogs.Handler) {
	router.GET("/api/blogs", h.ListBlogs)
	router.GET("/api/blogs/:id", h.GetBlog)
	router.POST("/api/blogs", h.CreateBlog)
	router.PUT("/api/blogs/:id", h.UpdateBlog)
	router.DELETE("/api/blogs/:id", h.DeleteBlog)
}

// AddStaticRoutes serves locally stored uploads.
func AddStaticRoutes(router *httprouter.Router, uploadDir string) {
	router.ServeFiles("/uploads/*filepath", http.Dir(uploadDir))
}
