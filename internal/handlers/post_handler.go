package handlers

import (
	"net/http"
	"strconv"

	"github.com/archinet-app/backend/internal/models"
	"github.com/archinet-app/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

type PostHandler struct {
	PostRepo repositories.PostRepository
	UserRepo repositories.UserRepository
}

func NewPostHandler(postRepo repositories.PostRepository, userRepo repositories.UserRepository) *PostHandler {
	return &PostHandler{PostRepo: postRepo, UserRepo: userRepo}
}

func (h *PostHandler) CreatePost(c echo.Context) error {
	userID := getUserIDFromContext(c)

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post := models.Post{
		UserID:   userID,
		Content:  req.Content,
		ImageURL: req.ImageURL,
	}
	if err := h.PostRepo.CreatePost(&post); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, post)
}

func (h *PostHandler) GetPost(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid post id")
	}
	post, err := h.PostRepo.GetPostByID(uint(id))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, post)
}

func (h *PostHandler) ListPosts(c echo.Context) error {
	page, limit := paginationParams(c)
	posts, total, err := h.PostRepo.ListPosts(page, limit)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"posts": posts,
		"meta":  paginationMeta(page, limit, total),
	})
}

// DeletePost removes a post. Only the author may delete it.
func (h *PostHandler) DeletePost(c echo.Context) error {
	userID := getUserIDFromContext(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid post id")
	}
	post, err := h.PostRepo.GetPostByID(uint(id))
	if err != nil {
		return httpError(err)
	}
	if post.UserID != userID {
		return echo.NewHTTPError(http.StatusForbidden, "you can only delete your own posts")
	}
	if err := h.PostRepo.DeletePost(post.ID); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": true})
}

func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts", h.ListPosts)
	g.GET("/posts/:id", h.GetPost)
	g.DELETE("/posts/:id", h.DeletePost)
}
