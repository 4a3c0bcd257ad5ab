package handlers

import (
	"net/http"
	"strconv"

	"github.com/archinet-app/backend/internal/models"
	"github.com/archinet-app/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	UserRepo   repositories.UserRepository
	FollowRepo repositories.FollowRepository
}

func NewUserHandler(userRepo repositories.UserRepository, followRepo repositories.FollowRepository) *UserHandler {
	return &UserHandler{UserRepo: userRepo, FollowRepo: followRepo}
}

// GetUser returns a public profile with follower counts and, for the
// requesting user, whether they follow the subject.
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	user, err := h.UserRepo.GetUserByID(uint(id))
	if err != nil {
		return httpError(err)
	}

	followers, err := h.FollowRepo.GetFollowersCount(user.ID)
	if err != nil {
		return httpError(err)
	}
	following, err := h.FollowRepo.GetFollowingCount(user.ID)
	if err != nil {
		return httpError(err)
	}

	viewerID := getUserIDFromContext(c)
	isFollowing := false
	if viewerID != 0 && viewerID != user.ID {
		isFollowing, err = h.FollowRepo.IsFollowing(viewerID, user.ID)
		if err != nil {
			return httpError(err)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user":            user,
		"followers_count": followers,
		"following_count": following,
		"is_following":    isFollowing,
	})
}

// UpdateProfile updates the authenticated user's own profile fields.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID := getUserIDFromContext(c)
	user, err := h.UserRepo.GetUserByID(userID)
	if err != nil {
		return httpError(err)
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}
	if req.Location != "" {
		user.Location = req.Location
	}
	if req.AvatarURL != "" {
		user.AvatarURL = req.AvatarURL
	}
	if req.CompanyName != "" {
		user.CompanyName = req.CompanyName
	}
	if req.CompanySize != "" {
		user.CompanySize = req.CompanySize
	}
	if req.Website != "" {
		user.Website = req.Website
	}
	if req.University != "" {
		user.University = req.University
	}
	if req.GraduationYear != 0 {
		user.GraduationYear = req.GraduationYear
	}
	if req.YearsExperience != 0 {
		user.YearsExperience = req.YearsExperience
	}
	if req.Specialty != "" {
		user.Specialty = req.Specialty
	}

	if err := h.UserRepo.UpdateUser(user); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// SearchUsers matches name, username, or email against a query string.
func (h *UserHandler) SearchUsers(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing search query")
	}
	users, err := h.UserRepo.SearchUsers(query)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, compactUsers(users))
}

func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/users/search", h.SearchUsers)
	g.GET("/users/:id", h.GetUser)
	g.PUT("/users/me", h.UpdateProfile)
}
