package handlers

import (
	"net/http"
	"strconv"

	"github.com/archinet-app/backend/internal/models"
	"github.com/archinet-app/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

type FeedHandler struct {
	PostRepo         repositories.PostRepository
	UserRepo         repositories.UserRepository
	FollowRepo       repositories.FollowRepository
	RelationshipRepo repositories.RelationshipRepository
	LikeRepo         repositories.LikeRepository
	SavedRepo        repositories.SavedItemRepository
}

func NewFeedHandler(postRepo repositories.PostRepository, userRepo repositories.UserRepository, followRepo repositories.FollowRepository, relRepo repositories.RelationshipRepository, likeRepo repositories.LikeRepository, savedRepo repositories.SavedItemRepository) *FeedHandler {
	return &FeedHandler{
		PostRepo:         postRepo,
		UserRepo:         userRepo,
		FollowRepo:       followRepo,
		RelationshipRepo: relRepo,
		LikeRepo:         likeRepo,
		SavedRepo:        savedRepo,
	}
}

// FeedPost is a post enriched with its author and the viewer's interaction
// state.
type FeedPost struct {
	models.Post
	Author    models.UserCompact `json:"author"`
	LikeCount int64              `json:"like_count"`
	IsLiked   bool               `json:"is_liked"`
	IsSaved   bool               `json:"is_saved"`
}

// GetFeed returns posts from the user and everyone they follow, excluding
// authors the user has muted or is in a block relationship with.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	userID := getUserIDFromContext(c)
	page, limit := paginationParams(c)

	followingIDs, err := h.FollowRepo.GetFollowingIDs(userID)
	if err != nil {
		return httpError(err)
	}
	mutedIDs, err := h.RelationshipRepo.GetMutedIDs(userID)
	if err != nil {
		return httpError(err)
	}
	blockedIDs, err := h.RelationshipRepo.GetBlockedPeerIDs(userID)
	if err != nil {
		return httpError(err)
	}

	excluded := make(map[uint]bool, len(mutedIDs)+len(blockedIDs))
	for _, id := range mutedIDs {
		excluded[id] = true
	}
	for _, id := range blockedIDs {
		excluded[id] = true
	}

	authorIDs := make([]uint, 0, len(followingIDs)+1)
	authorIDs = append(authorIDs, userID)
	for _, id := range followingIDs {
		if !excluded[id] {
			authorIDs = append(authorIDs, id)
		}
	}

	posts, total, err := h.PostRepo.ListByAuthors(authorIDs, page, limit)
	if err != nil {
		return httpError(err)
	}

	postIDs := make([]string, 0, len(posts))
	for i := range posts {
		postIDs = append(postIDs, strconv.FormatUint(uint64(posts[i].ID), 10))
	}
	savedIDs, err := h.SavedRepo.GetSavedIDs(userID, models.KindPost, postIDs)
	if err != nil {
		return httpError(err)
	}

	authors := make(map[uint]models.UserCompact)
	feed := make([]FeedPost, 0, len(posts))
	for i := range posts {
		post := posts[i]
		author, ok := authors[post.UserID]
		if !ok {
			u, err := h.UserRepo.GetUserByID(post.UserID)
			if err != nil {
				continue
			}
			author = u.ToCompact()
			authors[post.UserID] = author
		}

		ref := models.ContentRef{Kind: models.KindPost, ID: strconv.FormatUint(uint64(post.ID), 10)}
		count, err := h.LikeRepo.Count(ref)
		if err != nil {
			return httpError(err)
		}
		liked, err := h.LikeRepo.HasLiked(userID, ref)
		if err != nil {
			return httpError(err)
		}

		feed = append(feed, FeedPost{
			Post:      post,
			Author:    author,
			LikeCount: count,
			IsLiked:   liked,
			IsSaved:   savedIDs[ref.ID],
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"posts": feed,
		"meta":  paginationMeta(page, limit, total),
	})
}

func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}
