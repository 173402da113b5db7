package server

import (
	"github.com/gofiber/fiber/v2"

	"mingle/internal/models"
	"mingle/internal/service"
)

// GetPosts handles GET /api/posts?page=N
// @Summary Get a page of the feed
// @Description Returns one zero-based page of posts, newest first
// @Tags posts
// @Produce json
// @Param page query int false "Zero-based page index"
// @Success 200 {object} models.PostPage
// @Failure 400 {object} models.ErrorResponse
// @Router /posts [get]
func (s *Server) GetPosts(c *fiber.Ctx) error {
	page, err := parsePageIndex(c)
	if err != nil {
		return mapServiceError(c, err)
	}

	result, err := s.feedService.ListPosts(c.Context(), page)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(result)
}

// GetPost handles GET /api/posts/:id
// @Summary Get a single post with its comments
// @Description Returns a post detail; each fetch increments the view counter
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} models.PostDetail
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return mapServiceError(c, err)
	}

	detail, err := s.feedService.GetPost(c.Context(), postID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(detail)
}

// GetComments handles GET /api/posts/:id/comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return mapServiceError(c, err)
	}

	comments, err := s.feedService.ListComments(c.Context(), postID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"comments": comments})
}

// CreatePost handles POST /api/posts
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Param request body object{title=string,text=string,image_url=string} true "New post"
// @Success 201 {object} models.PostView
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Title    string `json:"title"`
		Text     string `json:"text"`
		ImageURL string `json:"image_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	view, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		OwnerID:  currentUserID(c),
		Title:    req.Title,
		Text:     req.Text,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// LikePost handles POST /api/posts/:id/like
// @Summary Toggle a like on a post
// @Description Adds the caller to the post's like set, or removes them if present
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} object{result=string}
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /posts/{id}/like [post]
func (s *Server) LikePost(c *fiber.Ctx) error {
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return mapServiceError(c, err)
	}

	result, err := s.likeService.TogglePostLike(c.Context(), postID, currentUserID(c))
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"result": result})
}

// CreateComment handles POST /api/posts/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return mapServiceError(c, err)
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	view, err := s.postService.CreateComment(c.Context(), postID, currentUserID(c), req.Text)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// DeleteComment handles DELETE /api/comments/:id
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	commentID, err := parseIDParam(c, "id")
	if err != nil {
		return mapServiceError(c, err)
	}

	if err := s.postService.DeleteComment(c.Context(), commentID, currentUserID(c)); err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Comment deleted"})
}

// LikeComment handles POST /api/comments/:id/like
func (s *Server) LikeComment(c *fiber.Ctx) error {
	commentID, err := parseIDParam(c, "id")
	if err != nil {
		return mapServiceError(c, err)
	}

	result, err := s.likeService.ToggleCommentLike(c.Context(), commentID, currentUserID(c))
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"result": result})
}
