package server

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"mingle/internal/models"
)

// GetUsers handles GET /api/users?page=N
// @Summary Get a page of the user directory
// @Description Returns one zero-based page of users ordered by username
// @Tags users
// @Produce json
// @Param page query int false "Zero-based page index"
// @Success 200 {object} models.UserPage
// @Failure 400 {object} models.ErrorResponse
// @Router /users [get]
func (s *Server) GetUsers(c *fiber.Ctx) error {
	page, err := parsePageIndex(c)
	if err != nil {
		return mapServiceError(c, err)
	}

	result, err := s.feedService.ListUsers(c.Context(), page)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(result)
}

// SearchUsers handles GET /api/users/search?q=term
// @Summary Search users by username
// @Description Case-insensitive substring match on usernames
// @Tags users
// @Produce json
// @Param q query string true "Search term"
// @Success 200 {object} object{users=[]models.UserSummary}
// @Failure 400 {object} models.ErrorResponse
// @Router /users/search [get]
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	results, err := s.userService.SearchUsers(c.Context(), c.Query("q"))
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"users": results})
}

// GetUserProfile handles GET /api/users/:id
// @Summary Get a user's profile
// @Description Returns the user with friends, pending requesters and posts resolved
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.Profile
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [get]
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return mapServiceError(c, err)
	}

	profile, err := s.feedService.GetUserProfile(c.Context(), userID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(profile)
}

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	profile, err := s.feedService.GetUserProfile(c.Context(), currentUserID(c))
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(profile)
}

// UploadAvatar handles POST /api/users/me/avatar
// @Summary Upload a new avatar
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Avatar image"
// @Success 200 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/me/avatar [post]
func (s *Server) UploadAvatar(c *fiber.Ctx) error {
	content, err := readUploadedFile(c)
	if err != nil {
		return mapServiceError(c, err)
	}

	url, err := s.imageService.Save(content)
	if err != nil {
		return mapServiceError(c, err)
	}

	user, err := s.userService.UpdateAvatar(c.Context(), currentUserID(c), url)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(user)
}

// readUploadedFile pulls the "file" part out of a multipart form.
func readUploadedFile(c *fiber.Ctx) ([]byte, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, models.NewValidationError("no file uploaded")
	}
	f, err := fileHeader.Open()
	if err != nil {
		return nil, models.NewValidationError("unreadable upload")
	}
	defer func() { _ = f.Close() }()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, models.NewValidationError("unreadable upload")
	}
	return content, nil
}
