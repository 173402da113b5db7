package server

import (
	"github.com/gofiber/fiber/v2"
)

// UploadImage handles POST /api/images
// @Summary Upload an image
// @Description Stores a normalized webp copy and returns its URL for use in posts
// @Tags images
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file"
// @Success 201 {object} object{url=string}
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /images [post]
func (s *Server) UploadImage(c *fiber.Ctx) error {
	content, err := readUploadedFile(c)
	if err != nil {
		return mapServiceError(c, err)
	}

	url, err := s.imageService.Save(content)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": url})
}
