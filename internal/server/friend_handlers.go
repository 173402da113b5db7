package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetFriends handles GET /api/friends
// @Summary Get the caller's friends and pending requests
// @Tags friends
// @Produce json
// @Success 200 {object} models.FriendList
// @Security BearerAuth
// @Router /friends [get]
func (s *Server) GetFriends(c *fiber.Ctx) error {
	list, err := s.friendService.GetFriends(c.Context(), currentUserID(c))
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(list)
}

// SendFriendRequest handles POST /api/friends/requests/:userId
// @Summary Send a friend request
// @Tags friends
// @Produce json
// @Param userId path int true "Target user ID"
// @Success 201 {object} object{message=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /friends/requests/{userId} [post]
func (s *Server) SendFriendRequest(c *fiber.Ctx) error {
	targetID, err := parseIDParam(c, "userId")
	if err != nil {
		return mapServiceError(c, err)
	}

	if err := s.friendService.SendFriendRequest(c.Context(), currentUserID(c), targetID); err != nil {
		return mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Friend request sent"})
}

// AcceptFriendRequest handles POST /api/friends/requests/:userId/accept
// @Summary Accept a pending friend request
// @Description Adds the requester to the caller's friend list
// @Tags friends
// @Produce json
// @Param userId path int true "Requester's user ID"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /friends/requests/{userId}/accept [post]
func (s *Server) AcceptFriendRequest(c *fiber.Ctx) error {
	requesterID, err := parseIDParam(c, "userId")
	if err != nil {
		return mapServiceError(c, err)
	}

	if err := s.friendService.AcceptFriendRequest(c.Context(), currentUserID(c), requesterID); err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Friend request accepted"})
}

// RejectFriendRequest handles POST /api/friends/requests/:userId/reject
func (s *Server) RejectFriendRequest(c *fiber.Ctx) error {
	requesterID, err := parseIDParam(c, "userId")
	if err != nil {
		return mapServiceError(c, err)
	}

	if err := s.friendService.RejectFriendRequest(c.Context(), currentUserID(c), requesterID); err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Friend request rejected"})
}

// RemoveFriend handles DELETE /api/friends/:userId
// @Summary Remove a friend
// @Description Removes the user from the caller's friend list only
// @Tags friends
// @Produce json
// @Param userId path int true "Friend's user ID"
// @Success 200 {object} object{message=string}
// @Security BearerAuth
// @Router /friends/{userId} [delete]
func (s *Server) RemoveFriend(c *fiber.Ctx) error {
	targetID, err := parseIDParam(c, "userId")
	if err != nil {
		return mapServiceError(c, err)
	}

	if err := s.friendService.RemoveFriend(c.Context(), currentUserID(c), targetID); err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Friend removed"})
}
