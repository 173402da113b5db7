package server

import (
	"testing"

	"mingle/internal/config"
	"mingle/internal/database"
	"mingle/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		JWTSecret:       "test-secret",
		Port:            "0",
		Env:             "test",
		UploadDir:       t.TempDir(),
		MaxUploadSizeMB: 1,
	}
}

// newTestServer builds a Server over in-memory sqlite, no Redis.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.Models()...))

	s, err := NewServerWithDeps(testConfig(t), db, nil)
	require.NoError(t, err)
	return s
}

// asUser injects an authenticated user the way the auth middleware would.
func asUser(userID uint) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	}
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	u := &models.User{
		Username:  username,
		Email:     username + "@example.com",
		Password:  string(hash),
		AvatarURL: models.DefaultAvatarURL,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}
