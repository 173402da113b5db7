package seed

import (
	"fmt"
	"log"

	"mingle/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder.
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seeder populates the database with demo data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll removes all seeded data. Order matters: children before parents.
func (s *Seeder) ClearAll() error {
	log.Println("clearing existing data...")
	tables := []interface{}{
		&models.CommentLike{},
		&models.PostLike{},
		&models.Comment{},
		&models.Post{},
		&models.FriendRequest{},
		&models.FriendEdge{},
		&models.User{},
	}
	for _, table := range tables {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(table).Error; err != nil {
			return fmt.Errorf("failed to clear table: %w", err)
		}
	}
	return nil
}

// SeedSocialMesh creates n users and links them into a believable social
// graph: clusters of mutual friends plus a scattering of pending requests.
func (s *Seeder) SeedSocialMesh(n int) ([]*models.User, error) {
	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return nil, fmt.Errorf("failed to create user %d: %w", i, err)
		}
		users = append(users, user)
	}
	log.Printf("created %d users", len(users))

	for i, user := range users {
		// each user befriends a handful of earlier users
		friends := s.factory.rng.Intn(4)
		for j := 0; j < friends && j < i; j++ {
			other := users[s.factory.rng.Intn(i)]
			if other.ID == user.ID {
				continue
			}
			if err := s.factory.Befriend(user, other); err != nil {
				return nil, fmt.Errorf("failed to befriend users: %w", err)
			}
		}
		// and leaves the occasional request pending
		if i > 0 && s.factory.rng.Intn(3) == 0 {
			recipient := users[s.factory.rng.Intn(i)]
			if recipient.ID != user.ID {
				if err := s.factory.SendRequest(user, recipient); err != nil {
					return nil, fmt.Errorf("failed to create friend request: %w", err)
				}
			}
		}
	}
	return users, nil
}

// SeedEngagement creates numPosts posts spread across users, then layers
// comments and likes on top so feed pages have realistic like sets.
func (s *Seeder) SeedEngagement(users []*models.User, numPosts int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to post as")
	}

	posts := make([]*models.Post, 0, numPosts)
	for i := 0; i < numPosts; i++ {
		owner := users[s.factory.rng.Intn(len(users))]
		posts = append(posts, s.factory.BuildPost(owner, 90))
	}
	if err := s.factory.CreatePostsBatch(posts); err != nil {
		return nil, fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("created %d posts", len(posts))

	var comments, likes int
	for _, post := range posts {
		for i := s.factory.rng.Intn(3); i > 0; i-- {
			commenter := users[s.factory.rng.Intn(len(users))]
			if _, err := s.factory.CreateComment(commenter, post); err != nil {
				return nil, fmt.Errorf("failed to create comment: %w", err)
			}
			comments++
		}
		for i := s.factory.rng.Intn(6); i > 0; i-- {
			liker := users[s.factory.rng.Intn(len(users))]
			if err := s.factory.LikePost(liker, post); err != nil {
				return nil, fmt.Errorf("failed to like post: %w", err)
			}
			likes++
		}
	}
	log.Printf("created %d comments and %d likes", comments, likes)
	return posts, nil
}
