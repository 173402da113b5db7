package seed

import (
	"fmt"
	"os"

	"mingle/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

// Fixture is a deterministic dataset loaded from a YAML file. Unlike the
// random mesh seeder, fixtures give demos and manual testing a known cast
// of users in a known relationship state.
type Fixture struct {
	Users []FixtureUser `yaml:"users"`
	Posts []FixturePost `yaml:"posts"`
}

// FixtureUser describes one account plus its outgoing relationships.
// Friends lists usernames this user has in their friend set (one-way);
// Requests lists usernames this user has sent a pending request to.
type FixtureUser struct {
	Username string   `yaml:"username"`
	Email    string   `yaml:"email"`
	Password string   `yaml:"password"`
	Friends  []string `yaml:"friends"`
	Requests []string `yaml:"requests"`
}

// FixturePost describes one post owned by Owner (a username).
type FixturePost struct {
	Owner string `yaml:"owner"`
	Title string `yaml:"title"`
	Text  string `yaml:"text"`
}

// LoadFixture parses a fixture from a YAML file.
func LoadFixture(path string) (*Fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	return ParseFixture(raw)
}

// ParseFixture parses a fixture from YAML bytes.
func ParseFixture(raw []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}
	if len(f.Users) == 0 {
		return nil, fmt.Errorf("fixture defines no users")
	}
	return &f, nil
}

// Apply writes the fixture into the database. Users are created first so
// relationship entries can reference any username in the file, in any order.
func (s *Seeder) Apply(f *Fixture) error {
	byName := make(map[string]*models.User, len(f.Users))

	for _, fu := range f.Users {
		password := fu.Password
		if password == "" {
			password = "password123"
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		if err != nil {
			return err
		}
		user := &models.User{
			Username:  fu.Username,
			Email:     fu.Email,
			Password:  string(hashed),
			AvatarURL: models.DefaultAvatarURL,
		}
		if user.Email == "" {
			user.Email = fu.Username + "@example.com"
		}
		if err := s.db.Create(user).Error; err != nil {
			return fmt.Errorf("failed to create fixture user %q: %w", fu.Username, err)
		}
		byName[fu.Username] = user
	}

	for _, fu := range f.Users {
		owner := byName[fu.Username]
		for _, name := range fu.Friends {
			friend, ok := byName[name]
			if !ok {
				return fmt.Errorf("fixture user %q lists unknown friend %q", fu.Username, name)
			}
			edge := &models.FriendEdge{OwnerID: owner.ID, FriendID: friend.ID}
			if err := s.db.Create(edge).Error; err != nil {
				return fmt.Errorf("failed to create friend edge: %w", err)
			}
		}
		for _, name := range fu.Requests {
			recipient, ok := byName[name]
			if !ok {
				return fmt.Errorf("fixture user %q lists unknown recipient %q", fu.Username, name)
			}
			if err := s.factory.SendRequest(owner, recipient); err != nil {
				return fmt.Errorf("failed to create friend request: %w", err)
			}
		}
	}

	for _, fp := range f.Posts {
		owner, ok := byName[fp.Owner]
		if !ok {
			return fmt.Errorf("fixture post lists unknown owner %q", fp.Owner)
		}
		post := &models.Post{
			Title:   fp.Title,
			Text:    fp.Text,
			OwnerID: owner.ID,
		}
		if err := s.db.Create(post).Error; err != nil {
			return fmt.Errorf("failed to create fixture post: %w", err)
		}
	}
	return nil
}
