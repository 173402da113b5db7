// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"mingle/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db: db,
		//nolint:gosec // weak randomness is fine for demo data
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample user. All seeded accounts
// share the password "password123". Optional override functions may modify
// the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:  seedUsername(f.rng),
		Email:     gofakeit.Email(),
		Password:  string(hashed),
		AvatarURL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}
	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildPost constructs a post for user without persisting it, with a
// created_at spread over the past maxDays so the feed looks lived-in.
func (f *Factory) BuildPost(user *models.User, maxDays int, overrides ...func(*models.Post)) *models.Post {
	if maxDays <= 0 {
		maxDays = 90
	}
	post := &models.Post{
		Title:   seedTitle(),
		Text:    gofakeit.Paragraph(1, 3, 8, " "),
		OwnerID: user.ID,
		CreatedAt: time.Now().
			Add(-time.Duration(f.rng.Intn(maxDays)) * 24 * time.Hour).
			Add(-time.Duration(f.rng.Intn(24*60)) * time.Minute),
	}
	if f.rng.Intn(2) == 0 {
		post.ImageURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID())
	}
	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePostsBatch persists multiple posts in a single DB call.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	return f.db.Create(&posts).Error
}

// CreateComment persists a comment by user on post.
func (f *Factory) CreateComment(user *models.User, post *models.Post) (*models.Comment, error) {
	comment := &models.Comment{
		PostID:  post.ID,
		OwnerID: user.ID,
		Text:    seedCommentText(),
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// LikePost adds user to post's like set, ignoring duplicates.
func (f *Factory) LikePost(user *models.User, post *models.Post) error {
	like := &models.PostLike{PostID: post.ID, UserID: user.ID}
	return f.db.Clauses(clause.OnConflict{DoNothing: true}).Create(like).Error
}

// Befriend makes a and b mutual friends, the state two accepted requests
// would produce.
func (f *Factory) Befriend(a, b *models.User) error {
	edges := []models.FriendEdge{
		{OwnerID: a.ID, FriendID: b.ID},
		{OwnerID: b.ID, FriendID: a.ID},
	}
	return f.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&edges).Error
}

// SendRequest leaves a pending request from requester in recipient's queue.
func (f *Factory) SendRequest(requester, recipient *models.User) error {
	req := &models.FriendRequest{
		RecipientID: recipient.ID,
		RequesterID: requester.ID,
	}
	return f.db.Create(req).Error
}

// seedUsername produces a username that satisfies the signup rules:
// letters, digits and underscores only, 3 to 20 characters.
func seedUsername(rng *rand.Rand) string {
	name := strings.ToLower(gofakeit.FirstName()) + "_" + strings.ToLower(gofakeit.LastName())
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return -1
		}
	}, name)
	if len(name) > 16 {
		name = name[:16]
	}
	return fmt.Sprintf("%s%d", name, rng.Intn(900)+100)
}

// seedTitle produces a title inside the post title bounds.
func seedTitle() string {
	title := gofakeit.HipsterWord() + " " + gofakeit.NounAbstract()
	runes := []rune(title)
	if len(runes) > models.PostTitleMaxLen {
		runes = runes[:models.PostTitleMaxLen]
	}
	title = strings.TrimSpace(string(runes))
	if len([]rune(title)) < models.PostTitleMinLen {
		title = "untitled"
	}
	return title
}

// seedCommentText produces a comment inside the comment bounds.
func seedCommentText() string {
	text := gofakeit.Sentence(8)
	runes := []rune(text)
	if len(runes) > models.CommentTextMaxLen {
		runes = runes[:models.CommentTextMaxLen]
	}
	text = string(runes)
	if len([]rune(text)) < models.CommentTextMinLen {
		text = "Love this one, thanks for sharing!"
	}
	return text
}
