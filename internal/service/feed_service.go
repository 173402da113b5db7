package service

import (
	"context"

	"mingle/internal/cache"
	"mingle/internal/models"
	"mingle/internal/repository"
)

// Page sizes for the two paginated listings.
const (
	PostPageSize = 3
	UserPageSize = 5
)

// FeedService builds the composed read models: paginated feeds, post
// details with comment threads, and user profiles. Every stored entity is
// hydrated to a view before it leaves this layer.
type FeedService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
	likeRepo    repository.LikeRepository
	friendRepo  repository.FriendRepository
}

// NewFeedService returns a new FeedService.
func NewFeedService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
	likeRepo repository.LikeRepository,
	friendRepo repository.FriendRepository,
) *FeedService {
	return &FeedService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		likeRepo:    likeRepo,
		friendRepo:  friendRepo,
	}
}

// ListPosts returns one zero-based page of the global feed, newest first.
// Pages past the end are empty, not an error. The first page is served
// through the cache since it takes nearly all feed traffic.
func (s *FeedService) ListPosts(ctx context.Context, pageIndex int) (*models.PostPage, error) {
	if pageIndex < 0 {
		return nil, models.NewValidationError("page index must not be negative")
	}

	if pageIndex == 0 {
		var page models.PostPage
		err := cache.Aside(ctx, cache.FeedFirstPageKey(), &page, cache.FeedTTL, func() error {
			p, err := s.loadPostPage(ctx, 0)
			if err != nil {
				return err
			}
			page = *p
			return nil
		})
		if err != nil {
			return nil, err
		}
		return &page, nil
	}

	return s.loadPostPage(ctx, pageIndex)
}

func (s *FeedService) loadPostPage(ctx context.Context, pageIndex int) (*models.PostPage, error) {
	total, err := s.postRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.List(ctx, pageIndex*PostPageSize, PostPageSize)
	if err != nil {
		return nil, err
	}

	views, err := s.hydratePosts(ctx, posts)
	if err != nil {
		return nil, err
	}

	return &models.PostPage{
		Posts:      views,
		TotalPages: totalPages(total, PostPageSize),
	}, nil
}

// ListUsers returns one zero-based page of the user directory, ordered by
// username.
func (s *FeedService) ListUsers(ctx context.Context, pageIndex int) (*models.UserPage, error) {
	if pageIndex < 0 {
		return nil, models.NewValidationError("page index must not be negative")
	}

	total, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	users, err := s.userRepo.List(ctx, pageIndex*UserPageSize, UserPageSize)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.UserSummary, 0, len(users))
	for i := range users {
		summaries = append(summaries, users[i].Summary())
	}

	return &models.UserPage{
		Users:      summaries,
		TotalPages: totalPages(total, UserPageSize),
	}, nil
}

// GetPost returns a single post with its comment thread. Each fetch counts
// as a view; the counter is bumped in the store before the post is read so
// concurrent fetches all land.
func (s *FeedService) GetPost(ctx context.Context, postID uint) (*models.PostDetail, error) {
	if err := s.postRepo.IncrementViews(ctx, postID); err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	views, err := s.hydratePosts(ctx, []models.Post{*post})
	if err != nil {
		return nil, err
	}

	comments, err := s.ListComments(ctx, postID)
	if err != nil {
		return nil, err
	}

	return &models.PostDetail{
		PostView: views[0],
		Comments: comments,
	}, nil
}

// ListComments returns a post's comments, newest first, hydrated with their
// owners and like sets.
func (s *FeedService) ListComments(ctx context.Context, postID uint) ([]models.CommentView, error) {
	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	return s.hydrateComments(ctx, comments)
}

// GetUserProfile returns a user with friends, pending requesters and posts
// resolved.
func (s *FeedService) GetUserProfile(ctx context.Context, userID uint) (*models.Profile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	friendIDs, err := s.friendRepo.ListFriendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	requesterIDs, err := s.friendRepo.ListRequesterIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	friends, err := summariesInOrder(ctx, s.userRepo, friendIDs)
	if err != nil {
		return nil, err
	}
	requests, err := summariesInOrder(ctx, s.userRepo, requesterIDs)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.GetByOwnerID(ctx, userID)
	if err != nil {
		return nil, err
	}
	postViews, err := s.hydratePosts(ctx, posts)
	if err != nil {
		return nil, err
	}

	return &models.Profile{
		User:           user.Summary(),
		Friends:        friends,
		FriendRequests: requests,
		Posts:          postViews,
	}, nil
}

// hydratePosts resolves owners and like sets for a batch of posts in two
// queries instead of two per post.
func (s *FeedService) hydratePosts(ctx context.Context, posts []models.Post) ([]models.PostView, error) {
	if len(posts) == 0 {
		return []models.PostView{}, nil
	}

	postIDs := make([]uint, 0, len(posts))
	ownerIDs := make([]uint, 0, len(posts))
	for i := range posts {
		postIDs = append(postIDs, posts[i].ID)
		ownerIDs = append(ownerIDs, posts[i].OwnerID)
	}

	owners, err := s.ownersByID(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}
	likes, err := s.likeRepo.PostLikerIDsBatch(ctx, postIDs)
	if err != nil {
		return nil, err
	}

	views := make([]models.PostView, 0, len(posts))
	for i := range posts {
		p := &posts[i]
		likerIDs := likes[p.ID]
		if likerIDs == nil {
			likerIDs = []uint{}
		}
		views = append(views, models.PostView{
			ID:        p.ID,
			Title:     p.Title,
			Text:      p.Text,
			ImageURL:  p.ImageURL,
			Views:     p.Views,
			CreatedAt: p.CreatedAt,
			Owner:     owners[p.OwnerID],
			LikerIDs:  likerIDs,
		})
	}
	return views, nil
}

func (s *FeedService) hydrateComments(ctx context.Context, comments []models.Comment) ([]models.CommentView, error) {
	if len(comments) == 0 {
		return []models.CommentView{}, nil
	}

	commentIDs := make([]uint, 0, len(comments))
	ownerIDs := make([]uint, 0, len(comments))
	for i := range comments {
		commentIDs = append(commentIDs, comments[i].ID)
		ownerIDs = append(ownerIDs, comments[i].OwnerID)
	}

	owners, err := s.ownersByID(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}
	likes, err := s.likeRepo.CommentLikerIDsBatch(ctx, commentIDs)
	if err != nil {
		return nil, err
	}

	views := make([]models.CommentView, 0, len(comments))
	for i := range comments {
		c := &comments[i]
		likerIDs := likes[c.ID]
		if likerIDs == nil {
			likerIDs = []uint{}
		}
		views = append(views, models.CommentView{
			ID:        c.ID,
			PostID:    c.PostID,
			Text:      c.Text,
			CreatedAt: c.CreatedAt,
			Owner:     owners[c.OwnerID],
			LikerIDs:  likerIDs,
		})
	}
	return views, nil
}

func (s *FeedService) ownersByID(ctx context.Context, ids []uint) (map[uint]models.UserSummary, error) {
	users, err := s.userRepo.GetByIDs(ctx, dedupe(ids))
	if err != nil {
		return nil, err
	}
	out := make(map[uint]models.UserSummary, len(users))
	for i := range users {
		out[users[i].ID] = users[i].Summary()
	}
	return out, nil
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func totalPages(total int64, pageSize int) int {
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
