package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/snapzoska/backend/internal/models"
)

// PostAuthor is the subset of the owning user shipped with each post.
type PostAuthor struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// PostWithMeta is a post annotated with its live like count and the
// requesting viewer's like/save status.
type PostWithMeta struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	ImageURL      string     `json:"image_url"`
	Caption       *string    `json:"caption"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	User          PostAuthor `json:"user"`
	LikeCount     int64      `json:"like_count"`
	IsLikedByUser bool       `json:"is_liked_by_user"`
	IsSavedByUser bool       `json:"is_saved_by_user"`
}

// PostService reads and creates posts.
type PostService struct {
	db          *gorm.DB
	revalidator Revalidator
}

var _ IPostService = (*PostService)(nil)

func NewPostService(db *gorm.DB, revalidator Revalidator) *PostService {
	return &PostService{
		db:          db,
		revalidator: revalidator,
	}
}

// ListPosts returns all posts, or only ownerID's posts when the filter is
// set, newest first. Each post carries the live like count and, when a
// viewer is known, the viewer's like/save flags. Any store failure surfaces
// as an error; there are no partial results.
func (s *PostService) ListPosts(ctx context.Context, viewerID, ownerID *uuid.UUID) ([]*PostWithMeta, error) {
	var posts []models.Post
	query := s.db.WithContext(ctx).Order("created_at DESC")
	if ownerID != nil {
		query = query.Where("user_id = ?", *ownerID)
	}
	if err := query.Find(&posts).Error; err != nil {
		return nil, err
	}

	return s.annotate(ctx, posts, viewerID)
}

// GetPost returns a single annotated post.
func (s *PostService) GetPost(ctx context.Context, postID uuid.UUID, viewerID *uuid.UUID) (*PostWithMeta, error) {
	var post models.Post
	if err := s.db.WithContext(ctx).First(&post, "id = ?", postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	annotated, err := s.annotate(ctx, []models.Post{post}, viewerID)
	if err != nil {
		return nil, err
	}
	return annotated[0], nil
}

// CreatePost creates a post for its owner and flags the home feed for
// re-render.
func (s *PostService) CreatePost(ctx context.Context, userID uuid.UUID, imageURL string, caption *string) (*models.Post, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	post := models.Post{
		ID:       uuid.New(),
		UserID:   userID,
		ImageURL: imageURL,
		Caption:  caption,
	}
	if err := s.db.WithContext(ctx).Create(&post).Error; err != nil {
		return nil, err
	}

	if s.revalidator != nil {
		s.revalidator.Revalidate(ctx, "/")
	}
	return &post, nil
}

// ListLikedPosts returns the posts a user has liked, newest like first.
func (s *PostService) ListLikedPosts(ctx context.Context, userID uuid.UUID) ([]*PostWithMeta, error) {
	return s.listByRelation(ctx, userID, "likes")
}

// ListSavedPosts returns the posts a user has saved, newest save first.
func (s *PostService) ListSavedPosts(ctx context.Context, userID uuid.UUID) ([]*PostWithMeta, error) {
	return s.listByRelation(ctx, userID, "saved_posts")
}

func (s *PostService) listByRelation(ctx context.Context, userID uuid.UUID, table string) ([]*PostWithMeta, error) {
	var posts []models.Post
	if err := s.db.WithContext(ctx).
		Joins("JOIN "+table+" rel ON rel.post_id = posts.id").
		Where("rel.user_id = ?", userID).
		Order("rel.created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return s.annotate(ctx, posts, &userID)
}

// annotate attaches author info, like counts, and viewer flags. Counts come
// from a live count query, never a cached column.
func (s *PostService) annotate(ctx context.Context, posts []models.Post, viewerID *uuid.UUID) ([]*PostWithMeta, error) {
	result := make([]*PostWithMeta, 0, len(posts))
	if len(posts) == 0 {
		return result, nil
	}

	postIDs := make([]uuid.UUID, len(posts))
	userIDs := make([]uuid.UUID, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
		userIDs[i] = p.UserID
	}

	var authors []models.User
	if err := s.db.WithContext(ctx).Where("id IN ?", userIDs).Find(&authors).Error; err != nil {
		return nil, err
	}
	authorByID := make(map[uuid.UUID]models.User, len(authors))
	for _, u := range authors {
		authorByID[u.ID] = u
	}

	type likeCount struct {
		PostID uuid.UUID
		Count  int64
	}
	var counts []likeCount
	if err := s.db.WithContext(ctx).Model(&models.Like{}).
		Select("post_id, COUNT(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	countByPost := make(map[uuid.UUID]int64, len(counts))
	for _, c := range counts {
		countByPost[c.PostID] = c.Count
	}

	likedByViewer := make(map[uuid.UUID]bool)
	savedByViewer := make(map[uuid.UUID]bool)
	if viewerID != nil {
		var likes []models.Like
		if err := s.db.WithContext(ctx).
			Where("user_id = ? AND post_id IN ?", *viewerID, postIDs).
			Find(&likes).Error; err != nil {
			return nil, err
		}
		for _, l := range likes {
			likedByViewer[l.PostID] = true
		}

		var saves []models.SavedPost
		if err := s.db.WithContext(ctx).
			Where("user_id = ? AND post_id IN ?", *viewerID, postIDs).
			Find(&saves).Error; err != nil {
			return nil, err
		}
		for _, sp := range saves {
			savedByViewer[sp.PostID] = true
		}
	}

	for _, p := range posts {
		author := authorByID[p.UserID]
		result = append(result, &PostWithMeta{
			ID:            p.ID,
			UserID:        p.UserID,
			ImageURL:      p.ImageURL,
			Caption:       p.Caption,
			CreatedAt:     p.CreatedAt,
			UpdatedAt:     p.UpdatedAt,
			User:          PostAuthor{Name: author.Name, Image: author.Image},
			LikeCount:     countByPost[p.ID],
			IsLikedByUser: likedByViewer[p.ID],
			IsSavedByUser: savedByViewer[p.ID],
		})
	}
	return result, nil
}
