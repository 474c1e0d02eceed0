package services

import (
	"context"
	"errors"
	"strings"

	"github.com/playhub/community-api/internal/auth"
	apierrors "github.com/playhub/community-api/internal/errors"
	"github.com/playhub/community-api/internal/models"
	"github.com/playhub/community-api/internal/repository"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ContentService handles post and comment business logic.
//
// Guard coverage is intentionally uneven: post reads, creation and updates
// require a caller, while DeletePost and every comment operation do not.
type ContentService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
	log         logrus.FieldLogger
}

// NewContentService creates a new ContentService
func NewContentService(postRepo repository.PostRepository, commentRepo repository.CommentRepository, userRepo repository.UserRepository, log logrus.FieldLogger) *ContentService {
	return &ContentService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		log:         log,
	}
}

// CreatePostInput represents input for creating a post
type CreatePostInput struct {
	Title    string
	Content  string
	AuthorID uint64
}

// CreatePost persists a new post. A zero AuthorID defaults to the caller.
func (s *ContentService) CreatePost(ctx context.Context, input CreatePostInput, caller *auth.Caller) (*models.Post, error) {
	caller, err := auth.RequireCaller(caller, "You must be logged in to create a post!")
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Title) == "" {
		return nil, apierrors.Validation("title is required", nil)
	}

	authorID := input.AuthorID
	if authorID == 0 {
		authorID = caller.UserID
	}

	post := &models.Post{
		Title:    input.Title,
		Content:  input.Content,
		AuthorID: authorID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, apierrors.OperationFailed("Failed to create post", err)
	}

	return post, nil
}

// GetPost returns a single post
func (s *ContentService) GetPost(ctx context.Context, id uint64, caller *auth.Caller) (*models.Post, error) {
	if _, err := auth.RequireCaller(caller, "You must be logged in to view this post!"); err != nil {
		return nil, err
	}

	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Post not found", "Failed to fetch post")
	}
	return post, nil
}

// ListPosts returns every post, newest first
func (s *ContentService) ListPosts(ctx context.Context, caller *auth.Caller) ([]models.Post, error) {
	if _, err := auth.RequireCaller(caller, "You must be logged in to view posts!"); err != nil {
		return nil, err
	}

	posts, err := s.postRepo.List(ctx)
	if err != nil {
		return nil, apierrors.OperationFailed("Failed to fetch posts", err)
	}
	return posts, nil
}

// UpdatePost replaces the content of a post and returns its new state
func (s *ContentService) UpdatePost(ctx context.Context, id uint64, content string, caller *auth.Caller) (*models.Post, error) {
	if _, err := auth.RequireCaller(caller, "You must be logged in to update a post!"); err != nil {
		return nil, err
	}

	if err := s.postRepo.UpdateContent(ctx, id, content); err != nil {
		return nil, storeError(err, "Post not found", "Failed to update post")
	}

	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Post not found", "Failed to update post")
	}
	return post, nil
}

// DeletePost removes a post and returns it. No caller check is applied.
func (s *ContentService) DeletePost(ctx context.Context, id uint64) (*models.Post, error) {
	post, err := s.postRepo.Delete(ctx, id)
	if err != nil {
		return nil, storeError(err, "Post not found", "Failed to delete post")
	}
	return post, nil
}

// ResolveAuthor loads the author of a post. A dangling reference, or a
// store failure, resolves to nil rather than an error.
func (s *ContentService) ResolveAuthor(ctx context.Context, post *models.Post) *models.User {
	if post == nil || post.AuthorID == 0 {
		return nil
	}

	user, err := s.userRepo.FindByID(ctx, post.AuthorID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.WithError(err).WithField("post_id", post.ID).Warn("failed to resolve post author")
		}
		return nil
	}
	return user
}

// AddCommentInput represents input for adding a comment
type AddCommentInput struct {
	PostID   uint64
	Text     string
	AuthorID uint64
}

// AddComment stores a comment without checking that the post or author exist
func (s *ContentService) AddComment(ctx context.Context, input AddCommentInput) (*models.Comment, error) {
	comment := &models.Comment{
		Content:  input.Text,
		AuthorID: input.AuthorID,
		PostID:   input.PostID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, apierrors.OperationFailed("Failed to add comment", err)
	}
	return comment, nil
}

// ListComments returns the comments of a post with authors resolved
func (s *ContentService) ListComments(ctx context.Context, postID uint64) ([]models.Comment, error) {
	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, apierrors.OperationFailed("Failed to fetch comments", err)
	}
	return comments, nil
}

// UpdateComment replaces the content of a comment and returns its new state
func (s *ContentService) UpdateComment(ctx context.Context, id uint64, text string) (*models.Comment, error) {
	if err := s.commentRepo.UpdateContent(ctx, id, text); err != nil {
		return nil, storeError(err, "Comment not found", "Failed to update comment")
	}

	comment, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Comment not found", "Failed to update comment")
	}
	return comment, nil
}

// DeleteComment removes a comment and echoes its ID, whether or not it existed
func (s *ContentService) DeleteComment(ctx context.Context, id uint64) (uint64, error) {
	if err := s.commentRepo.Delete(ctx, id); err != nil {
		return 0, apierrors.OperationFailed("Failed to delete comment", err)
	}
	return id, nil
}
