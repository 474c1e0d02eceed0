package dto

import (
	"time"

	"github.com/playhub/community-api/internal/constants"
	"github.com/playhub/community-api/internal/models"
)

// PostDTO represents a post in API responses. Timestamps are rendered
// for display; the stored values stay time.Time.
type PostDTO struct {
	ID        uint64   `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	AuthorID  uint64   `json:"authorId"`
	Author    *UserDTO `json:"author"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
}

// CommentDTO represents a comment in API responses
type CommentDTO struct {
	ID        uint64   `json:"id"`
	Text      string   `json:"text"`
	PostID    uint64   `json:"postId"`
	AuthorID  uint64   `json:"authorId"`
	Author    *UserDTO `json:"author"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
}

// DeletedCommentDTO echoes the ID passed to deleteComment
type DeletedCommentDTO struct {
	ID uint64 `json:"id"`
}

// FormatTimestamp renders t in the display layout
func FormatTimestamp(t time.Time) string {
	return t.Format(constants.HumanTimestampLayout)
}

// ToPostDTO converts a post and its resolved author (nil when dangling) to DTO
func ToPostDTO(post models.Post, author *models.User) PostDTO {
	return PostDTO{
		ID:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		AuthorID:  post.AuthorID,
		Author:    ToUserRef(author),
		CreatedAt: FormatTimestamp(post.CreatedAt),
		UpdatedAt: FormatTimestamp(post.UpdatedAt),
	}
}

// ToCommentDTO converts a comment to DTO
func ToCommentDTO(comment models.Comment) CommentDTO {
	return CommentDTO{
		ID:        comment.ID,
		Text:      comment.Content,
		PostID:    comment.PostID,
		AuthorID:  comment.AuthorID,
		Author:    ToUserRef(comment.Author),
		CreatedAt: FormatTimestamp(comment.CreatedAt),
		UpdatedAt: FormatTimestamp(comment.UpdatedAt),
	}
}

// ToCommentDTOs converts a slice of comments
func ToCommentDTOs(comments []models.Comment) []CommentDTO {
	out := make([]CommentDTO, len(comments))
	for i, comment := range comments {
		out[i] = ToCommentDTO(comment)
	}
	return out
}
