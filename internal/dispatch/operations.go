package dispatch

import (
	"context"

	"github.com/playhub/community-api/internal/auth"
	"github.com/playhub/community-api/internal/dto"
	"github.com/playhub/community-api/internal/models"
	"github.com/playhub/community-api/internal/services"
)

// NoArgs is the argument type of operations that take none
type NoArgs struct{}

// PostIDArgs selects a post
type PostIDArgs struct {
	PostID uint64 `json:"postId" validate:"required"`
}

// CommentIDArgs selects a comment
type CommentIDArgs struct {
	ID uint64 `json:"id" validate:"required"`
}

type AddUserArgs struct {
	Username string `json:"username" validate:"required,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=5"`
}

type LoginArgs struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CreatePostArgs carries an optional authorId; the caller is used when it is omitted
type CreatePostArgs struct {
	Title    string `json:"title" validate:"required,max=255"`
	Content  string `json:"content"`
	AuthorID uint64 `json:"authorId"`
}

type UpdatePostArgs struct {
	PostID  uint64 `json:"postId" validate:"required"`
	Content string `json:"content"`
}

type AddCommentArgs struct {
	PostID   uint64 `json:"postId" validate:"required"`
	Text     string `json:"text" validate:"required"`
	AuthorID uint64 `json:"authorId"`
}

type UpdateCommentArgs struct {
	ID   uint64 `json:"id" validate:"required"`
	Text string `json:"text" validate:"required"`
}

// GamesArgs optionally selects one page of the catalogue
type GamesArgs struct {
	Page  int `json:"page" validate:"gte=0"`
	Limit int `json:"limit" validate:"gte=0"`
}

// GameInput is the nested input object of the game list mutations
type GameInput struct {
	GameID uint64 `json:"gameId" validate:"required"`
}

type GameListArgs struct {
	Input GameInput `json:"input"`
}

// RegisterOperations binds every query and mutation to the services
func RegisterOperations(d *Dispatcher, content *services.ContentService, profile *services.ProfileService) {
	// Queries
	Register(d, "me", Query, func(ctx context.Context, _ NoArgs, caller *auth.Caller) (interface{}, error) {
		user, err := profile.Me(ctx, caller)
		if err != nil {
			return nil, err
		}
		return dto.ToUserDTO(*user), nil
	})

	Register(d, "getPost", Query, func(ctx context.Context, args PostIDArgs, caller *auth.Caller) (interface{}, error) {
		post, err := content.GetPost(ctx, args.PostID, caller)
		if err != nil {
			return nil, err
		}
		return postDTO(ctx, content, post), nil
	})

	Register(d, "getAllPosts", Query, func(ctx context.Context, _ NoArgs, caller *auth.Caller) (interface{}, error) {
		posts, err := content.ListPosts(ctx, caller)
		if err != nil {
			return nil, err
		}
		out := make([]dto.PostDTO, len(posts))
		for i := range posts {
			out[i] = postDTO(ctx, content, &posts[i])
		}
		return out, nil
	})

	Register(d, "comments", Query, func(ctx context.Context, args PostIDArgs, _ *auth.Caller) (interface{}, error) {
		comments, err := content.ListComments(ctx, args.PostID)
		if err != nil {
			return nil, err
		}
		return dto.ToCommentDTOs(comments), nil
	})

	Register(d, "games", Query, func(ctx context.Context, args GamesArgs, _ *auth.Caller) (interface{}, error) {
		games, err := profile.ListGames(ctx, args.Page, args.Limit)
		if err != nil {
			return nil, err
		}
		return dto.ToGameDTOs(games), nil
	})

	// Mutations
	Register(d, "addUser", Mutation, func(ctx context.Context, args AddUserArgs, _ *auth.Caller) (interface{}, error) {
		result, err := profile.Register(ctx, services.RegisterInput{
			Username: args.Username,
			Email:    args.Email,
			Password: args.Password,
		})
		if err != nil {
			return nil, err
		}
		return dto.ToAuthPayload(result.Token, *result.User), nil
	})

	Register(d, "login", Mutation, func(ctx context.Context, args LoginArgs, _ *auth.Caller) (interface{}, error) {
		result, err := profile.Login(ctx, args.Email, args.Password)
		if err != nil {
			return nil, err
		}
		return dto.ToAuthPayload(result.Token, *result.User), nil
	})

	Register(d, "createPost", Mutation, func(ctx context.Context, args CreatePostArgs, caller *auth.Caller) (interface{}, error) {
		post, err := content.CreatePost(ctx, services.CreatePostInput{
			Title:    args.Title,
			Content:  args.Content,
			AuthorID: args.AuthorID,
		}, caller)
		if err != nil {
			return nil, err
		}
		return postDTO(ctx, content, post), nil
	})

	Register(d, "updatePost", Mutation, func(ctx context.Context, args UpdatePostArgs, caller *auth.Caller) (interface{}, error) {
		post, err := content.UpdatePost(ctx, args.PostID, args.Content, caller)
		if err != nil {
			return nil, err
		}
		return postDTO(ctx, content, post), nil
	})

	Register(d, "deletePost", Mutation, func(ctx context.Context, args PostIDArgs, _ *auth.Caller) (interface{}, error) {
		post, err := content.DeletePost(ctx, args.PostID)
		if err != nil {
			return nil, err
		}
		return dto.ToPostDTO(*post, nil), nil
	})

	Register(d, "addComment", Mutation, func(ctx context.Context, args AddCommentArgs, caller *auth.Caller) (interface{}, error) {
		authorID := args.AuthorID
		if authorID == 0 && caller != nil {
			authorID = caller.UserID
		}
		comment, err := content.AddComment(ctx, services.AddCommentInput{
			PostID:   args.PostID,
			Text:     args.Text,
			AuthorID: authorID,
		})
		if err != nil {
			return nil, err
		}
		return dto.ToCommentDTO(*comment), nil
	})

	Register(d, "updateComment", Mutation, func(ctx context.Context, args UpdateCommentArgs, _ *auth.Caller) (interface{}, error) {
		comment, err := content.UpdateComment(ctx, args.ID, args.Text)
		if err != nil {
			return nil, err
		}
		return dto.ToCommentDTO(*comment), nil
	})

	Register(d, "deleteComment", Mutation, func(ctx context.Context, args CommentIDArgs, _ *auth.Caller) (interface{}, error) {
		id, err := content.DeleteComment(ctx, args.ID)
		if err != nil {
			return nil, err
		}
		return dto.DeletedCommentDTO{ID: id}, nil
	})

	Register(d, "addToWishlist", Mutation, func(ctx context.Context, args GameListArgs, caller *auth.Caller) (interface{}, error) {
		user, err := profile.AddToWishlist(ctx, services.GameListInput{GameID: args.Input.GameID}, caller)
		if err != nil {
			return nil, err
		}
		return dto.ToUserDTO(*user), nil
	})

	Register(d, "addToCurrentlyPlaying", Mutation, func(ctx context.Context, args GameListArgs, caller *auth.Caller) (interface{}, error) {
		game, err := profile.AddToCurrentlyPlaying(ctx, services.GameListInput{GameID: args.Input.GameID}, caller)
		if err != nil {
			return nil, err
		}
		return dto.ToGameDTO(*game), nil
	})
}

func postDTO(ctx context.Context, content *services.ContentService, post *models.Post) dto.PostDTO {
	return dto.ToPostDTO(*post, content.ResolveAuthor(ctx, post))
}
