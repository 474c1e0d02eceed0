package repository

import (
	"context"
	"testing"
	"time"

	"github.com/playhub/community-api/internal/database"
	"github.com/playhub/community-api/internal/models"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// RepositoryTestSuite runs the GORM repositories against in-memory SQLite
type RepositoryTestSuite struct {
	suite.Suite
	db       *gorm.DB
	ctx      context.Context
	users    UserRepository
	games    GameRepository
	posts    PostRepository
	comments CommentRepository
}

func (s *RepositoryTestSuite) SetupTest() {
	var err error
	s.db, err = gorm.Open(sqlite.Open(":memory:"), database.GormConfig(logger.Silent))
	s.Require().NoError(err)
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)
	s.Require().NoError(s.db.AutoMigrate(database.Models...))

	s.ctx = context.Background()
	s.users = NewUserRepository(s.db)
	s.games = NewGameRepository(s.db)
	s.posts = NewPostRepository(s.db)
	s.comments = NewCommentRepository(s.db)
}

func (s *RepositoryTestSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	sqlDB.Close()
}

func (s *RepositoryTestSuite) createUser(email string) *models.User {
	user := &models.User{Username: email, Email: email, PasswordHash: "hashed"}
	s.Require().NoError(s.users.Create(s.ctx, user))
	return user
}

func (s *RepositoryTestSuite) createGame(title string) *models.Game {
	game := &models.Game{Title: title}
	s.Require().NoError(s.games.FindOrCreate(s.ctx, game))
	return game
}

func (s *RepositoryTestSuite) TestUserCreate_DuplicateEmail() {
	s.createUser("a@x.com")

	err := s.users.Create(s.ctx, &models.User{Username: "other", Email: "a@x.com", PasswordHash: "h"})
	s.ErrorIs(err, gorm.ErrDuplicatedKey)
}

func (s *RepositoryTestSuite) TestUserFindByEmail_NotFound() {
	_, err := s.users.FindByEmail(s.ctx, "missing@x.com")
	s.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (s *RepositoryTestSuite) TestAddToWishlist_SetSemantics() {
	user := s.createUser("a@x.com")

	s.Require().NoError(s.users.AddToWishlist(s.ctx, user.ID, 10))
	s.Require().NoError(s.users.AddToWishlist(s.ctx, user.ID, 10))
	s.Require().NoError(s.users.AddToWishlist(s.ctx, user.ID, 11))

	reloaded, err := s.users.FindByID(s.ctx, user.ID)
	s.Require().NoError(err)
	s.ElementsMatch([]uint64{10, 11}, reloaded.WishlistGameIDs())
}

func (s *RepositoryTestSuite) TestAppendCurrentlyPlaying_KeepsOrderAndDuplicates() {
	user := s.createUser("a@x.com")

	for _, gameID := range []uint64{3, 1, 3} {
		s.Require().NoError(s.users.AppendCurrentlyPlaying(s.ctx, user.ID, gameID))
	}

	reloaded, err := s.users.FindByEmail(s.ctx, "a@x.com")
	s.Require().NoError(err)
	s.Equal([]uint64{3, 1, 3}, reloaded.CurrentlyPlayingGameIDs())
}

func (s *RepositoryTestSuite) TestGameFindOrCreate_MatchesTitle() {
	first := s.createGame("Hades")
	second := s.createGame("Hades")
	s.createGame("Celeste")

	s.Equal(first.ID, second.ID)

	games, err := s.games.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(games, 2)
	s.Equal("Celeste", games[0].Title)
}

func (s *RepositoryTestSuite) TestGameListPage() {
	for _, title := range []string{"Celeste", "Hades", "Outer Wilds"} {
		s.createGame(title)
	}

	page, err := s.games.ListPage(s.ctx, 1, 1)
	s.Require().NoError(err)
	s.Require().Len(page, 1)
	s.Equal("Hades", page[0].Title)

	page, err = s.games.ListPage(s.ctx, 3, 10)
	s.Require().NoError(err)
	s.Empty(page)
}

func (s *RepositoryTestSuite) TestCachedGameRepository_PassesThroughWithoutRedis() {
	game := s.createGame("Hades")
	cached := NewCachedGameRepository(s.games, nil, time.Minute)

	found, err := cached.FindByID(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Equal("Hades", found.Title)

	_, err = cached.FindByID(s.ctx, game.ID+100)
	s.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (s *RepositoryTestSuite) TestPostUpdateContent() {
	post := &models.Post{Title: "T", Content: "C", AuthorID: 1}
	s.Require().NoError(s.posts.Create(s.ctx, post))

	s.Require().NoError(s.posts.UpdateContent(s.ctx, post.ID, "C2"))

	updated, err := s.posts.FindByID(s.ctx, post.ID)
	s.Require().NoError(err)
	s.Equal("C2", updated.Content)
	s.Equal("T", updated.Title)
	s.False(updated.UpdatedAt.Before(updated.CreatedAt))

	s.ErrorIs(s.posts.UpdateContent(s.ctx, post.ID+1, "x"), gorm.ErrRecordNotFound)
}

func (s *RepositoryTestSuite) TestPostDelete() {
	post := &models.Post{Title: "T", Content: "C", AuthorID: 1}
	s.Require().NoError(s.posts.Create(s.ctx, post))

	deleted, err := s.posts.Delete(s.ctx, post.ID)
	s.Require().NoError(err)
	s.Equal("T", deleted.Title)

	_, err = s.posts.FindByID(s.ctx, post.ID)
	s.ErrorIs(err, gorm.ErrRecordNotFound)

	_, err = s.posts.Delete(s.ctx, post.ID)
	s.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (s *RepositoryTestSuite) TestPostList_NewestFirst() {
	older := &models.Post{Title: "old", Content: "c", AuthorID: 1, CreatedAt: time.Now().Add(-time.Hour)}
	newer := &models.Post{Title: "new", Content: "c", AuthorID: 1}
	s.Require().NoError(s.posts.Create(s.ctx, older))
	s.Require().NoError(s.posts.Create(s.ctx, newer))

	posts, err := s.posts.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(posts, 2)
	s.Equal("new", posts[0].Title)
}

func (s *RepositoryTestSuite) TestCommentListByPost_ResolvesAuthors() {
	author := s.createUser("a@x.com")
	s.Require().NoError(s.comments.Create(s.ctx, &models.Comment{Content: "first", AuthorID: author.ID, PostID: 5}))
	s.Require().NoError(s.comments.Create(s.ctx, &models.Comment{Content: "orphan", AuthorID: 999, PostID: 5}))
	s.Require().NoError(s.comments.Create(s.ctx, &models.Comment{Content: "elsewhere", AuthorID: author.ID, PostID: 6}))

	comments, err := s.comments.ListByPost(s.ctx, 5)
	s.Require().NoError(err)
	s.Require().Len(comments, 2)

	s.Equal("first", comments[0].Content)
	s.Require().NotNil(comments[0].Author)
	s.Equal("a@x.com", comments[0].Author.Email)

	s.Equal("orphan", comments[1].Content)
	s.Nil(comments[1].Author)
}

func (s *RepositoryTestSuite) TestCommentUpdateAndDelete() {
	comment := &models.Comment{Content: "c", AuthorID: 1, PostID: 1}
	s.Require().NoError(s.comments.Create(s.ctx, comment))

	s.Require().NoError(s.comments.UpdateContent(s.ctx, comment.ID, "edited"))
	found, err := s.comments.FindByID(s.ctx, comment.ID)
	s.Require().NoError(err)
	s.Equal("edited", found.Content)

	s.ErrorIs(s.comments.UpdateContent(s.ctx, comment.ID+1, "x"), gorm.ErrRecordNotFound)

	s.Require().NoError(s.comments.Delete(s.ctx, comment.ID))
	s.Require().NoError(s.comments.Delete(s.ctx, comment.ID))
	_, err = s.comments.FindByID(s.ctx, comment.ID)
	s.ErrorIs(err, gorm.ErrRecordNotFound)
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}

func TestWishlistEntryIDs_EmptyUser(t *testing.T) {
	var user models.User
	require.Empty(t, user.WishlistGameIDs())
	require.Empty(t, user.CurrentlyPlayingGameIDs())
}
