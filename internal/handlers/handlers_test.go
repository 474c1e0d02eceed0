package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/playhub/community-api/internal/auth"
	"github.com/playhub/community-api/internal/constants"
	"github.com/playhub/community-api/internal/database"
	"github.com/playhub/community-api/internal/dispatch"
	"github.com/playhub/community-api/internal/middleware"
	"github.com/playhub/community-api/internal/models"
	"github.com/playhub/community-api/internal/repository"
	"github.com/playhub/community-api/internal/services"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

type authData struct {
	Token string `json:"token"`
	User  struct {
		ID       uint64   `json:"id"`
		Username string   `json:"username"`
		Wishlist []uint64 `json:"wishlist"`
	} `json:"user"`
}

// HandlerTestSuite drives the HTTP surface end to end against SQLite
type HandlerTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

func (s *HandlerTestSuite) SetupTest() {
	var err error
	s.db, err = gorm.Open(sqlite.Open(":memory:"), database.GormConfig(logger.Silent))
	s.Require().NoError(err)
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)
	s.Require().NoError(s.db.AutoMigrate(database.Models...))

	log, _ := test.NewNullLogger()
	identity := auth.NewProvider("test-secret", time.Hour, bcrypt.MinCost)
	users := repository.NewUserRepository(s.db)
	content := services.NewContentService(repository.NewPostRepository(s.db), repository.NewCommentRepository(s.db), users, log)
	profile := services.NewProfileService(users, repository.NewGameRepository(s.db), identity, log)

	d := dispatch.New(log, nil)
	dispatch.RegisterOperations(d, content, profile)

	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.router.Use(middleware.RequestID())
	s.router.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("secret"))))
	s.router.Use(middleware.Authenticate(identity, log))
	RegisterRoutes(s.router, NewOperationHandler(d, log))
}

func (s *HandlerTestSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	sqlDB.Close()
}

func (s *HandlerTestSuite) do(method, path, body string, setup ...func(*http.Request)) (*httptest.ResponseRecorder, envelope) {
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	for _, fn := range setup {
		fn(req)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func bearer(token string) func(*http.Request) {
	return func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func (s *HandlerTestSuite) signup(username, email string) authData {
	w, env := s.do(http.MethodPost, "/api/auth/signup",
		fmt.Sprintf(`{"username":%q,"email":%q,"password":"pw123"}`, username, email))
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var data authData
	s.Require().NoError(json.Unmarshal(env.Data, &data))
	s.Require().NotEmpty(data.Token)
	return data
}

func (s *HandlerTestSuite) TestSignupSetsSession() {
	w, _ := s.do(http.MethodPost, "/api/auth/signup", `{"username":"alice","email":"a@x.com","password":"pw123"}`)
	s.Require().Equal(http.StatusCreated, w.Code)
	cookies := w.Result().Cookies()
	s.Require().NotEmpty(cookies)
	s.Equal(constants.SessionCookieName, cookies[0].Name)

	w, env := s.do(http.MethodGet, "/api/me", "", func(req *http.Request) {
		for _, c := range cookies {
			req.AddCookie(c)
		}
	})
	s.Require().Equal(http.StatusOK, w.Code)

	var me struct {
		Username string `json:"username"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &me))
	s.Equal("alice", me.Username)
}

func (s *HandlerTestSuite) TestLoginThroughOperationsEndpoint() {
	s.signup("alice", "a@x.com")

	w, env := s.do(http.MethodPost, "/api/operations",
		`{"operation":"login","arguments":{"email":"a@x.com","password":"pw123"}}`)
	s.Require().Equal(http.StatusOK, w.Code)

	var data authData
	s.Require().NoError(json.Unmarshal(env.Data, &data))

	w, _ = s.do(http.MethodGet, "/api/me", "", bearer(data.Token))
	s.Equal(http.StatusOK, w.Code)

	w, env = s.do(http.MethodPost, "/api/operations",
		`{"operation":"login","arguments":{"email":"a@x.com","password":"nope"}}`)
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("AUTHENTICATION_ERROR", env.Error.Code)
}

func (s *HandlerTestSuite) TestGuardedRoutesRejectAnonymous() {
	for _, setup := range [][]func(*http.Request){nil, {bearer("not-a-token")}} {
		w, env := s.do(http.MethodGet, "/api/posts", "", setup...)
		s.Equal(http.StatusUnauthorized, w.Code)
		s.Require().NotNil(env.Error)
		s.Equal("UNAUTHENTICATED", env.Error.Code)
	}

	w, _ := s.do(http.MethodPost, "/api/posts", `{"title":"T","content":"C"}`)
	s.Equal(http.StatusUnauthorized, w.Code)

	var count int64
	s.Require().NoError(s.db.Model(&models.Post{}).Count(&count).Error)
	s.Zero(count)
}

func (s *HandlerTestSuite) TestPostAndCommentRoutes() {
	alice := s.signup("alice", "a@x.com")

	w, env := s.do(http.MethodPost, "/api/posts", `{"title":"T","content":"C"}`, bearer(alice.Token))
	s.Require().Equal(http.StatusCreated, w.Code)
	var post struct {
		ID     uint64 `json:"id"`
		Title  string `json:"title"`
		Author *struct {
			Username string `json:"username"`
		} `json:"author"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &post))
	s.Require().NotNil(post.Author)
	s.Equal("alice", post.Author.Username)
	postPath := fmt.Sprintf("/api/posts/%d", post.ID)

	w, _ = s.do(http.MethodGet, postPath, "", bearer(alice.Token))
	s.Equal(http.StatusOK, w.Code)

	w, _ = s.do(http.MethodPatch, postPath, `{"content":"C2"}`, bearer(alice.Token))
	s.Equal(http.StatusOK, w.Code)

	w, env = s.do(http.MethodPost, postPath+"/comments", `{"text":"hi"}`)
	s.Require().Equal(http.StatusCreated, w.Code)
	var comment struct {
		ID uint64 `json:"id"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &comment))

	w, env = s.do(http.MethodGet, postPath+"/comments", "")
	s.Require().Equal(http.StatusOK, w.Code)
	var comments []json.RawMessage
	s.Require().NoError(json.Unmarshal(env.Data, &comments))
	s.Len(comments, 1)

	commentPath := fmt.Sprintf("/api/comments/%d", comment.ID)
	w, _ = s.do(http.MethodPatch, commentPath, `{"text":"edited"}`)
	s.Equal(http.StatusOK, w.Code)

	w, _ = s.do(http.MethodDelete, commentPath, "")
	s.Equal(http.StatusOK, w.Code)
	w, _ = s.do(http.MethodDelete, commentPath, "")
	s.Equal(http.StatusOK, w.Code)

	w, _ = s.do(http.MethodDelete, postPath, "")
	s.Equal(http.StatusOK, w.Code)

	w, env = s.do(http.MethodGet, postPath, "", bearer(alice.Token))
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("NOT_FOUND", env.Error.Code)
}

func (s *HandlerTestSuite) TestGameListRoutes() {
	alice := s.signup("alice", "a@x.com")
	game := &models.Game{Title: "Hades"}
	s.Require().NoError(s.db.Create(game).Error)
	body := fmt.Sprintf(`{"gameId":%d}`, game.ID)

	w, env := s.do(http.MethodPost, "/api/me/wishlist", body, bearer(alice.Token))
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var user struct {
		Wishlist []uint64 `json:"wishlist"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &user))
	s.Equal([]uint64{game.ID}, user.Wishlist)

	w, _ = s.do(http.MethodPost, "/api/me/currently-playing", fmt.Sprintf(`{"input":{"gameId":%d}}`, game.ID), bearer(alice.Token))
	s.Equal(http.StatusOK, w.Code)

	w, env = s.do(http.MethodPost, "/api/me/currently-playing", `{"gameId":999}`, bearer(alice.Token))
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("NOT_FOUND", env.Error.Code)

	w, env = s.do(http.MethodPost, "/api/me/wishlist", "", bearer(alice.Token))
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("VALIDATION_ERROR", env.Error.Code)

	w, env = s.do(http.MethodGet, "/api/games?page=1&limit=5", "")
	s.Require().Equal(http.StatusOK, w.Code)
	var games []struct {
		Title string `json:"title"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &games))
	s.Require().Len(games, 1)
	s.Equal("Hades", games[0].Title)
}

func (s *HandlerTestSuite) TestRequestErrors() {
	w, env := s.do(http.MethodPost, "/api/operations", `{"arguments":{}}`)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("INVALID_INPUT", env.Error.Code)

	w, env = s.do(http.MethodPost, "/api/operations", `{"operation":"dropTables"}`)
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("NOT_FOUND", env.Error.Code)

	w, env = s.do(http.MethodPost, "/api/posts", `[1,2]`)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("INVALID_INPUT", env.Error.Code)

	w, env = s.do(http.MethodGet, "/api/posts/abc/comments", "")
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("VALIDATION_ERROR", env.Error.Code)
	s.Equal(map[string]string{"postId": "must be a positive integer"}, env.Error.Details)

	w, env = s.do(http.MethodPost, "/api/auth/signup", `{"username":"bob","email":"bob@x.com"}`)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal(map[string]string{"password": "is required"}, env.Error.Details)
}

func (s *HandlerTestSuite) TestLogoutExpiresSession() {
	w, env := s.do(http.MethodPost, "/api/auth/logout", "")
	s.Require().Equal(http.StatusOK, w.Code)
	s.NotNil(env.Data)

	cookies := w.Result().Cookies()
	s.Require().NotEmpty(cookies)
	s.Equal(-1, cookies[0].MaxAge)
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
