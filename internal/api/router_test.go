package api_test

import (
	"Blogicum/internal/api"
	"Blogicum/internal/api/config"
	"Blogicum/internal/api/dto"
	"Blogicum/internal/api/handler"
	"Blogicum/internal/model"
	"Blogicum/internal/pkg/database/dbtest"
	"Blogicum/internal/pkg/logger"
	"Blogicum/internal/pkg/security"
	"Blogicum/internal/repository"
	"Blogicum/internal/service"
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memBlacklist struct {
	mu      sync.Mutex
	revoked map[string]bool
}

func (b *memBlacklist) Revoke(_ context.Context, signature string, _ time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.revoked[signature] = true
	return nil
}

func (b *memBlacklist) IsRevoked(_ context.Context, signature string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.revoked[signature], nil
}

type memStorage struct{}

func (memStorage) UploadFile(_ context.Context, _ string, r io.Reader, _ int64, _ string) error {
	_, err := io.Copy(io.Discard, r)
	return err
}

func (memStorage) DeleteFile(context.Context, string) error { return nil }

func (memStorage) GetPublicURL(objectName string) string { return "http://media.test/" + objectName }

type memTemp struct {
	mu    sync.Mutex
	items map[string]dto.MediaTempMetadata
}

func (m *memTemp) Add(_ context.Context, key string, meta dto.MediaTempMetadata) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = meta
	return nil
}

func (m *memTemp) Get(_ context.Context, key string) (*dto.MediaTempMetadata, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if meta, ok := m.items[key]; ok {
		return &meta, nil
	}
	return nil, nil
}

func (m *memTemp) Remove(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.items, k)
	}
	return nil
}

func (m *memTemp) All(context.Context) (map[string]dto.MediaTempMetadata, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]dto.MediaTempMetadata, len(m.items))
	for k, v := range m.items {
		out[k] = v
	}
	return out, nil
}

type server struct {
	t      *testing.T
	db     *gorm.DB
	router *gin.Engine
}

func newServer(t *testing.T) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	l := logger.Discard()
	db := dbtest.NewTestDB(t)

	userRepo := repository.NewUserRepo(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	locationRepo := repository.NewLocationRepository(db)

	tokens := security.NewTokenManager(config.JWTConfig{Secret: "router-secret", Issuer: "Blogicum", TTLHours: 1})
	mediaSvc := service.NewMediaService(memStorage{}, &memTemp{items: map[string]dto.MediaTempMetadata{}}, config.MediaConfig{
		MaxUploadBytes: 1 << 20,
		MaxImageWidth:  64,
		TempTTLHours:   1,
	}, l)
	userSvc := service.NewUserService(userRepo, tokens, &memBlacklist{revoked: map[string]bool{}}, l)

	router := api.SetupRouter(api.RouterDeps{
		Group: &api.HandlersGroup{
			UserHandler:     handler.NewUserHandler(userSvc),
			PostHandler:     handler.NewPostHandler(service.NewPostService(postRepo, commentRepo, categoryRepo, locationRepo, userRepo, mediaSvc, l)),
			CommentHandler:  handler.NewCommentHandler(service.NewCommentService(postRepo, commentRepo, l)),
			CategoryHandler: handler.NewCategoryHandler(service.NewCategoryService(categoryRepo, l)),
			LocationHandler: handler.NewLocationHandler(service.NewLocationService(locationRepo, l)),
			MediaHandler:    handler.NewMediaHandler(mediaSvc),
		},
		Authn:  userSvc,
		Logger: l,
	})
	return &server{t: t, db: db, router: router}
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (s *server) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *server) call(method, path, token string, body any, out any) envelope {
	s.t.Helper()
	w := s.do(method, path, token, body)
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())

	var env envelope
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env))
	if out != nil && env.Code == 200 {
		require.NoError(s.t, json.Unmarshal(env.Data, out))
	}
	return env
}

// login 注册并登录，staff 为 true 时授予管理员角色
func (s *server) login(username string, staff bool) string {
	s.t.Helper()
	env := s.call(http.MethodPost, "/api/auth/register", "", dto.RegisterDTO{Username: username, Password: "password-123"}, nil)
	require.Equal(s.t, 200, env.Code, env.Message)
	if staff {
		require.NoError(s.t, s.db.Model(&model.User{}).Where("username = ?", username).Update("is_staff", true).Error)
	}

	var token dto.TokenDTO
	env = s.call(http.MethodPost, "/api/auth/login", "", dto.LoginDTO{Username: username, Password: "password-123"}, &token)
	require.Equal(s.t, 200, env.Code, env.Message)
	require.NotEmpty(s.t, token.Token)
	return token.Token
}

func (s *server) createPost(token, title string, pubDate time.Time) uint64 {
	s.t.Helper()
	var res dto.PostMutationDTO
	env := s.call(http.MethodPost, "/api/posts", token, dto.PostFormDTO{Title: title, Text: "body", PubDate: &pubDate}, &res)
	require.Equal(s.t, 200, env.Code, env.Message)
	return res.Post.ID
}

func TestPing(t *testing.T) {
	s := newServer(t)
	env := s.call(http.MethodGet, "/api/ping", "", nil, nil)
	assert.Equal(t, "pong", env.Message)
}

func TestRegisterValidationAndLogin(t *testing.T) {
	s := newServer(t)

	env := s.call(http.MethodPost, "/api/auth/register", "", dto.RegisterDTO{Username: "alice", Password: "short"}, nil)
	assert.Equal(t, 400, env.Code)
	assert.Contains(t, string(env.Data), "password")

	s.login("alice", false)

	env = s.call(http.MethodPost, "/api/auth/register", "", dto.RegisterDTO{Username: "alice", Password: "password-123"}, nil)
	assert.Equal(t, 400, env.Code)

	env = s.call(http.MethodPost, "/api/auth/login", "", dto.LoginDTO{Username: "alice", Password: "wrong-password"}, nil)
	assert.Equal(t, 401, env.Code)
}

func TestCreateRequiresToken(t *testing.T) {
	s := newServer(t)
	env := s.call(http.MethodPost, "/api/posts", "", dto.PostFormDTO{Title: "t", Text: "x"}, nil)
	assert.Equal(t, 401, env.Code)

	env = s.call(http.MethodPost, "/api/posts", "not-a-jwt", dto.PostFormDTO{Title: "t", Text: "x"}, nil)
	assert.Equal(t, 401, env.Code)
}

func TestLogoutRevokesToken(t *testing.T) {
	s := newServer(t)
	token := s.login("alice", false)

	env := s.call(http.MethodPost, "/api/auth/logout", token, nil, nil)
	require.Equal(t, 200, env.Code, env.Message)

	env = s.call(http.MethodPost, "/api/posts", token, dto.PostFormDTO{Title: "t", Text: "x"}, nil)
	assert.Equal(t, 401, env.Code)
}

func TestScheduledPostHiddenFromOthers(t *testing.T) {
	s := newServer(t)
	author := s.login("author", false)
	reader := s.login("reader", false)

	postID := s.createPost(author, "Tomorrow", time.Now().UTC().Add(24*time.Hour))
	path := fmt.Sprintf("/api/posts/%d", postID)

	env := s.call(http.MethodGet, path, "", nil, nil)
	assert.Equal(t, 404, env.Code)
	env = s.call(http.MethodGet, path, reader, nil, nil)
	assert.Equal(t, 404, env.Code)

	var detail dto.PostDetailDTO
	env = s.call(http.MethodGet, path, author, nil, &detail)
	require.Equal(t, 200, env.Code, env.Message)
	assert.Equal(t, "Tomorrow", detail.Post.Title)

	var feed struct {
		Items []*dto.PostDTO `json:"items"`
	}
	s.call(http.MethodGet, "/api/posts", author, nil, &feed)
	assert.Empty(t, feed.Items)

	env = s.call(http.MethodGet, "/api/posts/abc", "", nil, nil)
	assert.Equal(t, 404, env.Code)
}

func TestForeignMutationRedirectsToDetail(t *testing.T) {
	s := newServer(t)
	author := s.login("author", false)
	other := s.login("other", false)
	postID := s.createPost(author, "Mine", time.Now().UTC().Add(-time.Hour))
	path := fmt.Sprintf("/api/posts/%d", postID)

	w := s.do(http.MethodDelete, path, other, nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, path, w.Header().Get("Location"))

	w = s.do(http.MethodPut, path, other, dto.PostFormDTO{Title: "Hijacked", Text: "x"})
	assert.Equal(t, http.StatusSeeOther, w.Code)

	var next dto.NextViewDTO
	env := s.call(http.MethodDelete, path, author, nil, &next)
	require.Equal(t, 200, env.Code, env.Message)
	assert.Equal(t, "/api/profile/author", next.Next)

	env = s.call(http.MethodGet, path, author, nil, nil)
	assert.Equal(t, 404, env.Code)
}

func TestForeignInvalidEditStillRedirects(t *testing.T) {
	s := newServer(t)
	author := s.login("author", false)
	other := s.login("other", false)
	postID := s.createPost(author, "Mine", time.Now().UTC().Add(-time.Hour))
	path := fmt.Sprintf("/api/posts/%d", postID)

	w := s.do(http.MethodPut, path, other, map[string]string{"title": ""})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, path, w.Header().Get("Location"))

	var added struct {
		Comment dto.CommentDTO `json:"comment"`
	}
	env := s.call(http.MethodPost, path+"/comments", author, dto.CommentFormDTO{Text: "first"}, &added)
	require.Equal(t, 200, env.Code, env.Message)

	w = s.do(http.MethodPut, fmt.Sprintf("%s/comments/%d", path, added.Comment.ID), other, map[string]string{"text": ""})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, path, w.Header().Get("Location"))

	// 作者提交非法表单仍得到字段错误
	env = s.call(http.MethodPut, path, author, map[string]string{"title": ""}, nil)
	assert.Equal(t, 400, env.Code)
	assert.Contains(t, string(env.Data), "title")
}

func TestCommentFlow(t *testing.T) {
	s := newServer(t)
	author := s.login("author", false)
	other := s.login("other", false)
	postID := s.createPost(author, "Post", time.Now().UTC().Add(-time.Hour))
	base := fmt.Sprintf("/api/posts/%d/comments", postID)

	var added struct {
		Comment dto.CommentDTO `json:"comment"`
		Next    string         `json:"next"`
	}
	env := s.call(http.MethodPost, base, other, dto.CommentFormDTO{Text: "first"}, &added)
	require.Equal(t, 200, env.Code, env.Message)
	assert.Equal(t, fmt.Sprintf("/api/posts/%d", postID), added.Next)

	w := s.do(http.MethodDelete, fmt.Sprintf("%s/%d", base, added.Comment.ID), author, nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)

	var detail dto.PostDetailDTO
	s.call(http.MethodGet, fmt.Sprintf("/api/posts/%d", postID), "", nil, &detail)
	require.Len(t, detail.Comments, 1)
	assert.Equal(t, int64(1), detail.Post.CommentCount)

	env = s.call(http.MethodPost, "/api/posts/999/comments", other, dto.CommentFormDTO{Text: "lost"}, nil)
	assert.Equal(t, 404, env.Code)
}

func TestFeedPageQuery(t *testing.T) {
	s := newServer(t)
	author := s.login("author", false)
	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 12; i++ {
		s.createPost(author, fmt.Sprintf("post-%02d", i), base.Add(time.Duration(i)*time.Minute))
	}

	type page struct {
		Items      []*dto.PostDTO `json:"items"`
		Number     int            `json:"number"`
		TotalPages int            `json:"total_pages"`
		HasNext    bool           `json:"has_next"`
	}

	var first page
	s.call(http.MethodGet, "/api/posts", "", nil, &first)
	assert.Equal(t, 1, first.Number)
	assert.Equal(t, 2, first.TotalPages)
	assert.True(t, first.HasNext)
	require.Len(t, first.Items, 10)
	assert.Equal(t, "post-11", first.Items[0].Title)

	var second page
	s.call(http.MethodGet, "/api/posts?page=2", "", nil, &second)
	require.Len(t, second.Items, 2)
	assert.Equal(t, "post-00", second.Items[1].Title)

	var clamped page
	s.call(http.MethodGet, "/api/posts?page=99", "", nil, &clamped)
	assert.Equal(t, 2, clamped.Number)

	var junk page
	s.call(http.MethodGet, "/api/posts?page=abc", "", nil, &junk)
	assert.Equal(t, 1, junk.Number)
}

func TestAdminRoutesRequireRole(t *testing.T) {
	s := newServer(t)
	user := s.login("user", false)
	admin := s.login("admin", true)

	form := dto.CategoryFormDTO{Title: "Travel", Description: "Trips"}
	env := s.call(http.MethodPost, "/api/admin/categories", user, form, nil)
	assert.Equal(t, 403, env.Code)

	var category dto.CategoryDTO
	env = s.call(http.MethodPost, "/api/admin/categories", admin, form, &category)
	require.Equal(t, 200, env.Code, env.Message)
	assert.Equal(t, "travel", category.Slug)

	var categories []*dto.CategoryDTO
	s.call(http.MethodGet, "/api/categories", "", nil, &categories)
	require.Len(t, categories, 1)

	env = s.call(http.MethodGet, "/api/category/travel", "", nil, nil)
	assert.Equal(t, 200, env.Code)
	env = s.call(http.MethodGet, "/api/category/missing", "", nil, nil)
	assert.Equal(t, 404, env.Code)
}

func (s *server) upload(token, contentType string, data []byte) envelope {
	s.t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="pic"`)
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	require.NoError(s.t, err)
	_, err = part.Write(data)
	require.NoError(s.t, err)
	require.NoError(s.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/media/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	require.Equal(s.t, http.StatusOK, w.Code)

	var env envelope
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestMediaUpload(t *testing.T) {
	s := newServer(t)
	token := s.login("author", false)

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	env := s.upload(token, "image/png", buf.Bytes())
	require.Equal(t, 200, env.Code, env.Message)
	var res dto.MediaUploadDTO
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Contains(t, res.Key, "posts_images/")
	assert.Equal(t, "http://media.test/"+res.Key, res.URL)

	env = s.upload(token, "text/plain", []byte("hello"))
	assert.Equal(t, 400, env.Code)

	env = s.upload(token, "image/png", []byte("not an image"))
	assert.Equal(t, 400, env.Code)
}
