package service

import (
	"Blogicum/internal/api/config"
	"Blogicum/internal/api/dto"
	"Blogicum/internal/model"
	"Blogicum/internal/pkg/database/dbtest"
	"Blogicum/internal/pkg/logger"
	"Blogicum/internal/pkg/security"
	"Blogicum/internal/repository"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}}
}

func (s *fakeStorage) UploadFile(_ context.Context, objectName string, reader io.Reader, _ int64, _ string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[objectName] = data
	return nil
}

func (s *fakeStorage) DeleteFile(_ context.Context, objectName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[objectName]; !ok {
		return errors.New("no such object")
	}
	delete(s.objects, objectName)
	return nil
}

func (s *fakeStorage) GetPublicURL(objectName string) string {
	return "http://media.test/blogicum/" + objectName
}

func (s *fakeStorage) has(objectName string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[objectName]
	return ok
}

type fakeTempStore struct {
	mu    sync.Mutex
	items map[string]dto.MediaTempMetadata
}

func newFakeTempStore() *fakeTempStore {
	return &fakeTempStore{items: map[string]dto.MediaTempMetadata{}}
}

func (s *fakeTempStore) Add(_ context.Context, fileKey string, meta dto.MediaTempMetadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[fileKey] = meta
	return nil
}

func (s *fakeTempStore) Get(_ context.Context, fileKey string) (*dto.MediaTempMetadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	meta, ok := s.items[fileKey]
	if !ok {
		return nil, nil
	}
	return &meta, nil
}

func (s *fakeTempStore) Remove(_ context.Context, fileKeys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range fileKeys {
		delete(s.items, k)
	}
	return nil
}

func (s *fakeTempStore) All(_ context.Context) (map[string]dto.MediaTempMetadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]dto.MediaTempMetadata, len(s.items))
	for k, v := range s.items {
		out[k] = v
	}
	return out, nil
}

type fakeBlacklist struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

func newFakeBlacklist() *fakeBlacklist {
	return &fakeBlacklist{revoked: map[string]time.Duration{}}
}

func (s *fakeBlacklist) Revoke(_ context.Context, signature string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[signature] = ttl
	return nil
}

func (s *fakeBlacklist) IsRevoked(_ context.Context, signature string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.revoked[signature]
	return ok, nil
}

// testEnv 基于内存 SQLite 组装全部服务
type testEnv struct {
	db         *gorm.DB
	storage    *fakeStorage
	temp       *fakeTempStore
	blacklist  *fakeBlacklist
	tokens     *security.TokenManager
	media      MediaService
	posts      PostService
	comments   CommentService
	categories CategoryService
	locations  LocationService
	users      UserService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	l := logger.Discard()
	db := dbtest.NewTestDB(t)

	env := &testEnv{
		db:        db,
		storage:   newFakeStorage(),
		temp:      newFakeTempStore(),
		blacklist: newFakeBlacklist(),
		tokens:    security.NewTokenManager(config.JWTConfig{Secret: "test-secret", TTLHours: 1}),
	}

	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	userRepo := repository.NewUserRepo(db)

	env.media = NewMediaService(env.storage, env.temp, config.MediaConfig{
		MaxUploadBytes: 1 << 20,
		MaxImageWidth:  64,
		TempTTLHours:   1,
	}, l)
	env.posts = NewPostService(postRepo, commentRepo, categoryRepo, locationRepo, userRepo, env.media, l)
	env.comments = NewCommentService(postRepo, commentRepo, l)
	env.categories = NewCategoryService(categoryRepo, l)
	env.locations = NewLocationService(locationRepo, l)
	env.users = NewUserService(userRepo, env.tokens, env.blacklist, l)
	return env
}

func (e *testEnv) user(t *testing.T, username string) (*model.User, Viewer) {
	t.Helper()
	u := &model.User{Username: username, Password: "x"}
	require.NoError(t, e.db.Create(u).Error)
	return u, Viewer{UserID: u.ID, Username: u.Username, Roles: security.RolesFor(false)}
}

func (e *testEnv) category(t *testing.T, slug string, published bool) *model.Category {
	t.Helper()
	c := &model.Category{Title: slug, Description: slug, Slug: slug, IsPublished: published}
	require.NoError(t, e.db.Create(c).Error)
	return c
}

func (e *testEnv) location(t *testing.T, name string, published bool) *model.Location {
	t.Helper()
	loc := &model.Location{Name: name, IsPublished: published}
	require.NoError(t, e.db.Create(loc).Error)
	return loc
}

type postOpt func(p *model.Post)

func inCategory(c *model.Category) postOpt {
	return func(p *model.Post) { p.CategoryID = &c.ID }
}

func atLocation(loc *model.Location) postOpt {
	return func(p *model.Post) { p.LocationID = &loc.ID }
}

func publishedAt(ts time.Time) postOpt {
	return func(p *model.Post) { p.PubDate = ts.UTC() }
}

func unpublished() postOpt {
	return func(p *model.Post) { p.IsPublished = false }
}

func (e *testEnv) post(t *testing.T, author *model.User, title string, opts ...postOpt) *model.Post {
	t.Helper()
	p := &model.Post{
		Title:       title,
		Text:        "text of " + title,
		AuthorID:    author.ID,
		IsPublished: true,
		PubDate:     time.Now().UTC().Add(-time.Hour),
	}
	for _, opt := range opts {
		opt(p)
	}
	require.NoError(t, e.db.Omit("Author", "Category", "Location").Create(p).Error)
	return p
}

func (e *testEnv) comment(t *testing.T, post *model.Post, author *model.User, text string) *model.Comment {
	t.Helper()
	c := &model.Comment{PostID: post.ID, AuthorID: author.ID, Text: text}
	require.NoError(t, e.db.Omit("Post", "Author").Create(c).Error)
	return c
}

func titles(items []*dto.PostDTO) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Title)
	}
	return out
}

func pngBytes(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	require.NoError(t, encodeTestPNG(buf, w, h))
	return buf
}

func seq(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s-%02d", prefix, i)
	}
	return out
}
