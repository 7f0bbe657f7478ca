package service

import (
	"Blogicum/internal/api/dto"
	"Blogicum/internal/model"
	"Blogicum/internal/pkg/security"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterLoginAuthenticate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.users.Register(ctx, &dto.RegisterDTO{Username: "alice", Password: "password123", Email: "a@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = env.users.Register(ctx, &dto.RegisterDTO{Username: "alice", Password: "password456"})
	assert.ErrorIs(t, err, ErrUsernameExist)

	_, err = env.users.Login(ctx, &dto.LoginDTO{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, ErrPasswordIncorrect)
	_, err = env.users.Login(ctx, &dto.LoginDTO{Username: "nobody", Password: "password123"})
	assert.ErrorIs(t, err, ErrPasswordIncorrect)

	token, err := env.users.Login(ctx, &dto.LoginDTO{Username: "alice", Password: "password123"})
	require.NoError(t, err)

	viewer, err := env.users.Authenticate(ctx, token.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, viewer.UserID)
	assert.Equal(t, "alice", viewer.Username)
	assert.True(t, viewer.HasRole(security.RoleUser))
	assert.False(t, viewer.HasRole(security.RoleAdmin))

	require.NoError(t, env.users.Logout(ctx, token.Token))
	_, err = env.users.Authenticate(ctx, token.Token)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = env.users.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, ErrTokenInvalid)
	assert.ErrorIs(t, env.users.Logout(ctx, "garbage"), ErrTokenInvalid)
}

func TestSetStaffGrantsAdminRole(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.users.Register(ctx, &dto.RegisterDTO{Username: "bob", Password: "password123"})
	require.NoError(t, err)

	assert.ErrorIs(t, env.users.SetStaff(ctx, Anonymous(), "bob", true), ErrForbidden)
	require.NoError(t, env.users.SetStaff(ctx, SystemViewer(), "bob", true))
	assert.ErrorIs(t, env.users.SetStaff(ctx, SystemViewer(), "ghost", true), ErrUserNotFound)

	token, err := env.users.Login(ctx, &dto.LoginDTO{Username: "bob", Password: "password123"})
	require.NoError(t, err)
	viewer, err := env.users.Authenticate(ctx, token.Token)
	require.NoError(t, err)
	assert.True(t, viewer.HasRole(security.RoleAdmin))
}

func TestDeleteUserCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	victim, _ := env.user(t, "victim")
	other, _ := env.user(t, "other")

	own := env.post(t, victim, "own")
	foreign := env.post(t, other, "foreign")
	env.comment(t, own, other, "on victim's post")
	env.comment(t, foreign, victim, "by victim")
	env.comment(t, foreign, other, "survivor")

	require.NoError(t, env.users.DeleteUser(ctx, SystemViewer(), "victim"))

	var posts []model.Post
	require.NoError(t, env.db.Find(&posts).Error)
	require.Len(t, posts, 1)
	assert.Equal(t, "foreign", posts[0].Title)

	var comments []model.Comment
	require.NoError(t, env.db.Find(&comments).Error)
	require.Len(t, comments, 1)
	assert.Equal(t, "survivor", comments[0].Text)

	assert.ErrorIs(t, env.users.DeleteUser(ctx, SystemViewer(), "victim"), ErrUserNotFound)
}
