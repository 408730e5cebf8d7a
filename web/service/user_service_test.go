package service

import (
	"testing"

	"inkpress/database"
	"inkpress/database/model"

	"github.com/stretchr/testify/assert"
)

func TestSignUpFirstUserBecomesAdministrator(t *testing.T) {
	setupTestDB(t)
	svc := UserService{}

	first, err := svc.SignUp("admin@example.com", "Admin", "secret-password")
	assert.NoError(t, err)
	assert.Equal(t, model.RoleAdministrator, first.Role)
	assert.Equal(t, "admin", first.Username, "username must be lowercased")

	second, err := svc.SignUp("reader@example.com", "reader", "secret-password")
	assert.NoError(t, err)
	assert.Equal(t, model.RoleStandard, second.Role)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	setupTestDB(t)
	svc := UserService{}

	_, err := svc.SignUp("dup@example.com", "first", "secret-password")
	assert.NoError(t, err)

	_, err = svc.SignUp("dup@example.com", "second", "secret-password")
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	var count int64
	database.GetDB().Model(&model.User{}).Where("email = ?", "dup@example.com").Count(&count)
	assert.EqualValues(t, 1, count, "no second row may be created")
}

func TestSignUpDuplicateUsername(t *testing.T) {
	setupTestDB(t)
	svc := UserService{}

	_, err := svc.SignUp("a@example.com", "Writer", "secret-password")
	assert.NoError(t, err)

	// Uniqueness check runs on the lowercased form.
	_, err = svc.SignUp("b@example.com", "wRiTeR", "secret-password")
	assert.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestSignUpNeverStoresPlaintext(t *testing.T) {
	setupTestDB(t)
	svc := UserService{}

	user, err := svc.SignUp("hash@example.com", "hash", "secret-password")
	assert.NoError(t, err)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotContains(t, user.PasswordHash, "secret-password")
}

func TestCheckUser(t *testing.T) {
	setupTestDB(t)
	svc := UserService{}

	_, err := svc.SignUp("login@example.com", "login", "secret-password")
	assert.NoError(t, err)

	user, err := svc.CheckUser("login@example.com", "secret-password")
	assert.NoError(t, err)
	assert.Equal(t, "login", user.Username)

	_, err = svc.CheckUser("login@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidPassword)

	_, err = svc.CheckUser("nobody@example.com", "secret-password")
	assert.ErrorIs(t, err, ErrUnknownEmail)
}

func TestDeleteUserCascades(t *testing.T) {
	setupTestDB(t)
	userSvc := UserService{}
	postSvc := PostService{}
	commentSvc := CommentService{}

	author, err := userSvc.SignUp("author@example.com", "author", "secret-password")
	assert.NoError(t, err)
	other, err := userSvc.SignUp("other@example.com", "other", "secret-password")
	assert.NoError(t, err)

	post, err := postSvc.CreatePost(author, "Cascade", "sub", "body", "https://img.example/p.png")
	assert.NoError(t, err)

	// The author's own comment elsewhere, plus someone else's comment on
	// the author's post. Both must go when the author goes.
	otherPost, err := postSvc.CreatePost(other, "Other", "sub", "body", "https://img.example/o.png")
	assert.NoError(t, err)
	_, err = commentSvc.AddComment(author, otherPost.Id, "mine elsewhere")
	assert.NoError(t, err)
	_, err = commentSvc.AddComment(other, post.Id, "on the doomed post")
	assert.NoError(t, err)

	assert.NoError(t, userSvc.DeleteUser("author"))

	_, err = userSvc.GetUserByUsername("author")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = postSvc.GetPost(post.Id)
	assert.ErrorIs(t, err, ErrNotFound)

	var comments int64
	database.GetDB().Model(&model.Comment{}).Count(&comments)
	assert.EqualValues(t, 0, comments, "no orphaned comments may remain")

	// The unrelated post survives.
	_, err = postSvc.GetPost(otherPost.Id)
	assert.NoError(t, err)
}

func TestDeleteUserNotFound(t *testing.T) {
	setupTestDB(t)
	svc := UserService{}

	assert.ErrorIs(t, svc.DeleteUser("ghost"), ErrNotFound)
}
