package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddCommentEscapesMarkup(t *testing.T) {
	setupTestDB(t)
	admin, reader := signUpTestUsers(t)
	postSvc := PostService{}
	commentSvc := CommentService{}

	post, err := postSvc.CreatePost(admin, "Escaping", "s", "b", "https://img.example/1.png")
	assert.NoError(t, err)

	comment, err := commentSvc.AddComment(reader, post.Id, `<script>alert("x")</script>`)
	assert.NoError(t, err)
	assert.Equal(t, "&lt;script&gt;alert(&#34;x&#34;)&lt;/script&gt;", comment.Text)

	stored, err := postSvc.GetPost(post.Id)
	assert.NoError(t, err)
	assert.Len(t, stored.Comments, 1)
	assert.NotContains(t, stored.Comments[0].Text, "<script>")
}

func TestAddCommentMissingPost(t *testing.T) {
	setupTestDB(t)
	_, reader := signUpTestUsers(t)
	commentSvc := CommentService{}

	_, err := commentSvc.AddComment(reader, 404, "hello?")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteCommentReturnsParentPost(t *testing.T) {
	setupTestDB(t)
	admin, reader := signUpTestUsers(t)
	postSvc := PostService{}
	commentSvc := CommentService{}

	post, err := postSvc.CreatePost(admin, "Parent", "s", "b", "https://img.example/1.png")
	assert.NoError(t, err)
	comment, err := commentSvc.AddComment(reader, post.Id, "bye")
	assert.NoError(t, err)

	postId, err := commentSvc.DeleteComment(comment.Id)
	assert.NoError(t, err)
	assert.Equal(t, post.Id, postId)

	_, err = commentSvc.DeleteComment(comment.Id)
	assert.ErrorIs(t, err, ErrNotFound)
}
