package service

import (
	"text/template"

	"inkpress/database"
	"inkpress/database/model"
	"inkpress/logger"

	"gorm.io/gorm"
)

type CommentService struct{}

// AddComment stores a comment on a post. The body is HTML-escaped at
// ingestion so stored text can never carry executable markup. Post
// existence is checked inside the same transaction as the insert.
func (s *CommentService) AddComment(author *model.User, postId int, text string) (*model.Comment, error) {
	db := database.GetDB()

	comment := &model.Comment{
		Text:            template.HTMLEscapeString(text),
		CommentAuthorId: author.Id,
		PostId:          postId,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.First(&model.Post{}, postId).Error
		if database.IsNotFound(err) {
			return ErrNotFound
		} else if err != nil {
			return err
		}
		return tx.Create(comment).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Debugf("comment %d added on post %d by %s", comment.Id, postId, author.Username)
	return comment, nil
}

// DeleteComment removes a comment and returns the id of its parent post
// so the caller can redirect back to it.
func (s *CommentService) DeleteComment(id int) (int, error) {
	db := database.GetDB()

	comment := &model.Comment{}
	err := db.First(comment, id).Error
	if database.IsNotFound(err) {
		return 0, ErrNotFound
	} else if err != nil {
		return 0, err
	}

	if err := db.Delete(&model.Comment{}, id).Error; err != nil {
		return 0, err
	}
	return comment.PostId, nil
}
