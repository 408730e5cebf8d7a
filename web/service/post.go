package service

import (
	"time"

	"inkpress/database"
	"inkpress/database/model"
	"inkpress/logger"

	"gorm.io/gorm"
)

// dateFormat is the display format stamped on a post at creation.
const dateFormat = "January 02, 2006"

type PostService struct{}

// GetAllPosts returns every post, most recent first.
func (s *PostService) GetAllPosts() ([]model.Post, error) {
	db := database.GetDB()

	var posts []model.Post
	err := db.Preload("Author").
		Order("id DESC").
		Find(&posts).
		Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPostsByAuthor returns the posts authored by one user, most recent
// first.
func (s *PostService) GetPostsByAuthor(authorId int) ([]model.Post, error) {
	db := database.GetDB()

	var posts []model.Post
	err := db.Where("author_id = ?", authorId).
		Order("id DESC").
		Find(&posts).
		Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPost returns a post with its author and comments.
func (s *PostService) GetPost(id int) (*model.Post, error) {
	db := database.GetDB()

	post := &model.Post{}
	err := db.Preload("Author").
		Preload("Comments").
		Preload("Comments.CommentAuthor").
		First(post, id).
		Error
	if database.IsNotFound(err) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return post, nil
}

// CreatePost stores a new post for the given author. The creation date is
// stamped at call time and never changes afterwards.
func (s *PostService) CreatePost(author *model.User, title, subtitle, body, imgURL string) (*model.Post, error) {
	db := database.GetDB()

	post := &model.Post{
		AuthorId: author.Id,
		Title:    title,
		Subtitle: subtitle,
		Date:     time.Now().Format(dateFormat),
		Body:     body,
		ImgURL:   imgURL,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Post{}).Where("title = ?", title).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateTitle
		}
		if err := tx.Create(post).Error; err != nil {
			return translateUniqueViolation(err, "blog_posts.title", ErrDuplicateTitle)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Infof("post %d created by %s", post.Id, author.Username)
	return post, nil
}

// UpdatePost overwrites the mutable fields of a post. The author is
// reassigned to the editor and the creation date is left untouched.
func (s *PostService) UpdatePost(editor *model.User, id int, title, subtitle, body, imgURL string) error {
	db := database.GetDB()

	return db.Transaction(func(tx *gorm.DB) error {
		post := &model.Post{}
		err := tx.First(post, id).Error
		if database.IsNotFound(err) {
			return ErrNotFound
		} else if err != nil {
			return err
		}

		if title != post.Title {
			var count int64
			if err := tx.Model(&model.Post{}).Where("title = ?", title).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return ErrDuplicateTitle
			}
		}

		err = tx.Model(post).Updates(map[string]any{
			"author_id": editor.Id,
			"title":     title,
			"subtitle":  subtitle,
			"body":      body,
			"img_url":   imgURL,
		}).Error
		return translateUniqueViolation(err, "blog_posts.title", ErrDuplicateTitle)
	})
}

// DeletePost removes a post and all of its comments atomically.
func (s *PostService) DeletePost(id int) error {
	db := database.GetDB()

	return db.Transaction(func(tx *gorm.DB) error {
		post := &model.Post{}
		err := tx.First(post, id).Error
		if database.IsNotFound(err) {
			return ErrNotFound
		} else if err != nil {
			return err
		}

		if err := tx.Where("post_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.Post{}, id).Error; err != nil {
			return err
		}

		logger.Infof("post %d deleted", id)
		return nil
	})
}
