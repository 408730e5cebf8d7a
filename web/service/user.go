package service

import (
	"strings"

	"inkpress/database"
	"inkpress/database/model"
	"inkpress/logger"
	"inkpress/util/common"
	"inkpress/util/crypto"

	"gorm.io/gorm"
)

type UserService struct{}

// SignUp registers a new user. The username is lowercased before the
// uniqueness check and storage. The first registered user becomes the
// administrator; everyone after that is standard.
func (s *UserService) SignUp(email, username, password string) (*model.User, error) {
	db := database.GetDB()

	email = strings.TrimSpace(email)
	username = strings.ToLower(strings.TrimSpace(username))

	if email == "" || username == "" || password == "" {
		return nil, common.NewError("email, username and password can not be empty")
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		Role:         model.RoleStandard,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateEmail
		}

		if err := tx.Model(&model.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateUsername
		}

		if err := tx.Model(&model.User{}).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			user.Role = model.RoleAdministrator
		}

		if err := tx.Create(user).Error; err != nil {
			err = translateUniqueViolation(err, "users.email", ErrDuplicateEmail)
			return translateUniqueViolation(err, "users.username", ErrDuplicateUsername)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Infof("user %s signed up as %s", user.Username, user.Role)
	return user, nil
}

// CheckUser verifies the credentials for a sign-in attempt.
func (s *UserService) CheckUser(email, password string) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("email = ?", strings.TrimSpace(email)).
		First(user).
		Error
	if database.IsNotFound(err) {
		return nil, ErrUnknownEmail
	} else if err != nil {
		return nil, err
	}

	if !crypto.CheckPasswordHash(user.PasswordHash, password) {
		return nil, ErrInvalidPassword
	}
	return user, nil
}

func (s *UserService) GetUser(id int) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.First(user, id).Error
	if database.IsNotFound(err) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUserByUsername(username string) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("username = ?", strings.ToLower(username)).
		First(user).
		Error
	if database.IsNotFound(err) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes a user together with every post and comment they
// authored, plus the comments other users left on their posts. The whole
// cascade runs in one transaction so a failure never leaves orphans.
func (s *UserService) DeleteUser(username string) error {
	db := database.GetDB()

	return db.Transaction(func(tx *gorm.DB) error {
		user := &model.User{}
		err := tx.Where("username = ?", strings.ToLower(username)).First(user).Error
		if database.IsNotFound(err) {
			return ErrNotFound
		} else if err != nil {
			return err
		}

		postIds := tx.Model(&model.Post{}).Select("id").Where("author_id = ?", user.Id)
		if err := tx.Where("post_id IN (?)", postIds).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("comment_author_id = ?", user.Id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("author_id = ?", user.Id).Delete(&model.Post{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.User{}, user.Id).Error; err != nil {
			return err
		}

		logger.Infof("user %s deleted", user.Username)
		return nil
	})
}
