package model

// Role determines what a user may do. The first registered user becomes
// the administrator; the role is fixed at creation and never reassigned.
type Role string

const (
	RoleStandard      Role = "standard"
	RoleAdministrator Role = "administrator"
)

type User struct {
	Id           int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Email        string `json:"email" gorm:"uniqueIndex;not null"`
	Username     string `json:"username" gorm:"uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"column:password_hash;not null"`
	Role         Role   `json:"role" gorm:"not null"`

	Posts    []Post    `json:"-" gorm:"foreignKey:AuthorId;constraint:OnDelete:CASCADE"`
	Comments []Comment `json:"-" gorm:"foreignKey:CommentAuthorId;constraint:OnDelete:CASCADE"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdministrator
}

type Post struct {
	Id       int    `json:"id" form:"id" gorm:"primaryKey;autoIncrement"`
	AuthorId int    `json:"authorId" gorm:"not null"`
	Author   User   `json:"author" gorm:"foreignKey:AuthorId"`
	Title    string `json:"title" form:"title" gorm:"uniqueIndex;not null"`
	Subtitle string `json:"subtitle" form:"subtitle" gorm:"not null"`
	// Date is the display string stamped at creation, immutable afterwards.
	Date   string `json:"date" gorm:"not null"`
	Body   string `json:"body" form:"body" gorm:"type:text;not null"`
	ImgURL string `json:"imgUrl" form:"imgUrl" gorm:"column:img_url;not null"`

	Comments []Comment `json:"comments" gorm:"foreignKey:PostId;constraint:OnDelete:CASCADE"`
}

func (Post) TableName() string {
	return "blog_posts"
}

type Comment struct {
	Id              int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Text            string `json:"text" form:"text" gorm:"type:text;not null"`
	CommentAuthorId int    `json:"commentAuthorId" gorm:"column:comment_author_id;not null"`
	CommentAuthor   User   `json:"commentAuthor" gorm:"foreignKey:CommentAuthorId"`
	PostId          int    `json:"postId" gorm:"not null"`
}
