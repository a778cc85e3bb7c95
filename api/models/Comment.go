package models

import (
	"html"
	"strings"
	"time"

	"gorm.io/gorm"
)

type Comment struct {
	ID        uint      `gorm:"primary_key;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	Author    User      `gorm:"foreignKey:UserID" json:"author"`
	Body      string    `gorm:"text;not null;" json:"body"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (c *Comment) Prepare() {
	c.ID = 0
	c.Body = html.EscapeString(strings.TrimSpace(c.Body))
	c.Author = User{}
	c.CreatedAt = time.Now()
	c.UpdatedAt = time.Now()
}

func (c *Comment) Validate() map[string]string {
	var errorMessages = make(map[string]string)

	if c.Body == "" {
		errorMessages["Required_body"] = "Body is required"
	}
	if c.UserID == 0 {
		errorMessages["Required_user"] = "User is required"
	}
	if c.PostID == 0 {
		errorMessages["Required_post"] = "Post is required"
	}
	return errorMessages
}

func (c *Comment) SaveComment(db *gorm.DB) (*Comment, error) {
	err := db.Create(&c).Error
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Comment) GetPostComments(db *gorm.DB, pid uint) (*[]Comment, error) {
	comments := []Comment{}
	// Preload the comment author's information so the username is available
	err := db.Preload("Author").Where("post_id = ?", pid).
		Order("created_at desc, id desc").Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return &comments, nil
}

func (c *Comment) FindCommentByID(db *gorm.DB, cid uint) (*Comment, error) {
	err := db.Preload("Author").Where("id = ?", cid).Take(c).Error
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Comment) UpdateAComment(db *gorm.DB) (*Comment, error) {
	err := db.Model(&Comment{}).Where("id = ?", c.ID).Updates(map[string]interface{}{
		"body":       c.Body,
		"updated_at": time.Now(),
	}).Error
	if err != nil {
		return nil, err
	}
	err = db.Preload("Author").Where("id = ?", c.ID).Take(c).Error
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Comment) DeleteAComment(db *gorm.DB) (int64, error) {
	result := db.Where("id = ?", c.ID).Delete(&Comment{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// When a user is deleted, we also delete the comments that the user had
func (c *Comment) DeleteUserComments(db *gorm.DB, uid uint) (int64, error) {
	result := db.Where("user_id = ?", uid).Delete(&Comment{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
