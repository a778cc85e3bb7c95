package models

import (
	"html"
	"strings"
	"time"

	"gorm.io/gorm"
)

type Post struct {
	ID        uint      `gorm:"primary_key;autoIncrement" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Content   string    `gorm:"text;not null;" json:"content"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"author"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (p *Post) Prepare() {
	p.Title = html.EscapeString(strings.TrimSpace(p.Title))
	p.Content = html.EscapeString(strings.TrimSpace(p.Content))
	p.Author = User{}
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
}

func (p *Post) Validate() map[string]string {
	var errorMessages = make(map[string]string)

	if p.Title == "" {
		errorMessages["Required_title"] = "Title is required"
	}
	if p.Content == "" {
		errorMessages["Required_content"] = "Content is required"
	}
	if p.AuthorID == 0 {
		errorMessages["Required_author"] = "Author is required"
	}
	return errorMessages
}

func (p *Post) SavePost(db *gorm.DB) (*Post, error) {
	if err := db.Create(p).Error; err != nil {
		return nil, err
	}
	if err := db.Model(p).Association("Author").Find(&p.Author); err != nil {
		return nil, err
	}
	return p, nil
}

// FindAllPosts lists posts newest first, id descending on equal timestamps
// so pages stay stable. Search matches title or content, case-insensitively.
func (p *Post) FindAllPosts(db *gorm.DB, search string, limit, offset int) (*[]Post, int64, error) {
	posts := []Post{}

	query := db.Model(&Post{})
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", like, like)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Author").
		Order("created_at desc, id desc").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return &posts, total, nil
}

func (p *Post) FindPostByID(db *gorm.DB, pid uint) (*Post, error) {
	err := db.Preload("Author").Where("id = ?", pid).Take(p).Error
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Post) FindUserPosts(db *gorm.DB, uid uint) (*[]Post, error) {
	var posts []Post
	err := db.Preload("Author").Where("author_id = ?", uid).
		Limit(100).Order("created_at desc, id desc").Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return &posts, nil
}

// UpdatePost writes the given fields and reloads the row with its author.
// Callers decide what goes into the map, which is what makes partial
// updates leave unspecified fields untouched.
func (p *Post) UpdatePost(db *gorm.DB, fields map[string]interface{}) (*Post, error) {
	fields["updated_at"] = time.Now()

	err := db.Model(&Post{}).Where("id = ?", p.ID).Updates(fields).Error
	if err != nil {
		return nil, err
	}
	err = db.Preload("Author").Where("id = ?", p.ID).Take(p).Error
	if err != nil {
		return nil, err
	}
	return p, nil
}

// DeletePost removes the post together with its comments and likes in one
// transaction, so a half-deleted post can never be observed.
func (p *Post) DeletePost(db *gorm.DB) (int64, error) {
	var rows int64
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", p.ID).Delete(&Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", p.ID).Delete(&Like{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", p.ID).Delete(&Post{})
		if result.Error != nil {
			return result.Error
		}
		rows = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return rows, nil
}

// DeleteUserPosts removes every post a user authored, cascading each post's
// comments and likes. Caller is expected to hold the surrounding transaction.
func (p *Post) DeleteUserPosts(tx *gorm.DB, uid uint) (int64, error) {
	var postIDs []uint
	if err := tx.Model(&Post{}).Where("author_id = ?", uid).Pluck("id", &postIDs).Error; err != nil {
		return 0, err
	}
	if len(postIDs) > 0 {
		if err := tx.Where("post_id IN ?", postIDs).Delete(&Comment{}).Error; err != nil {
			return 0, err
		}
		if err := tx.Where("post_id IN ?", postIDs).Delete(&Like{}).Error; err != nil {
			return 0, err
		}
	}
	result := tx.Where("author_id = ?", uid).Delete(&Post{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// FeedForUser assembles the follow feed: posts authored by users the actor
// follows, newest first with id descending as the tie-break. The actor's own
// posts are filtered out explicitly. Computed from the follows table on every
// call, so an unfollow takes effect immediately.
func (p *Post) FeedForUser(db *gorm.DB, uid uint, limit, offset int) (*[]Post, int64, error) {
	posts := []Post{}

	query := db.Model(&Post{}).
		Where("author_id IN (?)",
			db.Model(&Follow{}).Select("followed_id").Where("follower_id = ?", uid)).
		Where("author_id <> ?", uid)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Author").
		Order("created_at desc, id desc").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return &posts, total, nil
}
