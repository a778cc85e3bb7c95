package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type Like struct {
	ID        uint      `gorm:"primary_key;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_likes_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;index;uniqueIndex:idx_likes_user_post" json:"post_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// ErrDoubleLike is returned when a user likes the same post twice.
var ErrDoubleLike = errors.New("double like")

func (l *Like) SaveLike(db *gorm.DB) (*Like, error) {

	// Check if the auth user has liked this post before:
	err := db.Where("post_id = ? AND user_id = ?", l.PostID, l.UserID).First(&l).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// The user has not liked this post before, so save the incoming like:
			err = db.Create(&l).Error
			if err != nil {
				return &Like{}, err
			}
			return l, nil
		}
		return &Like{}, err
	}
	// The user has liked it before
	return &Like{}, ErrDoubleLike
}

// DeleteLike removes the actor's like on a post. RowsAffected tells the
// caller whether there was anything to remove.
func (l *Like) DeleteLike(db *gorm.DB) (int64, error) {
	result := db.Where("post_id = ? AND user_id = ?", l.PostID, l.UserID).Delete(&Like{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (l *Like) GetLikesInfo(db *gorm.DB, pid uint) (*[]Like, error) {
	likes := []Like{}
	err := db.Where("post_id = ?", pid).Order("id asc").Find(&likes).Error
	if err != nil {
		return &[]Like{}, err
	}
	return &likes, nil
}

// When a user is deleted, we also delete the likes that the user had
func (l *Like) DeleteUserLikes(db *gorm.DB, uid uint) (int64, error) {
	result := db.Where("user_id = ?", uid).Delete(&Like{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// When a post is deleted, we also delete the likes that the post had
func (l *Like) DeletePostLikes(db *gorm.DB, pid uint) (int64, error) {
	result := db.Where("post_id = ?", pid).Delete(&Like{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
