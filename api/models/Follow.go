package models

import (
	"time"

	"gorm.io/gorm"
)

type Follow struct {
	ID         uint      `gorm:"primary_key;autoIncrement" json:"id"`
	FollowerID uint      `gorm:"not null;index;uniqueIndex:idx_follows_unique;index:idx_follows_follower_created,priority:1" json:"follower_id"`
	FollowedID uint      `gorm:"not null;index;uniqueIndex:idx_follows_unique;index:idx_follows_followed_created,priority:1" json:"followed_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index:idx_follows_followed_created,priority:2;index:idx_follows_follower_created,priority:2" json:"created_at"`
}

// DeleteUserFollowEdges drops every edge touching the user and settles the
// counters of the users on the other end. The decrement is written as a
// CASE so it runs on both Postgres and the SQLite test database.
func DeleteUserFollowEdges(tx *gorm.DB, userID uint) error {
	if err := tx.Exec(
		"UPDATE users SET followers_count = CASE WHEN followers_count > 0 THEN followers_count - 1 ELSE 0 END WHERE id IN (SELECT followed_id FROM follows WHERE follower_id = ?)",
		userID,
	).Error; err != nil {
		return err
	}
	if err := tx.Exec(
		"UPDATE users SET following_count = CASE WHEN following_count > 0 THEN following_count - 1 ELSE 0 END WHERE id IN (SELECT follower_id FROM follows WHERE followed_id = ?)",
		userID,
	).Error; err != nil {
		return err
	}
	return tx.Where("follower_id = ? OR followed_id = ?", userID, userID).
		Delete(&Follow{}).Error
}
