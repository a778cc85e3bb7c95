package models

import (
	"html"
	"strings"
	"time"

	"gorm.io/gorm"
)

// ResetPassword is one outstanding password-reset token, emailed to the
// user and consumed when the password is changed.
type ResetPassword struct {
	ID        uint      `gorm:"primary_key;autoIncrement" json:"id"`
	Email     string    `gorm:"size:100;not null;" json:"email"`
	Token     string    `gorm:"size:255;not null;" json:"token"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (rp *ResetPassword) Prepare() {
	rp.Email = html.EscapeString(strings.ToLower(strings.TrimSpace(rp.Email)))
	rp.Token = html.EscapeString(strings.TrimSpace(rp.Token))
	rp.CreatedAt = time.Now()
}

func (rp *ResetPassword) SaveDetails(db *gorm.DB) (*ResetPassword, error) {
	err := db.Create(&rp).Error
	if err != nil {
		return nil, err
	}
	return rp, nil
}

func (rp *ResetPassword) DeleteDetails(db *gorm.DB) (int64, error) {
	result := db.Where("id = ?", rp.ID).Delete(&ResetPassword{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
