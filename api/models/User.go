package models

import (
	"errors"
	"html"
	"os"
	"strings"
	"time"

	"Litfeed/api/security"

	"github.com/badoux/checkmail"
	"gorm.io/gorm"
)

type User struct {
	ID             uint      `gorm:"primary_key;autoIncrement" json:"id"`
	Username       string    `gorm:"size:255;not null;unique" json:"username"`
	Email          string    `gorm:"size:100;not null;unique" json:"email"`
	Password       string    `gorm:"size:255;not null" json:"password"`
	AvatarPath     string    `gorm:"size:255;null;" json:"avatar_path"`
	IsAdmin        bool      `gorm:"default:false" json:"is_admin"`
	FollowersCount int64     `gorm:"not null;default:0" json:"followers_count"`
	FollowingCount int64     `gorm:"not null;default:0" json:"following_count"`
	CreatedAt      time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (u *User) HashPassword() error {
	hashedPassword, err := security.Hash(u.Password)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

func (u *User) BeforeSave(tx *gorm.DB) (err error) {
	return u.HashPassword()
}

func (u *User) Prepare() {
	u.Username = html.EscapeString(strings.ToLower(strings.TrimSpace(u.Username)))
	u.Email = html.EscapeString(strings.ToLower(strings.TrimSpace(u.Email)))
	u.CreatedAt = time.Now()
	u.UpdatedAt = time.Now()
}

// AfterFind expands a bare avatar filename into its public S3 URL.
// Already-absolute URLs (and empty paths) pass through untouched.
func (u *User) AfterFind(tx *gorm.DB) (err error) {
	if u.AvatarPath == "" || strings.HasPrefix(u.AvatarPath, "http") {
		return nil
	}
	bucket := os.Getenv("S3_BUCKET")
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "us-east-2"
	}
	key := u.AvatarPath
	if !strings.HasPrefix(key, "avatars/") {
		key = "avatars/" + key
	}
	u.AvatarPath = "https://" + bucket + ".s3." + region + ".amazonaws.com/" + key
	return nil
}

func (u *User) Validate(action string) map[string]string {
	var errorMessages = make(map[string]string)

	switch strings.ToLower(action) {
	case "update":
		if u.Email == "" {
			errorMessages["Required_email"] = "Required Email"
		}
		if u.Email != "" {
			if err := checkmail.ValidateFormat(u.Email); err != nil {
				errorMessages["Invalid_email"] = "Invalid Email"
			}
		}

	case "login":
		if u.Password == "" {
			errorMessages["Required_password"] = "Required Password"
		}
		if u.Email == "" {
			errorMessages["Required_email"] = "Required Email"
		}
		if u.Email != "" {
			if err := checkmail.ValidateFormat(u.Email); err != nil {
				errorMessages["Invalid_email"] = "Invalid Email"
			}
		}
	case "forgotpassword":
		if u.Email == "" {
			errorMessages["Required_email"] = "Required Email"
		}
		if u.Email != "" {
			if err := checkmail.ValidateFormat(u.Email); err != nil {
				errorMessages["Invalid_email"] = "Invalid Email"
			}
		}
	default:
		if u.Username == "" {
			errorMessages["Required_username"] = "Required Username"
		}
		if u.Password == "" {
			errorMessages["Required_password"] = "Required Password"
		}
		if u.Password != "" && len(u.Password) < 6 {
			errorMessages["Invalid_password"] = "Password should be at least 6 characters"
		}
		if u.Email == "" {
			errorMessages["Required_email"] = "Required Email"
		}
		if u.Email != "" {
			if err := checkmail.ValidateFormat(u.Email); err != nil {
				errorMessages["Invalid_email"] = "Invalid Email"
			}
		}
	}
	return errorMessages
}

func (u *User) SaveUser(db *gorm.DB) (*User, error) {
	err := db.Create(&u).Error
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (u *User) FindAllUsers(db *gorm.DB) (*[]User, error) {
	var users []User
	err := db.Order("id asc").Limit(100).Find(&users).Error
	if err != nil {
		return nil, err
	}
	return &users, nil
}

func (u *User) FindUserByID(db *gorm.DB, uid uint) (*User, error) {
	var user User
	err := db.Where("id = ?", uid).Take(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, err
	}
	return &user, nil
}

func (u *User) UpdateAUser(db *gorm.DB, uid uint) (*User, error) {
	fields := map[string]interface{}{
		"email":      u.Email,
		"updated_at": time.Now(),
	}
	if u.Password != "" {
		if err := u.HashPassword(); err != nil {
			return nil, err
		}
		fields["password"] = u.Password
	}

	err := db.Model(&User{}).Where("id = ?", uid).Updates(fields).Error
	if err != nil {
		return nil, err
	}

	err = db.Where("id = ?", uid).Take(&u).Error
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (u *User) UpdateAUserAvatar(db *gorm.DB, uid uint) (*User, error) {
	err := db.Model(&User{}).Where("id = ?", uid).Updates(map[string]interface{}{
		"avatar_path": u.AvatarPath,
		"updated_at":  time.Now(),
	}).Error
	if err != nil {
		return nil, err
	}

	err = db.Where("id = ?", uid).Take(&u).Error
	if err != nil {
		return nil, err
	}
	return u, nil
}

// DeleteAUser removes the user together with everything they own: posts
// (with those posts' comments and likes), their own comments and likes, and
// their follow edges. Runs as a single transaction so a partially deleted
// account can never be observed.
func (u *User) DeleteAUser(db *gorm.DB, uid uint) (int64, error) {
	var rows int64
	err := db.Transaction(func(tx *gorm.DB) error {
		post := Post{}
		if _, err := post.DeleteUserPosts(tx, uid); err != nil {
			return err
		}
		comment := Comment{}
		if _, err := comment.DeleteUserComments(tx, uid); err != nil {
			return err
		}
		like := Like{}
		if _, err := like.DeleteUserLikes(tx, uid); err != nil {
			return err
		}
		if err := DeleteUserFollowEdges(tx, uid); err != nil {
			return err
		}
		result := tx.Where("id = ?", uid).Delete(&User{})
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

// UpdatePassword rewrites the stored hash for the reset-password flow.
func (u *User) UpdatePassword(db *gorm.DB) error {
	if err := u.HashPassword(); err != nil {
		return err
	}

	return db.Model(&User{}).Where("email = ?", u.Email).Updates(map[string]interface{}{
		"password":   u.Password,
		"updated_at": time.Now(),
	}).Error
}
