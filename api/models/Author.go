package models

import (
	"html"
	"strings"
	"time"

	"gorm.io/gorm"
)

type Author struct {
	ID        uint      `gorm:"primary_key;autoIncrement" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Books     []Book    `gorm:"foreignKey:AuthorID" json:"books"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (a *Author) Prepare() {
	a.Name = html.EscapeString(strings.TrimSpace(a.Name))
	a.Books = nil
	a.CreatedAt = time.Now()
	a.UpdatedAt = time.Now()
}

func (a *Author) Validate() map[string]string {
	var errorMessages = make(map[string]string)

	if a.Name == "" {
		errorMessages["Required_name"] = "Name is required"
	}
	return errorMessages
}

func (a *Author) SaveAuthor(db *gorm.DB) (*Author, error) {
	if err := db.Create(a).Error; err != nil {
		return nil, err
	}
	return a, nil
}

// FindAllAuthors lists authors ordered by name by default. Search matches
// the name case-insensitively; order accepts name or created_at with an
// optional leading "-" for descending.
func (a *Author) FindAllAuthors(db *gorm.DB, search, order string, limit, offset int) (*[]Author, int64, error) {
	authors := []Author{}

	query := db.Model(&Author{})
	if search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order(authorOrderClause(order)).
		Limit(limit).Offset(offset).
		Find(&authors).Error
	if err != nil {
		return nil, 0, err
	}
	return &authors, total, nil
}

func authorOrderClause(order string) string {
	desc := strings.HasPrefix(order, "-")
	column := strings.TrimPrefix(order, "-")
	switch column {
	case "created_at":
		column = "created_at"
	default:
		column = "name"
	}
	if desc {
		return column + " desc, id desc"
	}
	return column + " asc, id asc"
}

func (a *Author) FindAuthorByID(db *gorm.DB, aid uint) (*Author, error) {
	err := db.Preload("Books").Where("id = ?", aid).Take(a).Error
	if err != nil {
		return nil, err
	}
	return a, nil
}

// UpdateAuthor writes the given fields and reloads the row with its books.
func (a *Author) UpdateAuthor(db *gorm.DB, fields map[string]interface{}) (*Author, error) {
	fields["updated_at"] = time.Now()

	err := db.Model(&Author{}).Where("id = ?", a.ID).Updates(fields).Error
	if err != nil {
		return nil, err
	}
	err = db.Preload("Books").Where("id = ?", a.ID).Take(a).Error
	if err != nil {
		return nil, err
	}
	return a, nil
}

// DeleteAuthor removes the author and every book they own in one
// transaction.
func (a *Author) DeleteAuthor(db *gorm.DB) (int64, error) {
	var rows int64
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("author_id = ?", a.ID).Delete(&Book{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", a.ID).Delete(&Author{})
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
