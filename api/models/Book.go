package models

import (
	"errors"
	"html"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

type Book struct {
	ID              uint      `gorm:"primary_key;autoIncrement" json:"id"`
	Title           string    `gorm:"size:300;not null;uniqueIndex:idx_books_author_title" json:"title"`
	PublicationYear int       `gorm:"not null" json:"publication_year"`
	Author          Author    `gorm:"foreignKey:AuthorID" json:"author"`
	AuthorID        uint      `gorm:"not null;index;uniqueIndex:idx_books_author_title" json:"author_id"`
	CreatedAt       time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// BookFilter carries the list-endpoint query parameters.
type BookFilter struct {
	PublicationYear *int
	MinYear         *int
	MaxYear         *int
	AuthorID        *uint
	Search          string
	Order           string
}

func (b *Book) Prepare() {
	b.Title = html.EscapeString(strings.TrimSpace(b.Title))
	b.Author = Author{}
	b.CreatedAt = time.Now()
	b.UpdatedAt = time.Now()
}

func (b *Book) Validate() map[string]string {
	var errorMessages = make(map[string]string)

	if b.Title == "" {
		errorMessages["Required_title"] = "Title is required"
	}
	if b.AuthorID == 0 {
		errorMessages["Required_author"] = "Author is required"
	}
	if b.PublicationYear == 0 {
		errorMessages["Required_publication_year"] = "Publication year is required"
	} else if b.PublicationYear > time.Now().Year() {
		errorMessages["Invalid_publication_year"] = "Publication year cannot be in the future"
	} else if b.PublicationYear < 0 {
		errorMessages["Invalid_publication_year"] = "Publication year must be a valid year"
	}
	return errorMessages
}

// SaveBook persists the book after confirming the author reference
// resolves. The existence check and the insert run in one transaction, so a
// book can never land pointing at a missing author.
func (b *Book) SaveBook(db *gorm.DB) (*Book, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&Author{}, b.AuthorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errAuthorNotFound
			}
			return err
		}
		return tx.Create(b).Error
	})
	if err != nil {
		return nil, err
	}
	if err := db.Model(b).Association("Author").Find(&b.Author); err != nil {
		return nil, err
	}
	return b, nil
}

var errAuthorNotFound = errors.New("author not found")

// IsAuthorNotFound reports whether err came from a dangling author reference.
func IsAuthorNotFound(err error) bool {
	return errors.Is(err, errAuthorNotFound)
}

// FindAllBooks lists books under the given filter. Ordering defaults to
// newest first; title and publication_year are accepted with an optional
// "-" prefix. Every ordering carries an id tie-break so pages are stable.
func (b *Book) FindAllBooks(db *gorm.DB, filter BookFilter, limit, offset int) (*[]Book, int64, error) {
	books := []Book{}

	query := db.Model(&Book{})
	if filter.PublicationYear != nil {
		query = query.Where("publication_year = ?", *filter.PublicationYear)
	}
	if filter.MinYear != nil {
		query = query.Where("publication_year >= ?", *filter.MinYear)
	}
	if filter.MaxYear != nil {
		query = query.Where("publication_year <= ?", *filter.MaxYear)
	}
	if filter.AuthorID != nil {
		query = query.Where("author_id = ?", *filter.AuthorID)
	}
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR author_id IN (?)",
			like,
			db.Model(&Author{}).Select("id").Where("LOWER(name) LIKE ?", like),
		)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Author").
		Order(bookOrderClause(filter.Order)).
		Limit(limit).Offset(offset).
		Find(&books).Error
	if err != nil {
		return nil, 0, err
	}
	return &books, total, nil
}

func bookOrderClause(order string) string {
	desc := strings.HasPrefix(order, "-")
	column := strings.TrimPrefix(order, "-")
	switch column {
	case "title", "publication_year":
	default:
		return "created_at desc, id desc"
	}
	if desc {
		return column + " desc, id desc"
	}
	return column + " asc, id asc"
}

func (b *Book) FindBookByID(db *gorm.DB, bid uint) (*Book, error) {
	err := db.Preload("Author").Where("id = ?", bid).Take(b).Error
	if err != nil {
		return nil, err
	}
	return b, nil
}

// UpdateBook writes the given fields and reloads the row with its author.
// Callers decide what goes into the map, which is what makes partial
// updates leave unspecified fields untouched.
func (b *Book) UpdateBook(db *gorm.DB, fields map[string]interface{}) (*Book, error) {
	fields["updated_at"] = time.Now()

	err := db.Transaction(func(tx *gorm.DB) error {
		if aid, ok := fields["author_id"]; ok {
			if err := tx.Select("id").First(&Author{}, aid).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return errAuthorNotFound
				}
				return err
			}
		}
		return tx.Model(&Book{}).Where("id = ?", b.ID).Updates(fields).Error
	})
	if err != nil {
		return nil, err
	}

	err = db.Preload("Author").Where("id = ?", b.ID).Take(b).Error
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Book) DeleteBook(db *gorm.DB) (int64, error) {
	result := db.Where("id = ?", b.ID).Delete(&Book{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// ParseBookFilter builds a BookFilter from raw query values, reporting the
// first parameter that fails to parse.
func ParseBookFilter(get func(string) string) (BookFilter, error) {
	filter := BookFilter{
		Search: strings.TrimSpace(get("search")),
		Order:  strings.TrimSpace(get("order")),
	}

	var year, minYear, maxYear int

	if raw := strings.TrimSpace(get("publication_year")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return filter, errors.New("invalid publication_year")
		}
		year = v
		filter.PublicationYear = &year
	}
	if raw := strings.TrimSpace(get("min_year")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return filter, errors.New("invalid min_year")
		}
		minYear = v
		filter.MinYear = &minYear
	}
	if raw := strings.TrimSpace(get("max_year")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return filter, errors.New("invalid max_year")
		}
		maxYear = v
		filter.MaxYear = &maxYear
	}
	if raw := strings.TrimSpace(get("author_id")); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return filter, errors.New("invalid author_id")
		}
		aid := uint(v)
		filter.AuthorID = &aid
	}
	return filter, nil
}
