package seed

import (
	"Litfeed/api/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var users = []models.User{
	{
		Username: "steven",
		Email:    "steven@example.com",
		Password: "password",
	},
	{
		Username: "martin",
		Email:    "luther@example.com",
		Password: "password",
	},
}

var authors = []models.Author{
	{Name: "Ursula K. Le Guin"},
	{Name: "Italo Calvino"},
}

var books = []models.Book{
	{Title: "The Dispossessed", PublicationYear: 1974},
	{Title: "Invisible Cities", PublicationYear: 1972},
}

var posts = []models.Post{
	{
		Title:   "Re-reading The Dispossessed",
		Content: "Started my yearly re-read. The first chapter lands differently every time.",
	},
	{
		Title:   "Calvino and the shape of cities",
		Content: "Invisible Cities is the rare book that is better read out of order.",
	},
}

// Load drops and recreates the demo data. Development only.
func Load(db *gorm.DB) {
	err := db.Migrator().DropTable(
		&models.Post{}, &models.Book{}, &models.Author{},
		&models.Like{}, &models.Comment{}, &models.Follow{}, &models.User{},
	)
	if err != nil {
		logrus.Fatalf("cannot drop tables: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{}, &models.Author{}, &models.Book{},
		&models.Post{}, &models.Comment{}, &models.Like{}, &models.Follow{},
	)
	if err != nil {
		logrus.Fatalf("cannot migrate tables: %v", err)
	}

	for i := range users {
		if err := db.Model(&models.User{}).Create(&users[i]).Error; err != nil {
			logrus.Fatalf("cannot seed users table: %v", err)
		}
		posts[i].AuthorID = users[i].ID
		if err := db.Model(&models.Post{}).Create(&posts[i]).Error; err != nil {
			logrus.Fatalf("cannot seed posts table: %v", err)
		}
	}

	for i := range authors {
		if err := db.Model(&models.Author{}).Create(&authors[i]).Error; err != nil {
			logrus.Fatalf("cannot seed authors table: %v", err)
		}
		books[i].AuthorID = authors[i].ID
		if err := db.Model(&models.Book{}).Create(&books[i]).Error; err != nil {
			logrus.Fatalf("cannot seed books table: %v", err)
		}
	}
}
