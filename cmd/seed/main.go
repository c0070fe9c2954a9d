package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/snapzoska/backend/internal/database"
	"github.com/snapzoska/backend/internal/models"
)

// seedUser mirrors the JSON fixture layout: users with an optional nested
// profile and a list of posts.
type seedUser struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Image   string `json:"image"`
	Profile *struct {
		Bio       string   `json:"bio"`
		Location  string   `json:"location"`
		AvatarURL string   `json:"avatarUrl"`
		Interests []string `json:"interests"`
	} `json:"profile"`
	Posts []struct {
		ID       string  `json:"id"`
		ImageURL string  `json:"imageUrl"`
		Caption  *string `json:"caption"`
	} `json:"posts"`
}

func main() {
	fixture := flag.String("data", "seed-data.json", "Path to the seed data file")
	password := flag.String("password", "password123", "Password assigned to all seeded users")
	flag.Parse()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}

	raw, err := os.ReadFile(*fixture)
	if err != nil {
		log.Fatalf("failed to read seed data: %v", err)
	}

	var users []seedUser
	if err := json.Unmarshal(raw, &users); err != nil {
		log.Fatalf("failed to parse seed data: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	for _, item := range users {
		user := models.User{
			ID:           parseOrNewID(item.ID),
			Name:         item.Name,
			Email:        item.Email,
			Image:        item.Image,
			PasswordHash: string(hash),
		}
		if err := db.Create(&user).Error; err != nil {
			log.Fatalf("failed to create user %s: %v", item.Email, err)
		}

		if item.Profile != nil {
			profile := models.Profile{
				ID:        uuid.New(),
				UserID:    user.ID,
				Bio:       item.Profile.Bio,
				Location:  item.Profile.Location,
				AvatarURL: item.Profile.AvatarURL,
				Interests: models.JSONBStringArray(item.Profile.Interests),
			}
			if err := db.Create(&profile).Error; err != nil {
				log.Fatalf("failed to create profile for %s: %v", item.Email, err)
			}
		}

		for i, p := range item.Posts {
			post := models.Post{
				ID:       parseOrNewID(p.ID),
				UserID:   user.ID,
				ImageURL: p.ImageURL,
				Caption:  p.Caption,
				// Stagger timestamps so the feed has a stable order
				CreatedAt: time.Now().Add(-time.Duration(i) * time.Minute),
			}
			if err := db.Create(&post).Error; err != nil {
				log.Fatalf("failed to create post for %s: %v", item.Email, err)
			}
		}
	}

	log.Println("Database seeded successfully")
}

func parseOrNewID(s string) uuid.UUID {
	if id, err := uuid.Parse(s); err == nil {
		return id
	}
	return uuid.New()
}
