package client

import (
	"log"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shahil8848/Quickcart/internal/model"
)

// InitDBClient opens the configured database. An empty databaseURL or one
// ending in .db selects a local sqlite file, anything else is treated as a
// MySQL DSN.
func InitDBClient(databaseURL string) *gorm.DB {
	var (
		db  *gorm.DB
		err error
	)

	if databaseURL == "" || strings.HasSuffix(databaseURL, ".db") {
		if databaseURL == "" {
			databaseURL = "quickcart.db"
		}
		db, err = gorm.Open(sqlite.Open(databaseURL), &gorm.Config{})
	} else {
		db, err = gorm.Open(mysql.Open(databaseURL), &gorm.Config{})
	}
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal(err)
	}

	// Connection pool (important for webhooks)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	return db
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Product{},
		&model.CartItem{},
		&model.Address{},
		&model.Order{},
		&model.OrderItem{},
		&model.WebhookEvent{},
	)
}
