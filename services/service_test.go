package services

import (
	"testing"

	"card-explorer-backend/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Person{},
		&models.PlayerProfile{},
		&models.Educator{},
		&models.Card{},
		&models.RareCardStory{},
		&models.CollectionEntry{},
		&models.Trade{},
		&models.Friendship{},
		&models.Message{},
		&models.Chat{},
		&models.Mission{},
		&models.MissionQuantityGoal{},
		&models.MissionRarityGoal{},
		&models.QuantityParticipation{},
		&models.RarityParticipation{},
	); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}

func seedPlayer(t *testing.T, db *gorm.DB, nickname string) {
	t.Helper()
	person := models.Person{Nickname: nickname, Email: nickname + "@test.dev", Role: models.RolePlayer}
	if err := db.Create(&person).Error; err != nil {
		t.Fatalf("failed to seed person %s: %v", nickname, err)
	}
	profile := models.PlayerProfile{Nickname: nickname, Ranking: "Iniciante", Level: 1}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("failed to seed profile %s: %v", nickname, err)
	}
}

func seedCard(t *testing.T, db *gorm.DB, qrcode, rarity string) {
	t.Helper()
	card := models.Card{QRCode: qrcode, Name: "Carta " + qrcode, Rarity: rarity}
	if err := db.Create(&card).Error; err != nil {
		t.Fatalf("failed to seed card %s: %v", qrcode, err)
	}
}

func giveCard(t *testing.T, db *gorm.DB, nickname, qrcode string, quantity int) {
	t.Helper()
	entry := models.CollectionEntry{PlayerNickname: nickname, CardQRCode: qrcode, Quantity: quantity}
	if err := db.Create(&entry).Error; err != nil {
		t.Fatalf("failed to seed collection entry: %v", err)
	}
}
