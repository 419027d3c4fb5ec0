package models

import "time"

// CollectionEntry records how many copies of a card a player holds.
// Quantity is always >= 1; the row is deleted when it would reach zero.
type CollectionEntry struct {
	PlayerNickname string    `gorm:"primaryKey" json:"usuario"`
	CardQRCode     string    `gorm:"primaryKey" json:"qrcode"`
	Quantity       int       `gorm:"not null;default:1" json:"quantidade"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Card Card `gorm:"foreignKey:CardQRCode;references:QRCode" json:"carta,omitempty"`
}
