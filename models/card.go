package models

import "time"

const (
	RarityCommon    = "comum"
	RarityUncommon  = "incomum"
	RarityRare      = "rara"
	RarityEpic      = "épica"
	RarityLegendary = "lendária"
)

var Rarities = []string{RarityCommon, RarityUncommon, RarityRare, RarityEpic, RarityLegendary}

func ValidRarity(rarity string) bool {
	for _, r := range Rarities {
		if r == rarity {
			return true
		}
	}
	return false
}

// Card is a collectible keyed by the identifier printed in its QR code.
type Card struct {
	QRCode      string    `gorm:"primaryKey" json:"qrcode"`
	Name        string    `gorm:"not null" json:"nome"`
	Rarity      string    `gorm:"not null;index" json:"raridade"`
	ImageURL    string    `json:"imagem,omitempty"`
	AudioURL    string    `json:"audio,omitempty"`
	Location    string    `gorm:"index" json:"localizacao,omitempty"`
	Description string    `json:"descricao,omitempty"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// RareCardStory holds the lore text attached to rare cards. At most one
// story per card.
type RareCardStory struct {
	QRCode    string    `gorm:"primaryKey" json:"qrcode"`
	Story     string    `gorm:"not null" json:"historia"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
