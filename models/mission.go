package models

import "time"

const (
	MissionTypeQuantity = "quantidade"
	MissionTypeRarity   = "raridade"

	MissionStatusScheduled = "agendada"
	MissionStatusActive    = "ativa"
	MissionStatusClosed    = "encerrada"
)

func ValidMissionType(t string) bool {
	return t == MissionTypeQuantity || t == MissionTypeRarity
}

// Mission is an educator-defined challenge. The scheduler flips Status as
// StartsAt/EndsAt pass.
type Mission struct {
	Code      uint       `gorm:"primaryKey;autoIncrement" json:"codigo"`
	Type      string     `gorm:"not null" json:"tipo"`
	Educator  string     `gorm:"not null;index" json:"educador"`
	StartsAt  time.Time  `gorm:"not null" json:"datainicio"`
	EndsAt    *time.Time `json:"datafim,omitempty"`
	Status    string     `gorm:"not null;default:agendada" json:"status"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// MissionQuantityGoal sets the card total a "quantidade" mission asks for.
type MissionQuantityGoal struct {
	MissionCode   uint `gorm:"primaryKey" json:"codigo"`
	TotalRequired int  `gorm:"not null" json:"qtdtotal"`
}

// MissionRarityGoal names one target card of a "raridade" mission. A
// mission may list several.
type MissionRarityGoal struct {
	MissionCode uint   `gorm:"primaryKey" json:"codigo"`
	CardQRCode  string `gorm:"primaryKey" json:"qrcode"`
}

// QuantityParticipation tracks a player's running total in a quantity
// mission.
type QuantityParticipation struct {
	PlayerNickname string    `gorm:"primaryKey" json:"usuario"`
	MissionCode    uint      `gorm:"primaryKey" json:"codigo"`
	Collected      int       `gorm:"not null;default:0" json:"qtdcoletada"`
	JoinedAt       time.Time `gorm:"autoCreateTime" json:"data_entrada"`
}

// RarityParticipation tracks whether a player finished a rarity mission.
type RarityParticipation struct {
	PlayerNickname string    `gorm:"primaryKey" json:"usuario"`
	MissionCode    uint      `gorm:"primaryKey" json:"codigo"`
	Completed      bool      `gorm:"not null;default:false" json:"concluida"`
	JoinedAt       time.Time `gorm:"autoCreateTime" json:"data_entrada"`
}
