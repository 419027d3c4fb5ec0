package models

import "time"

const (
	TradeStatusPending  = "pendente"
	TradeStatusAccepted = "aceita"
	TradeStatusRejected = "rejeitada"
	TradeStatusCanceled = "cancelada"
)

// Trade is a card-for-card swap proposal. Status only ever moves from
// "pendente" to one of the terminal states; RespondedAt is set on that
// transition.
type Trade struct {
	ID            string     `gorm:"primaryKey;type:uuid" json:"id"`
	Proposer      string     `gorm:"not null;index" json:"solicitante"`
	Recipient     string     `gorm:"not null;index" json:"destinatario"`
	OfferedCard   string     `gorm:"not null" json:"cartaoferecida"`
	RequestedCard string     `gorm:"not null" json:"cartasolicitada"`
	Status        string     `gorm:"not null;default:pendente" json:"status"`
	RequestedAt   time.Time  `gorm:"autoCreateTime" json:"datasolicitacao"`
	RespondedAt   *time.Time `json:"dataresposta,omitempty"`
}
