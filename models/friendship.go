package models

import "time"

const (
	FriendshipPending  = "pendente"
	FriendshipAccepted = "aceito"
	FriendshipRejected = "recusado"
)

// Friendship holds one row per pair of players, regardless of which side
// asked. Removal deletes the row outright so a new request can be sent
// later.
type Friendship struct {
	ID          string     `gorm:"primaryKey;type:uuid" json:"id"`
	Requester   string     `gorm:"not null;index" json:"solicitante"`
	Recipient   string     `gorm:"not null;index" json:"destinatario"`
	Status      string     `gorm:"not null;default:pendente" json:"status"`
	RequestedAt time.Time  `gorm:"autoCreateTime" json:"data_solicitacao"`
	AcceptedAt  *time.Time `json:"data_aceite,omitempty"`
}
