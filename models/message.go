package models

import "time"

const (
	MessageTypeText  = "texto"
	MessageTypeCard  = "carta"
	MessageTypeTrade = "troca"
)

func ValidMessageType(t string) bool {
	return t == MessageTypeText || t == MessageTypeCard || t == MessageTypeTrade
}

// Message is append-only chat history between two players. Card and
// trade references are set only for the matching message type.
type Message struct {
	ID         string    `gorm:"primaryKey;type:uuid" json:"id"`
	Sender     string    `gorm:"not null;index" json:"remetente"`
	Recipient  string    `gorm:"not null;index" json:"destinatario"`
	Text       string    `gorm:"not null" json:"texto"`
	Type       string    `gorm:"not null;default:texto" json:"tipo"`
	CardQRCode *string   `json:"carta_id,omitempty"`
	TradeID    *string   `json:"troca_id,omitempty"`
	SentAt     time.Time `gorm:"autoCreateTime;index" json:"datahora"`
}

// Chat marks that a conversation exists between two players. User1/User2
// are stored in lexicographic order so each pair has exactly one row.
type Chat struct {
	User1     string    `gorm:"primaryKey" json:"usuario1"`
	User2     string    `gorm:"primaryKey" json:"usuario2"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// ChatKey returns the pair in storage order.
func ChatKey(a, b string) (string, string) {
	if a > b {
		return b, a
	}
	return a, b
}
