package services

import (
	"card-explorer-backend/models"
	"card-explorer-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageService struct {
	DB *gorm.DB
}

func NewMessageService(db *gorm.DB) *MessageService {
	return &MessageService{DB: db}
}

// Send appends a message and makes sure the chat row for the pair exists.
func (s *MessageService) Send(sender, recipient, text, msgType string, cardQR, tradeID *string) (*models.Message, error) {
	if recipient == "" || text == "" {
		return nil, utils.Validation("destinatário e texto são obrigatórios")
	}
	if msgType == "" {
		msgType = models.MessageTypeText
	}
	if !models.ValidMessageType(msgType) {
		return nil, utils.Validation("tipo deve ser 'texto', 'carta' ou 'troca'")
	}

	var exists int64
	if err := s.DB.Model(&models.Person{}).Where("nickname = ?", recipient).Count(&exists).Error; err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, utils.NotFound("destinatário não encontrado")
	}

	msg := &models.Message{
		ID:         uuid.NewString(),
		Sender:     sender,
		Recipient:  recipient,
		Text:       text,
		Type:       msgType,
		CardQRCode: cardQR,
		TradeID:    tradeID,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		u1, u2 := models.ChatKey(sender, recipient)
		var chat models.Chat
		if err := tx.Where("user1 = ? AND user2 = ?", u1, u2).First(&chat).Error; err != nil {
			if err != gorm.ErrRecordNotFound {
				return err
			}
			if err := tx.Create(&models.Chat{User1: u1, User2: u2}).Error; err != nil {
				return err
			}
		}
		return tx.Create(msg).Error
	})
	if err != nil {
		return nil, err
	}
	return msg, nil
}

// Inbox lists messages received by the player, newest first. limit <= 0
// means no limit.
func (s *MessageService) Inbox(nickname string, limit int) ([]models.Message, error) {
	q := s.DB.Where("recipient = ?", nickname).Order("sent_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var msgs []models.Message
	err := q.Find(&msgs).Error
	return msgs, err
}

// Sent lists messages the player sent, newest first.
func (s *MessageService) Sent(nickname string, limit int) ([]models.Message, error) {
	q := s.DB.Where("sender = ?", nickname).Order("sent_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var msgs []models.Message
	err := q.Find(&msgs).Error
	return msgs, err
}

// Conversation lists both directions between two players, newest first.
func (s *MessageService) Conversation(a, b string, limit int) ([]models.Message, error) {
	q := s.DB.Where("(sender = ? AND recipient = ?) OR (sender = ? AND recipient = ?)", a, b, b, a).
		Order("sent_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var msgs []models.Message
	err := q.Find(&msgs).Error
	return msgs, err
}

// Chats lists every chat the player takes part in.
func (s *MessageService) Chats(nickname string) ([]models.Chat, error) {
	var chats []models.Chat
	err := s.DB.Where("user1 = ? OR user2 = ?", nickname, nickname).
		Order("created_at DESC").
		Find(&chats).Error
	return chats, err
}

// OpenChat creates the chat row for a pair if it does not exist yet.
func (s *MessageService) OpenChat(a, b string) (*models.Chat, error) {
	if a == b {
		return nil, utils.Validation("não é possível abrir um chat consigo mesmo")
	}
	u1, u2 := models.ChatKey(a, b)

	var chat models.Chat
	err := s.DB.Where("user1 = ? AND user2 = ?", u1, u2).First(&chat).Error
	if err == nil {
		return &chat, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	chat = models.Chat{User1: u1, User2: u2}
	if err := s.DB.Create(&chat).Error; err != nil {
		return nil, err
	}
	return &chat, nil
}

// GetChat finds the chat between two players.
func (s *MessageService) GetChat(a, b string) (*models.Chat, error) {
	u1, u2 := models.ChatKey(a, b)
	var chat models.Chat
	if err := s.DB.Where("user1 = ? AND user2 = ?", u1, u2).First(&chat).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.NotFound("chat não encontrado")
		}
		return nil, err
	}
	return &chat, nil
}

// DeleteChat removes the chat row. Message history stays; it is
// append-only.
func (s *MessageService) DeleteChat(a, b string) error {
	u1, u2 := models.ChatKey(a, b)
	res := s.DB.Where("user1 = ? AND user2 = ?", u1, u2).Delete(&models.Chat{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.NotFound("chat não encontrado")
	}
	return nil
}
