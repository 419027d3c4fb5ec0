package services

import (
	"fmt"
	"log"
	"time"

	"card-explorer-backend/models"
	"card-explorer-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TradeService struct {
	DB          *gorm.DB
	Progression *ProgressionService
	Messages    *MessageService
}

func NewTradeService(db *gorm.DB, progression *ProgressionService, messages *MessageService) *TradeService {
	return &TradeService{DB: db, Progression: progression, Messages: messages}
}

func holdsCard(tx *gorm.DB, nickname, qrcode string) (bool, error) {
	var entry models.CollectionEntry
	err := tx.Where("player_nickname = ? AND card_qr_code = ?", nickname, qrcode).First(&entry).Error
	if err == gorm.ErrRecordNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return entry.Quantity >= 1, nil
}

// Propose opens a pending trade after checking both sides hold their card.
// The recipient gets a trade message tied to the proposal.
func (s *TradeService) Propose(proposer, recipient, offered, requested string) (*models.Trade, error) {
	if recipient == "" || offered == "" || requested == "" {
		return nil, utils.Validation("destinatário e cartas são obrigatórios")
	}
	if proposer == recipient {
		return nil, utils.Validation("não é possível propor troca consigo mesmo")
	}

	ok, err := holdsCard(s.DB, proposer, offered)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, utils.Validation("você não possui esta carta para trocar")
	}

	ok, err = holdsCard(s.DB, recipient, requested)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, utils.Validation("o usuário não possui esta carta")
	}

	trade := &models.Trade{
		ID:            uuid.NewString(),
		Proposer:      proposer,
		Recipient:     recipient,
		OfferedCard:   offered,
		RequestedCard: requested,
		Status:        models.TradeStatusPending,
	}
	if err := s.DB.Create(trade).Error; err != nil {
		return nil, err
	}

	text := fmt.Sprintf("🔄 Proposta de troca: oferece %s por %s", offered, requested)
	if _, err := s.Messages.Send(proposer, recipient, text, models.MessageTypeTrade, nil, &trade.ID); err != nil {
		log.Printf("trade %s: failed to send proposal message: %v", trade.ID, err)
	}

	return trade, nil
}

// moveCard shifts one copy from one player to another inside a
// transaction: decrement-or-delete on one side, increment-or-insert on
// the other.
func moveCard(tx *gorm.DB, from, to, qrcode string) error {
	var src models.CollectionEntry
	if err := tx.Where("player_nickname = ? AND card_qr_code = ?", from, qrcode).First(&src).Error; err != nil {
		return err
	}
	if src.Quantity <= 1 {
		if err := tx.Delete(&src).Error; err != nil {
			return err
		}
	} else {
		src.Quantity--
		if err := tx.Save(&src).Error; err != nil {
			return err
		}
	}

	var dst models.CollectionEntry
	err := tx.Where("player_nickname = ? AND card_qr_code = ?", to, qrcode).First(&dst).Error
	if err == gorm.ErrRecordNotFound {
		return tx.Create(&models.CollectionEntry{
			PlayerNickname: to,
			CardQRCode:     qrcode,
			Quantity:       1,
		}).Error
	}
	if err != nil {
		return err
	}
	dst.Quantity++
	return tx.Save(&dst).Error
}

var errTradeCardGone = utils.Conflict("uma das cartas não está mais disponível")

// Accept performs the swap. Only the recipient of a pending trade may
// accept. Holdings are re-checked inside the transaction; if either card
// is gone the trade is marked canceled instead.
func (s *TradeService) Accept(tradeID, nickname string) (*models.Trade, error) {
	var trade models.Trade

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND recipient = ? AND status = ?", tradeID, nickname, models.TradeStatusPending).
			First(&trade).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return utils.NotFound("troca não encontrada ou não autorizada")
			}
			return err
		}

		proposerHolds, err := holdsCard(tx, trade.Proposer, trade.OfferedCard)
		if err != nil {
			return err
		}
		recipientHolds, err := holdsCard(tx, trade.Recipient, trade.RequestedCard)
		if err != nil {
			return err
		}
		if !proposerHolds || !recipientHolds {
			return errTradeCardGone
		}

		if err := moveCard(tx, trade.Proposer, trade.Recipient, trade.OfferedCard); err != nil {
			return err
		}
		if err := moveCard(tx, trade.Recipient, trade.Proposer, trade.RequestedCard); err != nil {
			return err
		}

		if err := s.Progression.RecomputeCardCount(tx, trade.Proposer); err != nil {
			return err
		}
		if err := s.Progression.RecomputeCardCount(tx, trade.Recipient); err != nil {
			return err
		}

		now := time.Now()
		trade.Status = models.TradeStatusAccepted
		trade.RespondedAt = &now
		return tx.Save(&trade).Error
	})

	if err == errTradeCardGone {
		// The swap rolled back; record the cancellation outside it.
		now := time.Now()
		if updErr := s.DB.Model(&models.Trade{}).Where("id = ?", tradeID).
			Updates(map[string]interface{}{
				"status":       models.TradeStatusCanceled,
				"responded_at": now,
			}).Error; updErr != nil {
			log.Printf("trade %s: failed to record cancellation: %v", tradeID, updErr)
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	if _, err := s.Messages.Send(nickname, trade.Proposer,
		"✅ Troca aceita! As cartas foram trocadas com sucesso.",
		models.MessageTypeTrade, nil, &trade.ID); err != nil {
		log.Printf("trade %s: failed to send accept message: %v", trade.ID, err)
	}
	return &trade, nil
}

// Reject closes a pending trade without touching collections.
func (s *TradeService) Reject(tradeID, nickname string) (*models.Trade, error) {
	trade, err := s.resolve(tradeID, nickname, "recipient", models.TradeStatusRejected)
	if err != nil {
		return nil, err
	}
	if _, err := s.Messages.Send(nickname, trade.Proposer, "❌ Troca rejeitada.",
		models.MessageTypeTrade, nil, &trade.ID); err != nil {
		log.Printf("trade %s: failed to send reject message: %v", trade.ID, err)
	}
	return trade, nil
}

// Cancel lets the proposer withdraw a pending trade.
func (s *TradeService) Cancel(tradeID, nickname string) (*models.Trade, error) {
	trade, err := s.resolve(tradeID, nickname, "proposer", models.TradeStatusCanceled)
	if err != nil {
		return nil, err
	}
	if _, err := s.Messages.Send(nickname, trade.Recipient, "🚫 Proposta de troca cancelada.",
		models.MessageTypeTrade, nil, &trade.ID); err != nil {
		log.Printf("trade %s: failed to send cancel message: %v", trade.ID, err)
	}
	return trade, nil
}

func (s *TradeService) resolve(tradeID, nickname, side, status string) (*models.Trade, error) {
	var trade models.Trade
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(side+" = ? AND id = ? AND status = ?", nickname, tradeID, models.TradeStatusPending).
			First(&trade).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return utils.NotFound("troca não encontrada ou não autorizada")
			}
			return err
		}
		now := time.Now()
		trade.Status = status
		trade.RespondedAt = &now
		return tx.Save(&trade).Error
	})
	if err != nil {
		return nil, err
	}
	return &trade, nil
}

// List returns every trade the player is part of, newest first.
func (s *TradeService) List(nickname string) ([]models.Trade, error) {
	var trades []models.Trade
	err := s.DB.Where("proposer = ? OR recipient = ?", nickname, nickname).
		Order("requested_at DESC").
		Find(&trades).Error
	return trades, err
}
