package services

import (
	"card-explorer-backend/models"
	"card-explorer-backend/utils"

	"gorm.io/gorm"
)

type CollectionService struct {
	DB          *gorm.DB
	Progression *ProgressionService
}

func NewCollectionService(db *gorm.DB, progression *ProgressionService) *CollectionService {
	return &CollectionService{DB: db, Progression: progression}
}

// AddCardResult is the payload of a successful add. XPInfo is set only
// when this was the player's first copy of the card.
type AddCardResult struct {
	Entry  models.CollectionEntry `json:"entrada"`
	XPInfo *XPInfo                `json:"xp_info,omitempty"`
}

func (s *CollectionService) List(nickname string) ([]models.CollectionEntry, error) {
	var entries []models.CollectionEntry
	err := s.DB.Preload("Card").
		Where("player_nickname = ?", nickname).
		Order("card_qr_code ASC").
		Find(&entries).Error
	return entries, err
}

// AddCard upserts a collection entry and, for a first copy, grants rarity
// XP and refreshes the card counter. All of it commits or none of it.
func (s *CollectionService) AddCard(nickname, qrcode string, quantity int) (*AddCardResult, error) {
	if quantity < 1 {
		return nil, utils.Validation("quantidade deve ser maior que 0")
	}

	var card models.Card
	if err := s.DB.Where("qr_code = ?", qrcode).First(&card).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.NotFound("carta não encontrada")
		}
		return nil, err
	}

	var profile models.PlayerProfile
	if err := s.DB.Where("nickname = ?", nickname).First(&profile).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.NotFound("usuário não encontrado")
		}
		return nil, err
	}

	result := &AddCardResult{}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var entry models.CollectionEntry
		err := tx.Where("player_nickname = ? AND card_qr_code = ?", nickname, qrcode).First(&entry).Error

		isNewCard := err == gorm.ErrRecordNotFound
		if err != nil && !isNewCard {
			return err
		}

		if isNewCard {
			entry = models.CollectionEntry{
				PlayerNickname: nickname,
				CardQRCode:     qrcode,
				Quantity:       quantity,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		} else {
			entry.Quantity += quantity
			if err := tx.Save(&entry).Error; err != nil {
				return err
			}
		}

		if err := s.Progression.RecomputeCardCount(tx, nickname); err != nil {
			return err
		}

		if isNewCard {
			info, err := s.Progression.GrantXP(tx, nickname, XPForRarity(card.Rarity))
			if err != nil {
				return err
			}
			info.Rarity = card.Rarity
			result.XPInfo = info
		}

		result.Entry = entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RemoveCard decrements the entry. Removing as many copies as held, or
// more, deletes the row outright.
func (s *CollectionService) RemoveCard(nickname, qrcode string, quantity int) (*models.CollectionEntry, error) {
	if quantity < 1 {
		return nil, utils.Validation("quantidade deve ser maior que 0")
	}

	var remaining *models.CollectionEntry
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var entry models.CollectionEntry
		if err := tx.Where("player_nickname = ? AND card_qr_code = ?", nickname, qrcode).First(&entry).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return utils.NotFound("carta não encontrada na coleção")
			}
			return err
		}

		if quantity >= entry.Quantity {
			if err := tx.Delete(&entry).Error; err != nil {
				return err
			}
		} else {
			entry.Quantity -= quantity
			if err := tx.Save(&entry).Error; err != nil {
				return err
			}
			remaining = &entry
		}

		return s.Progression.RecomputeCardCount(tx, nickname)
	})
	if err != nil {
		return nil, err
	}
	return remaining, nil
}

// CollectionStats summarizes a player's collection.
type CollectionStats struct {
	UniqueCards int            `json:"cartas_unicas"`
	TotalCopies int            `json:"total_copias"`
	ByRarity    map[string]int `json:"por_raridade"`
}

func (s *CollectionService) Stats(nickname string) (*CollectionStats, error) {
	var entries []models.CollectionEntry
	if err := s.DB.Preload("Card").Where("player_nickname = ?", nickname).Find(&entries).Error; err != nil {
		return nil, err
	}

	stats := &CollectionStats{ByRarity: map[string]int{}}
	for _, e := range entries {
		stats.UniqueCards++
		stats.TotalCopies += e.Quantity
		stats.ByRarity[e.Card.Rarity]++
	}
	return stats, nil
}

// Verify returns the entry for one card, or not found.
func (s *CollectionService) Verify(nickname, qrcode string) (*models.CollectionEntry, error) {
	var entry models.CollectionEntry
	err := s.DB.Preload("Card").
		Where("player_nickname = ? AND card_qr_code = ?", nickname, qrcode).
		First(&entry).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.NotFound("carta não encontrada na coleção")
		}
		return nil, err
	}
	return &entry, nil
}

// Clear drops the whole collection and zeroes the card count.
func (s *CollectionService) Clear(nickname string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("player_nickname = ?", nickname).Delete(&models.CollectionEntry{}).Error; err != nil {
			return err
		}
		return s.Progression.RecomputeCardCount(tx, nickname)
	})
}
