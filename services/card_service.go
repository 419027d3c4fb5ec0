package services

import (
	"card-explorer-backend/models"
	"card-explorer-backend/utils"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type CardService struct {
	DB *gorm.DB
}

func NewCardService(db *gorm.DB) *CardService {
	return &CardService{DB: db}
}

// Create inserts a card. When no QR code is supplied one is derived from
// the name so educators can print it straight away.
func (s *CardService) Create(card *models.Card) (*models.Card, error) {
	if card.Name == "" {
		return nil, utils.Validation("nome é obrigatório")
	}
	if !models.ValidRarity(card.Rarity) {
		return nil, utils.Validation("raridade inválida")
	}
	if card.QRCode == "" {
		card.QRCode = slug.Make(card.Name) + "-" + uuid.NewString()[:8]
	}

	var count int64
	if err := s.DB.Model(&models.Card{}).Where("qr_code = ?", card.QRCode).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, utils.Conflict("já existe uma carta com este qrcode")
	}

	if err := s.DB.Create(card).Error; err != nil {
		return nil, err
	}
	return card, nil
}

func (s *CardService) Get(qrcode string) (*models.Card, error) {
	var card models.Card
	if err := s.DB.Where("qr_code = ?", qrcode).First(&card).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.NotFound("carta não encontrada")
		}
		return nil, err
	}
	return &card, nil
}

// List filters by rarity (exact) and location (substring). limit <= 0
// means no limit.
func (s *CardService) List(rarity, location string, limit int) ([]models.Card, error) {
	q := s.DB.Order("name ASC")
	if rarity != "" {
		if !models.ValidRarity(rarity) {
			return nil, utils.Validation("raridade inválida")
		}
		q = q.Where("rarity = ?", rarity)
	}
	if location != "" {
		q = q.Where("location LIKE ?", "%"+location+"%")
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var cards []models.Card
	if err := q.Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

// CardUpdate is the partial-update payload; nil fields are untouched.
type CardUpdate struct {
	Name        *string  `json:"nome"`
	Rarity      *string  `json:"raridade"`
	ImageURL    *string  `json:"imagem"`
	AudioURL    *string  `json:"audio"`
	Location    *string  `json:"localizacao"`
	Description *string  `json:"descricao"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

func (s *CardService) Update(qrcode string, upd CardUpdate) (*models.Card, error) {
	card, err := s.Get(qrcode)
	if err != nil {
		return nil, err
	}

	changed := false
	if upd.Name != nil {
		card.Name = *upd.Name
		changed = true
	}
	if upd.Rarity != nil {
		if !models.ValidRarity(*upd.Rarity) {
			return nil, utils.Validation("raridade inválida")
		}
		card.Rarity = *upd.Rarity
		changed = true
	}
	if upd.ImageURL != nil {
		card.ImageURL = *upd.ImageURL
		changed = true
	}
	if upd.AudioURL != nil {
		card.AudioURL = *upd.AudioURL
		changed = true
	}
	if upd.Location != nil {
		card.Location = *upd.Location
		changed = true
	}
	if upd.Description != nil {
		card.Description = *upd.Description
		changed = true
	}
	if upd.Latitude != nil {
		card.Latitude = upd.Latitude
		changed = true
	}
	if upd.Longitude != nil {
		card.Longitude = upd.Longitude
		changed = true
	}
	if !changed {
		return nil, utils.Validation("nenhum campo para atualizar")
	}

	if err := s.DB.Save(card).Error; err != nil {
		return nil, err
	}
	return card, nil
}

// Delete removes the card and its story, if any.
func (s *CardService) Delete(qrcode string) error {
	card, err := s.Get(qrcode)
	if err != nil {
		return err
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("qr_code = ?", qrcode).Delete(&models.RareCardStory{}).Error; err != nil {
			return err
		}
		return tx.Delete(card).Error
	})
}

// AttachMedia stores uploaded media URLs on the card. Empty strings leave
// the current value alone.
func (s *CardService) AttachMedia(qrcode, imageURL, audioURL string) (*models.Card, error) {
	card, err := s.Get(qrcode)
	if err != nil {
		return nil, err
	}
	if imageURL != "" {
		card.ImageURL = imageURL
	}
	if audioURL != "" {
		card.AudioURL = audioURL
	}
	if err := s.DB.Save(card).Error; err != nil {
		return nil, err
	}
	return card, nil
}

func (s *CardService) CreateStory(qrcode, story string) (*models.RareCardStory, error) {
	if story == "" {
		return nil, utils.Validation("história é obrigatória")
	}
	if _, err := s.Get(qrcode); err != nil {
		return nil, err
	}

	var count int64
	if err := s.DB.Model(&models.RareCardStory{}).Where("qr_code = ?", qrcode).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, utils.Conflict("esta carta já possui uma história")
	}

	rec := &models.RareCardStory{QRCode: qrcode, Story: story}
	if err := s.DB.Create(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *CardService) GetStory(qrcode string) (*models.RareCardStory, error) {
	var rec models.RareCardStory
	if err := s.DB.Where("qr_code = ?", qrcode).First(&rec).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.NotFound("história não encontrada")
		}
		return nil, err
	}
	return &rec, nil
}

func (s *CardService) ListStories() ([]models.RareCardStory, error) {
	var recs []models.RareCardStory
	err := s.DB.Order("qr_code ASC").Find(&recs).Error
	return recs, err
}

func (s *CardService) UpdateStory(qrcode, story string) (*models.RareCardStory, error) {
	if story == "" {
		return nil, utils.Validation("história é obrigatória")
	}
	rec, err := s.GetStory(qrcode)
	if err != nil {
		return nil, err
	}
	rec.Story = story
	if err := s.DB.Save(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *CardService) DeleteStory(qrcode string) error {
	rec, err := s.GetStory(qrcode)
	if err != nil {
		return err
	}
	return s.DB.Delete(rec).Error
}
