package services

import (
	"time"

	"card-explorer-backend/models"
	"card-explorer-backend/utils"

	"gorm.io/gorm"
)

type MissionService struct {
	DB *gorm.DB
}

func NewMissionService(db *gorm.DB) *MissionService {
	return &MissionService{DB: db}
}

// Create inserts a mission owned by an educator. StartsAt defaults to now;
// a future StartsAt leaves the mission "agendada" until the scheduler
// activates it.
func (s *MissionService) Create(m *models.Mission) (*models.Mission, error) {
	if !models.ValidMissionType(m.Type) {
		return nil, utils.Validation("tipo deve ser 'quantidade' ou 'raridade'")
	}

	var count int64
	if err := s.DB.Model(&models.Educator{}).Where("nickname = ?", m.Educator).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, utils.NotFound("educador não encontrado")
	}

	now := time.Now()
	if m.StartsAt.IsZero() {
		m.StartsAt = now
	}
	if m.EndsAt != nil && !m.EndsAt.After(m.StartsAt) {
		return nil, utils.Validation("datafim deve ser posterior a datainicio")
	}

	if m.StartsAt.After(now) {
		m.Status = models.MissionStatusScheduled
	} else {
		m.Status = models.MissionStatusActive
	}

	if err := s.DB.Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MissionService) Get(code uint) (*models.Mission, error) {
	var m models.Mission
	if err := s.DB.Where("code = ?", code).First(&m).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.NotFound("missão não encontrada")
		}
		return nil, err
	}
	return &m, nil
}

// List returns missions, optionally filtered by status.
func (s *MissionService) List(status string) ([]models.Mission, error) {
	q := s.DB.Order("starts_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var missions []models.Mission
	err := q.Find(&missions).Error
	return missions, err
}

// MissionUpdate carries the mutable fields; nil leaves a field alone.
type MissionUpdate struct {
	EndsAt   *time.Time `json:"datafim"`
	Educator *string    `json:"educador"`
}

func (s *MissionService) Update(code uint, upd MissionUpdate) (*models.Mission, error) {
	m, err := s.Get(code)
	if err != nil {
		return nil, err
	}

	changed := false
	if upd.EndsAt != nil {
		if !upd.EndsAt.After(m.StartsAt) {
			return nil, utils.Validation("datafim deve ser posterior a datainicio")
		}
		m.EndsAt = upd.EndsAt
		changed = true
	}
	if upd.Educator != nil {
		var count int64
		if err := s.DB.Model(&models.Educator{}).Where("nickname = ?", *upd.Educator).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, utils.NotFound("educador não encontrado")
		}
		m.Educator = *upd.Educator
		changed = true
	}
	if !changed {
		return nil, utils.Validation("nenhum campo para atualizar")
	}

	if err := s.DB.Save(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

// Delete removes the mission and everything hanging off it.
func (s *MissionService) Delete(code uint) error {
	m, err := s.Get(code)
	if err != nil {
		return err
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("mission_code = ?", code).Delete(&models.MissionQuantityGoal{}).Error; err != nil {
			return err
		}
		if err := tx.Where("mission_code = ?", code).Delete(&models.MissionRarityGoal{}).Error; err != nil {
			return err
		}
		if err := tx.Where("mission_code = ?", code).Delete(&models.QuantityParticipation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("mission_code = ?", code).Delete(&models.RarityParticipation{}).Error; err != nil {
			return err
		}
		return tx.Delete(m).Error
	})
}

// SetQuantityGoal upserts the card total of a "quantidade" mission.
func (s *MissionService) SetQuantityGoal(code uint, total int) (*models.MissionQuantityGoal, error) {
	if total < 1 {
		return nil, utils.Validation("qtdtotal deve ser maior que 0")
	}
	m, err := s.Get(code)
	if err != nil {
		return nil, err
	}
	if m.Type != models.MissionTypeQuantity {
		return nil, utils.Validation("missão não é do tipo 'quantidade'")
	}

	goal := &models.MissionQuantityGoal{MissionCode: code, TotalRequired: total}
	var existing models.MissionQuantityGoal
	err = s.DB.Where("mission_code = ?", code).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		if err := s.DB.Create(goal).Error; err != nil {
			return nil, err
		}
		return goal, nil
	}
	if err != nil {
		return nil, err
	}

	existing.TotalRequired = total
	if err := s.DB.Save(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

func (s *MissionService) GetQuantityGoal(code uint) (*models.MissionQuantityGoal, error) {
	var goal models.MissionQuantityGoal
	if err := s.DB.Where("mission_code = ?", code).First(&goal).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.NotFound("meta não encontrada")
		}
		return nil, err
	}
	return &goal, nil
}

// AddRarityGoal adds one target card to a "raridade" mission.
func (s *MissionService) AddRarityGoal(code uint, qrcode string) (*models.MissionRarityGoal, error) {
	m, err := s.Get(code)
	if err != nil {
		return nil, err
	}
	if m.Type != models.MissionTypeRarity {
		return nil, utils.Validation("missão não é do tipo 'raridade'")
	}

	var count int64
	if err := s.DB.Model(&models.Card{}).Where("qr_code = ?", qrcode).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, utils.NotFound("carta não encontrada")
	}

	if err := s.DB.Model(&models.MissionRarityGoal{}).
		Where("mission_code = ? AND card_qr_code = ?", code, qrcode).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, utils.Conflict("carta já é alvo desta missão")
	}

	goal := &models.MissionRarityGoal{MissionCode: code, CardQRCode: qrcode}
	if err := s.DB.Create(goal).Error; err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *MissionService) ListRarityGoals(code uint) ([]models.MissionRarityGoal, error) {
	var goals []models.MissionRarityGoal
	err := s.DB.Where("mission_code = ?", code).Find(&goals).Error
	return goals, err
}

func (s *MissionService) RemoveRarityGoal(code uint, qrcode string) error {
	res := s.DB.Where("mission_code = ? AND card_qr_code = ?", code, qrcode).
		Delete(&models.MissionRarityGoal{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.NotFound("carta alvo não encontrada")
	}
	return nil
}

// Join enrolls a player in a mission, picking the participation table from
// the mission type. Only active missions accept new participants.
func (s *MissionService) Join(code uint, nickname string) (interface{}, error) {
	m, err := s.Get(code)
	if err != nil {
		return nil, err
	}
	if m.Status != models.MissionStatusActive {
		return nil, utils.Validation("missão não está ativa")
	}

	var players int64
	if err := s.DB.Model(&models.PlayerProfile{}).Where("nickname = ?", nickname).Count(&players).Error; err != nil {
		return nil, err
	}
	if players == 0 {
		return nil, utils.NotFound("usuário não encontrado")
	}

	if m.Type == models.MissionTypeQuantity {
		var count int64
		if err := s.DB.Model(&models.QuantityParticipation{}).
			Where("mission_code = ? AND player_nickname = ?", code, nickname).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, utils.Conflict("usuário já participa desta missão")
		}
		p := &models.QuantityParticipation{PlayerNickname: nickname, MissionCode: code}
		if err := s.DB.Create(p).Error; err != nil {
			return nil, err
		}
		return p, nil
	}

	var count int64
	if err := s.DB.Model(&models.RarityParticipation{}).
		Where("mission_code = ? AND player_nickname = ?", code, nickname).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, utils.Conflict("usuário já participa desta missão")
	}
	p := &models.RarityParticipation{PlayerNickname: nickname, MissionCode: code}
	if err := s.DB.Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// Leave drops the player's participation row.
func (s *MissionService) Leave(code uint, nickname string) error {
	m, err := s.Get(code)
	if err != nil {
		return err
	}

	var res *gorm.DB
	if m.Type == models.MissionTypeQuantity {
		res = s.DB.Where("mission_code = ? AND player_nickname = ?", code, nickname).
			Delete(&models.QuantityParticipation{})
	} else {
		res = s.DB.Where("mission_code = ? AND player_nickname = ?", code, nickname).
			Delete(&models.RarityParticipation{})
	}
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.NotFound("participação não encontrada")
	}
	return nil
}

// Progress updates the player's state: the running total for quantity
// missions, the completion flag for rarity missions.
func (s *MissionService) Progress(code uint, nickname string, collected *int, completed *bool) (interface{}, error) {
	m, err := s.Get(code)
	if err != nil {
		return nil, err
	}

	if m.Type == models.MissionTypeQuantity {
		if collected == nil || *collected < 0 {
			return nil, utils.Validation("qtdcoletada inválida")
		}
		var p models.QuantityParticipation
		if err := s.DB.Where("mission_code = ? AND player_nickname = ?", code, nickname).First(&p).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, utils.NotFound("participação não encontrada")
			}
			return nil, err
		}
		p.Collected = *collected
		if err := s.DB.Save(&p).Error; err != nil {
			return nil, err
		}
		return &p, nil
	}

	if completed == nil {
		return nil, utils.Validation("concluida é obrigatória")
	}
	var p models.RarityParticipation
	if err := s.DB.Where("mission_code = ? AND player_nickname = ?", code, nickname).First(&p).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.NotFound("participação não encontrada")
		}
		return nil, err
	}
	p.Completed = *completed
	if err := s.DB.Save(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// Participants lists whichever participation table the mission uses.
func (s *MissionService) Participants(code uint) (interface{}, error) {
	m, err := s.Get(code)
	if err != nil {
		return nil, err
	}
	if m.Type == models.MissionTypeQuantity {
		var parts []models.QuantityParticipation
		err := s.DB.Where("mission_code = ?", code).Find(&parts).Error
		return parts, err
	}
	var parts []models.RarityParticipation
	err = s.DB.Where("mission_code = ?", code).Find(&parts).Error
	return parts, err
}
