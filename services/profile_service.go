package services

import (
	"card-explorer-backend/models"
	"card-explorer-backend/utils"

	"gorm.io/gorm"
)

// ProfileService manages PlayerProfile rows. Progression fields (xp,
// level, ranking) are owned by ProgressionService; this one handles the
// rest of the lifecycle.
type ProfileService struct {
	DB *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{DB: db}
}

// Create backfills a profile for an existing person with role "usuario".
// Registration normally does this; the endpoint exists for accounts
// created before profiles were automatic.
func (s *ProfileService) Create(nickname string) (*models.PlayerProfile, error) {
	var person models.Person
	if err := s.DB.Where("nickname = ?", nickname).First(&person).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.NotFound("pessoa não encontrada, crie primeiro uma pessoa antes de criar o usuário")
		}
		return nil, err
	}
	if person.Role != models.RolePlayer {
		return nil, utils.Validation("pessoa deve ser do tipo 'usuario'")
	}

	var count int64
	if err := s.DB.Model(&models.PlayerProfile{}).Where("nickname = ?", nickname).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, utils.Conflict("usuário já existe")
	}

	profile := &models.PlayerProfile{
		Nickname: nickname,
		Ranking:  RankingForLevel(1),
		Level:    1,
	}
	if err := s.DB.Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *ProfileService) Get(nickname string) (*models.PlayerProfile, error) {
	var profile models.PlayerProfile
	if err := s.DB.Where("nickname = ?", nickname).First(&profile).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.NotFound("usuário não encontrado")
		}
		return nil, err
	}
	return &profile, nil
}

func (s *ProfileService) List(limit int) ([]models.PlayerProfile, error) {
	q := s.DB.Order("nickname ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var profiles []models.PlayerProfile
	err := q.Find(&profiles).Error
	return profiles, err
}

// SetPhoto stores the uploaded photo URL on the profile.
func (s *ProfileService) SetPhoto(nickname, url string) (*models.PlayerProfile, error) {
	profile, err := s.Get(nickname)
	if err != nil {
		return nil, err
	}
	profile.ProfilePhoto = &url
	if err := s.DB.Save(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *ProfileService) Delete(nickname string) error {
	profile, err := s.Get(nickname)
	if err != nil {
		return err
	}
	return s.DB.Delete(profile).Error
}
