package services

import (
	"card-explorer-backend/models"
	"card-explorer-backend/utils"

	"gorm.io/gorm"
)

type EducatorService struct {
	DB *gorm.DB
}

func NewEducatorService(db *gorm.DB) *EducatorService {
	return &EducatorService{DB: db}
}

func (s *EducatorService) Create(nickname, title string) (*models.Educator, error) {
	var person models.Person
	if err := s.DB.Where("nickname = ?", nickname).First(&person).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.NotFound("pessoa não encontrada")
		}
		return nil, err
	}
	if person.Role != models.RoleEducator {
		return nil, utils.Validation("pessoa deve ser do tipo 'educador'")
	}

	var count int64
	if err := s.DB.Model(&models.Educator{}).Where("nickname = ?", nickname).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, utils.Conflict("educador já existe")
	}

	educator := &models.Educator{Nickname: nickname, Title: title}
	if err := s.DB.Create(educator).Error; err != nil {
		return nil, err
	}
	return educator, nil
}

func (s *EducatorService) Get(nickname string) (*models.Educator, error) {
	var educator models.Educator
	if err := s.DB.Where("nickname = ?", nickname).First(&educator).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.NotFound("educador não encontrado")
		}
		return nil, err
	}
	return &educator, nil
}

func (s *EducatorService) List(limit int) ([]models.Educator, error) {
	q := s.DB.Order("nickname ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var educators []models.Educator
	err := q.Find(&educators).Error
	return educators, err
}

func (s *EducatorService) UpdateTitle(nickname, title string) (*models.Educator, error) {
	educator, err := s.Get(nickname)
	if err != nil {
		return nil, err
	}
	educator.Title = title
	if err := s.DB.Save(educator).Error; err != nil {
		return nil, err
	}
	return educator, nil
}

func (s *EducatorService) Delete(nickname string) error {
	educator, err := s.Get(nickname)
	if err != nil {
		return err
	}
	return s.DB.Delete(educator).Error
}
