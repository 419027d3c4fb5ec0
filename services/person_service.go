package services

import (
	"card-explorer-backend/models"
	"card-explorer-backend/utils"

	"gorm.io/gorm"
)

type PersonService struct {
	DB *gorm.DB
}

func NewPersonService(db *gorm.DB) *PersonService {
	return &PersonService{DB: db}
}

func (s *PersonService) Create(p *models.Person) (*models.Person, error) {
	if p.Nickname == "" || p.Email == "" {
		return nil, utils.Validation("nickname e email são obrigatórios")
	}
	if p.Role == "" {
		p.Role = models.RolePlayer
	}
	if !models.ValidRole(p.Role) {
		return nil, utils.Validation("tipo deve ser 'usuario' ou 'educador'")
	}

	var existing models.Person
	if err := s.DB.Where("nickname = ? OR email = ?", p.Nickname, p.Email).First(&existing).Error; err == nil {
		return nil, utils.Conflict("já existe uma pessoa com este nickname ou email")
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	if err := s.DB.Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PersonService) GetByNickname(nickname string) (*models.Person, error) {
	var p models.Person
	if err := s.DB.Where("nickname = ?", nickname).First(&p).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.NotFound("pessoa não encontrada")
		}
		return nil, err
	}
	return &p, nil
}

func (s *PersonService) GetByEmail(email string) (*models.Person, error) {
	var p models.Person
	if err := s.DB.Where("email = ?", email).First(&p).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.NotFound("pessoa não encontrada")
		}
		return nil, err
	}
	return &p, nil
}

// List returns persons, optionally filtered by role. limit <= 0 means no
// limit.
func (s *PersonService) List(role string, limit int) ([]models.Person, error) {
	q := s.DB.Order("nickname ASC")
	if role != "" {
		if !models.ValidRole(role) {
			return nil, utils.Validation("tipo deve ser 'usuario' ou 'educador'")
		}
		q = q.Where("role = ?", role)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var people []models.Person
	if err := q.Find(&people).Error; err != nil {
		return nil, err
	}
	return people, nil
}

// Update applies a partial update. Only email can change; nickname is the
// key and role is fixed at registration.
func (s *PersonService) Update(nickname string, email *string) (*models.Person, error) {
	p, err := s.GetByNickname(nickname)
	if err != nil {
		return nil, err
	}
	if email == nil {
		return nil, utils.Validation("nenhum campo para atualizar")
	}

	p.Email = *email
	if err := s.DB.Save(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes the person together with its profile or educator row.
func (s *PersonService) Delete(nickname string) error {
	p, err := s.GetByNickname(nickname)
	if err != nil {
		return err
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if p.Role == models.RolePlayer {
			if err := tx.Where("nickname = ?", nickname).Delete(&models.PlayerProfile{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("nickname = ?", nickname).Delete(&models.Educator{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(p).Error
	})
}
