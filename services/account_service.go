package services

import (
	"log"

	"card-explorer-backend/models"
	"card-explorer-backend/utils"

	"gorm.io/gorm"
)

// AccountService handles registration, login and password recovery,
// delegating all credential work to the identity provider.
type AccountService struct {
	DB   *gorm.DB
	Auth *AuthClient
}

func NewAccountService(db *gorm.DB, auth *AuthClient) *AccountService {
	return &AccountService{DB: db, Auth: auth}
}

// Register creates the Person row plus the role row (PlayerProfile or
// Educator) and the provider credential in one transaction. A provider
// failure rolls the local rows back.
func (s *AccountService) Register(nickname, email, password, role string) (*models.Person, error) {
	if nickname == "" || email == "" || password == "" {
		return nil, utils.Validation("nickname, email e senha são obrigatórios")
	}
	if role == "" {
		role = models.RolePlayer
	}
	if !models.ValidRole(role) {
		return nil, utils.Validation("tipo deve ser 'usuario' ou 'educador'")
	}

	person := &models.Person{Nickname: nickname, Email: email, Role: role}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Person
		if err := tx.Where("nickname = ? OR email = ?", nickname, email).First(&existing).Error; err == nil {
			return utils.Conflict("já existe uma pessoa com este nickname ou email")
		} else if err != gorm.ErrRecordNotFound {
			return err
		}

		if err := tx.Create(person).Error; err != nil {
			return err
		}

		if role == models.RolePlayer {
			profile := models.PlayerProfile{
				Nickname: nickname,
				Ranking:  RankingForLevel(1),
				Level:    1,
			}
			if err := tx.Create(&profile).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Create(&models.Educator{Nickname: nickname}).Error; err != nil {
				return err
			}
		}

		if _, err := s.Auth.SignUp(email, password); err != nil {
			return utils.Validation("erro ao criar usuário no provedor de autenticação")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Registered %s (%s) as %s", nickname, email, role)
	return person, nil
}

// Login resolves the nickname to its email and signs in on the provider.
func (s *AccountService) Login(nickname, password string) (*AuthSession, error) {
	var person models.Person
	if err := s.DB.Where("nickname = ?", nickname).First(&person).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.Unauthorized("nickname não encontrado")
		}
		return nil, err
	}
	return s.Auth.SignIn(person.Email, password)
}

// ResetPassword triggers the provider's recovery mail for the nickname.
func (s *AccountService) ResetPassword(nickname string) error {
	var person models.Person
	if err := s.DB.Where("nickname = ?", nickname).First(&person).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.NotFound("nickname não encontrado")
		}
		return err
	}
	if err := s.Auth.RecoverPassword(person.Email); err != nil {
		return utils.Validation("erro ao solicitar redefinição de senha")
	}
	return nil
}
