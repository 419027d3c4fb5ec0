package services

import (
	"strings"
	"time"
	"unicode"

	"card-explorer-backend/models"
	"card-explorer-backend/utils"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"
)

type FriendshipService struct {
	DB *gorm.DB
}

func NewFriendshipService(db *gorm.DB) *FriendshipService {
	return &FriendshipService{DB: db}
}

// FriendInfo is a friend row joined with the friend's profile.
type FriendInfo struct {
	FriendshipID string     `json:"amizade_id"`
	Nickname     string     `json:"nickname"`
	Ranking      string     `json:"ranking"`
	XP           int64      `json:"xp"`
	Level        int        `json:"nivel"`
	ProfilePhoto *string    `json:"fotoperfil,omitempty"`
	Since        *time.Time `json:"data_amizade,omitempty"`
}

// PendingRequest is an incoming request joined with the requester's
// profile.
type PendingRequest struct {
	RequestID    string    `json:"solicitacao_id"`
	Nickname     string    `json:"nickname"`
	Ranking      string    `json:"ranking"`
	XP           int64     `json:"xp"`
	Level        int       `json:"nivel"`
	ProfilePhoto *string   `json:"fotoperfil,omitempty"`
	RequestedAt  time.Time `json:"data_solicitacao"`
}

func (s *FriendshipService) playerExists(tx *gorm.DB, nickname string) (bool, error) {
	var count int64
	err := tx.Model(&models.PlayerProfile{}).Where("nickname = ?", nickname).Count(&count).Error
	return count > 0, err
}

// Request opens a pending friendship. The duplicate check covers both
// orderings of the pair and runs inside the insert transaction.
func (s *FriendshipService) Request(requester, recipient string) (*models.Friendship, error) {
	if requester == recipient {
		return nil, utils.Validation("não é possível adicionar a si mesmo")
	}

	friendship := &models.Friendship{
		ID:        uuid.NewString(),
		Requester: requester,
		Recipient: recipient,
		Status:    models.FriendshipPending,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		for _, nick := range []string{requester, recipient} {
			ok, err := s.playerExists(tx, nick)
			if err != nil {
				return err
			}
			if !ok {
				return utils.NotFound("usuário '%s' não encontrado", nick)
			}
		}

		var count int64
		if err := tx.Model(&models.Friendship{}).
			Where("(requester = ? AND recipient = ?) OR (requester = ? AND recipient = ?)",
				requester, recipient, recipient, requester).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return utils.Conflict("já existe uma solicitação ou amizade entre estes usuários")
		}

		return tx.Create(friendship).Error
	})
	if err != nil {
		return nil, err
	}
	return friendship, nil
}

// Accept flips a pending request to accepted. Only the recipient may do
// it.
func (s *FriendshipService) Accept(requestID, nickname string) (*models.Friendship, error) {
	var f models.Friendship
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND recipient = ? AND status = ?", requestID, nickname, models.FriendshipPending).
			First(&f).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return utils.NotFound("solicitação não encontrada ou não autorizada")
			}
			return err
		}
		now := time.Now()
		f.Status = models.FriendshipAccepted
		f.AcceptedAt = &now
		return tx.Save(&f).Error
	})
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Reject marks a pending request as refused.
func (s *FriendshipService) Reject(requestID, nickname string) (*models.Friendship, error) {
	var f models.Friendship
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND recipient = ? AND status = ?", requestID, nickname, models.FriendshipPending).
			First(&f).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return utils.NotFound("solicitação não encontrada ou não autorizada")
			}
			return err
		}
		f.Status = models.FriendshipRejected
		return tx.Save(&f).Error
	})
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Remove deletes the friendship row in whichever ordering it exists.
func (s *FriendshipService) Remove(a, b string) error {
	res := s.DB.Where("(requester = ? AND recipient = ?) OR (requester = ? AND recipient = ?)", a, b, b, a).
		Delete(&models.Friendship{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.NotFound("amizade não encontrada")
	}
	return nil
}

// Friends lists accepted friendships from either side, joined with the
// other player's profile.
func (s *FriendshipService) Friends(nickname string) ([]FriendInfo, error) {
	var rows []models.Friendship
	if err := s.DB.Where("(requester = ? OR recipient = ?) AND status = ?",
		nickname, nickname, models.FriendshipAccepted).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	friends := make([]FriendInfo, 0, len(rows))
	for _, f := range rows {
		other := f.Requester
		if other == nickname {
			other = f.Recipient
		}

		var profile models.PlayerProfile
		if err := s.DB.Where("nickname = ?", other).First(&profile).Error; err != nil {
			continue
		}
		friends = append(friends, FriendInfo{
			FriendshipID: f.ID,
			Nickname:     profile.Nickname,
			Ranking:      profile.Ranking,
			XP:           profile.XP,
			Level:        profile.Level,
			ProfilePhoto: profile.ProfilePhoto,
			Since:        f.AcceptedAt,
		})
	}
	return friends, nil
}

// Pending lists incoming requests still waiting for an answer.
func (s *FriendshipService) Pending(nickname string) ([]PendingRequest, error) {
	var rows []models.Friendship
	if err := s.DB.Where("recipient = ? AND status = ?", nickname, models.FriendshipPending).
		Order("requested_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	requests := make([]PendingRequest, 0, len(rows))
	for _, f := range rows {
		var profile models.PlayerProfile
		if err := s.DB.Where("nickname = ?", f.Requester).First(&profile).Error; err != nil {
			continue
		}
		requests = append(requests, PendingRequest{
			RequestID:    f.ID,
			Nickname:     profile.Nickname,
			Ranking:      profile.Ranking,
			XP:           profile.XP,
			Level:        profile.Level,
			ProfilePhoto: profile.ProfilePhoto,
			RequestedAt:  f.RequestedAt,
		})
	}
	return requests, nil
}

var accentFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldAccents lowercases and strips diacritics so "João" matches "joao".
func foldAccents(s string) string {
	out, _, err := transform.String(accentFolder, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

// Search finds players by nickname, accent- and case-insensitive,
// excluding the searcher. limit defaults to 20 and is clamped to [1, 50].
func (s *FriendshipService) Search(term, current string, limit int) ([]models.PlayerProfile, error) {
	if term == "" {
		return nil, utils.Validation("termo de busca é obrigatório")
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}

	var profiles []models.PlayerProfile
	if err := s.DB.Where("nickname <> ?", current).Order("nickname ASC").Find(&profiles).Error; err != nil {
		return nil, err
	}

	folded := foldAccents(term)
	matches := make([]models.PlayerProfile, 0, limit)
	for _, p := range profiles {
		if strings.Contains(foldAccents(p.Nickname), folded) {
			matches = append(matches, p)
			if len(matches) == limit {
				break
			}
		}
	}
	return matches, nil
}

// FriendshipStatus describes the pair relation for the status endpoint.
type FriendshipStatus struct {
	ID        string `json:"id,omitempty"`
	Status    string `json:"status"`
	Requester string `json:"solicitante,omitempty"`
	Recipient string `json:"destinatario,omitempty"`
}

// Status reports the relation between two players; "nenhum" when no row
// exists in either ordering.
func (s *FriendshipService) Status(a, b string) (*FriendshipStatus, error) {
	var f models.Friendship
	err := s.DB.Where("(requester = ? AND recipient = ?) OR (requester = ? AND recipient = ?)", a, b, b, a).
		First(&f).Error
	if err == gorm.ErrRecordNotFound {
		return &FriendshipStatus{Status: "nenhum"}, nil
	}
	if err != nil {
		return nil, err
	}
	return &FriendshipStatus{
		ID:        f.ID,
		Status:    f.Status,
		Requester: f.Requester,
		Recipient: f.Recipient,
	}, nil
}
