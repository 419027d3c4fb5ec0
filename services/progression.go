package services

import (
	"strings"
	"time"

	"card-explorer-backend/models"
	"card-explorer-backend/utils"

	"gorm.io/gorm"
)

// XP granted the first time a player collects a card of a given rarity.
var rarityXP = map[string]int64{
	models.RarityCommon:    10,
	models.RarityUncommon:  25,
	models.RarityRare:      50,
	models.RarityEpic:      100,
	models.RarityLegendary: 200,
}

// XPForRarity returns the XP value for a rarity; unknown rarities fall
// back to the common value.
func XPForRarity(rarity string) int64 {
	if xp, ok := rarityXP[strings.ToLower(rarity)]; ok {
		return xp
	}
	return rarityXP[models.RarityCommon]
}

// LevelForXP: every 1000 XP is one level, starting at level 1.
func LevelForXP(xp int64) int {
	return int(xp/1000) + 1
}

// RankingForLevel maps a level to its named tier.
func RankingForLevel(level int) string {
	switch {
	case level >= 50:
		return "Lendário"
	case level >= 30:
		return "Mestre"
	case level >= 20:
		return "Especialista"
	case level >= 10:
		return "Avançado"
	case level >= 5:
		return "Intermediário"
	default:
		return "Iniciante"
	}
}

// XPInfo reports the outcome of an XP grant back to the client.
type XPInfo struct {
	XPGained int64  `json:"xp_ganho"`
	TotalXP  int64  `json:"xp_total"`
	Level    int    `json:"nivel_atual"`
	Ranking  string `json:"ranking"`
	LevelUp  bool   `json:"level_up"`
	Rarity   string `json:"raridade,omitempty"`
}

type ProgressionService struct {
	DB *gorm.DB
}

func NewProgressionService(db *gorm.DB) *ProgressionService {
	return &ProgressionService{DB: db}
}

// GrantXP adds XP to a profile and rewrites level and ranking in the same
// UPDATE. Runs on the caller's transaction so collection adds stay atomic.
func (s *ProgressionService) GrantXP(tx *gorm.DB, nickname string, xp int64) (*XPInfo, error) {
	var profile models.PlayerProfile
	if err := tx.Where("nickname = ?", nickname).First(&profile).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, utils.NotFound("usuário não encontrado")
		}
		return nil, err
	}

	oldLevel := profile.Level
	profile.XP += xp
	profile.Level = LevelForXP(profile.XP)
	profile.Ranking = RankingForLevel(profile.Level)

	if err := tx.Model(&models.PlayerProfile{}).
		Where("nickname = ?", nickname).
		Updates(map[string]interface{}{
			"xp":         profile.XP,
			"level":      profile.Level,
			"ranking":    profile.Ranking,
			"updated_at": time.Now(),
		}).Error; err != nil {
		return nil, err
	}

	return &XPInfo{
		XPGained: xp,
		TotalXP:  profile.XP,
		Level:    profile.Level,
		Ranking:  profile.Ranking,
		LevelUp:  profile.Level > oldLevel,
	}, nil
}

// AwardXP is GrantXP in its own transaction, for callers outside a
// collection workflow (admin grants, mission rewards).
func (s *ProgressionService) AwardXP(nickname string, xp int64) (*XPInfo, error) {
	var info *XPInfo
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var txErr error
		info, txErr = s.GrantXP(tx, nickname, xp)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return info, nil
}

// RecomputeCardCount rewrites CardCount from the collection table: the
// total of all copies held. Runs on the caller's transaction.
func (s *ProgressionService) RecomputeCardCount(tx *gorm.DB, nickname string) error {
	var total int64
	if err := tx.Model(&models.CollectionEntry{}).
		Where("player_nickname = ?", nickname).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error; err != nil {
		return err
	}
	return tx.Model(&models.PlayerProfile{}).
		Where("nickname = ?", nickname).
		Update("card_count", total).Error
}

// LeaderboardEntry is a profile with its 1-based position.
type LeaderboardEntry struct {
	Position int `json:"posicao"`
	models.PlayerProfile
}

// Leaderboard returns profiles ordered by XP, each carrying its position.
// limit defaults to 10 and is clamped to [1, 50].
func (s *ProgressionService) Leaderboard(limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}

	var profiles []models.PlayerProfile
	if err := s.DB.Order("xp DESC, nickname ASC").Limit(limit).Find(&profiles).Error; err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, len(profiles))
	for i, p := range profiles {
		entries[i] = LeaderboardEntry{Position: i + 1, PlayerProfile: p}
	}
	return entries, nil
}
