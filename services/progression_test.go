package services

import (
	"testing"

	"card-explorer-backend/models"
	"card-explorer-backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXPForRarity(t *testing.T) {
	assert.Equal(t, int64(10), XPForRarity("comum"))
	assert.Equal(t, int64(25), XPForRarity("incomum"))
	assert.Equal(t, int64(50), XPForRarity("rara"))
	assert.Equal(t, int64(100), XPForRarity("épica"))
	assert.Equal(t, int64(200), XPForRarity("lendária"))

	// case insensitive, unknown falls back to comum
	assert.Equal(t, int64(200), XPForRarity("LENDÁRIA"))
	assert.Equal(t, int64(10), XPForRarity("inexistente"))
}

func TestLevelForXP(t *testing.T) {
	assert.Equal(t, 1, LevelForXP(0))
	assert.Equal(t, 1, LevelForXP(999))
	assert.Equal(t, 2, LevelForXP(1000))
	assert.Equal(t, 2, LevelForXP(1999))
	assert.Equal(t, 11, LevelForXP(10000))
}

func TestRankingForLevel(t *testing.T) {
	assert.Equal(t, "Iniciante", RankingForLevel(1))
	assert.Equal(t, "Iniciante", RankingForLevel(4))
	assert.Equal(t, "Intermediário", RankingForLevel(5))
	assert.Equal(t, "Avançado", RankingForLevel(10))
	assert.Equal(t, "Especialista", RankingForLevel(20))
	assert.Equal(t, "Mestre", RankingForLevel(30))
	assert.Equal(t, "Lendário", RankingForLevel(50))
	assert.Equal(t, "Lendário", RankingForLevel(99))
}

func TestAwardXP(t *testing.T) {
	db := newTestDB(t)
	seedPlayer(t, db, "ash")
	svc := NewProgressionService(db)

	info, err := svc.AwardXP("ash", 200)
	require.NoError(t, err)
	assert.Equal(t, int64(200), info.XPGained)
	assert.Equal(t, int64(200), info.TotalXP)
	assert.Equal(t, 1, info.Level)
	assert.False(t, info.LevelUp)

	// crossing 1000 XP levels up
	info, err = svc.AwardXP("ash", 900)
	require.NoError(t, err)
	assert.Equal(t, int64(1100), info.TotalXP)
	assert.Equal(t, 2, info.Level)
	assert.True(t, info.LevelUp)

	var profile models.PlayerProfile
	require.NoError(t, db.Where("nickname = ?", "ash").First(&profile).Error)
	assert.Equal(t, int64(1100), profile.XP)
	assert.Equal(t, 2, profile.Level)
	assert.Equal(t, "Iniciante", profile.Ranking)
}

func TestAwardXPUnknownPlayer(t *testing.T) {
	db := newTestDB(t)
	svc := NewProgressionService(db)

	_, err := svc.AwardXP("ghost", 10)
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
}

func TestLeaderboard(t *testing.T) {
	db := newTestDB(t)
	svc := NewProgressionService(db)

	seedPlayer(t, db, "alice")
	seedPlayer(t, db, "bruno")
	seedPlayer(t, db, "carla")
	require.NoError(t, db.Model(&models.PlayerProfile{}).Where("nickname = ?", "bruno").Update("xp", 500).Error)
	require.NoError(t, db.Model(&models.PlayerProfile{}).Where("nickname = ?", "carla").Update("xp", 300).Error)

	entries, err := svc.Leaderboard(0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "bruno", entries[0].Nickname)
	assert.Equal(t, "carla", entries[1].Nickname)
	assert.Equal(t, "alice", entries[2].Nickname)

	// positions are explicit and 1-based
	assert.Equal(t, 1, entries[0].Position)
	assert.Equal(t, 2, entries[1].Position)
	assert.Equal(t, 3, entries[2].Position)

	entries, err = svc.Leaderboard(2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
