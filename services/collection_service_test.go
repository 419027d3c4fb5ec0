package services

import (
	"testing"

	"card-explorer-backend/models"
	"card-explorer-backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCollectionService(t *testing.T) *CollectionService {
	t.Helper()
	db := newTestDB(t)
	return NewCollectionService(db, NewProgressionService(db))
}

func TestAddCardFirstCopyGrantsXP(t *testing.T) {
	svc := newCollectionService(t)
	seedPlayer(t, svc.DB, "ash")
	seedCard(t, svc.DB, "carta-rara-01", models.RarityRare)

	result, err := svc.AddCard("ash", "carta-rara-01", 1)
	require.NoError(t, err)
	require.NotNil(t, result.XPInfo)
	assert.Equal(t, int64(50), result.XPInfo.XPGained)
	assert.Equal(t, models.RarityRare, result.XPInfo.Rarity)
	assert.Equal(t, 1, result.Entry.Quantity)

	var profile models.PlayerProfile
	require.NoError(t, svc.DB.Where("nickname = ?", "ash").First(&profile).Error)
	assert.Equal(t, int64(50), profile.XP)
	assert.Equal(t, 1, profile.CardCount)
}

func TestAddCardDuplicateGrantsNoXP(t *testing.T) {
	svc := newCollectionService(t)
	seedPlayer(t, svc.DB, "ash")
	seedCard(t, svc.DB, "carta-comum-01", models.RarityCommon)

	_, err := svc.AddCard("ash", "carta-comum-01", 1)
	require.NoError(t, err)

	result, err := svc.AddCard("ash", "carta-comum-01", 2)
	require.NoError(t, err)
	assert.Nil(t, result.XPInfo)
	assert.Equal(t, 3, result.Entry.Quantity)

	// the counter tracks copies, not distinct cards
	var profile models.PlayerProfile
	require.NoError(t, svc.DB.Where("nickname = ?", "ash").First(&profile).Error)
	assert.Equal(t, int64(10), profile.XP)
	assert.Equal(t, 3, profile.CardCount)
}

func TestAddCardValidation(t *testing.T) {
	svc := newCollectionService(t)
	seedPlayer(t, svc.DB, "ash")
	seedCard(t, svc.DB, "carta-comum-01", models.RarityCommon)

	_, err := svc.AddCard("ash", "carta-comum-01", 0)
	assert.True(t, utils.IsKind(err, utils.KindValidation))

	_, err = svc.AddCard("ash", "carta-inexistente", 1)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))

	_, err = svc.AddCard("ghost", "carta-comum-01", 1)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
}

func TestRemoveCard(t *testing.T) {
	svc := newCollectionService(t)
	seedPlayer(t, svc.DB, "ash")
	seedCard(t, svc.DB, "carta-comum-01", models.RarityCommon)
	giveCard(t, svc.DB, "ash", "carta-comum-01", 3)

	remaining, err := svc.RemoveCard("ash", "carta-comum-01", 1)
	require.NoError(t, err)
	require.NotNil(t, remaining)
	assert.Equal(t, 2, remaining.Quantity)

	_, err = svc.RemoveCard("ash", "carta-comum-01", 0)
	assert.True(t, utils.IsKind(err, utils.KindValidation))

	// removing more copies than held still deletes the entry
	remaining, err = svc.RemoveCard("ash", "carta-comum-01", 5)
	require.NoError(t, err)
	assert.Nil(t, remaining)

	var count int64
	svc.DB.Model(&models.CollectionEntry{}).Where("player_nickname = ?", "ash").Count(&count)
	assert.Equal(t, int64(0), count)

	var profile models.PlayerProfile
	require.NoError(t, svc.DB.Where("nickname = ?", "ash").First(&profile).Error)
	assert.Equal(t, 0, profile.CardCount)

	_, err = svc.RemoveCard("ash", "carta-comum-01", 1)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
}

func TestCollectionStats(t *testing.T) {
	svc := newCollectionService(t)
	seedPlayer(t, svc.DB, "ash")
	seedCard(t, svc.DB, "c1", models.RarityCommon)
	seedCard(t, svc.DB, "c2", models.RarityCommon)
	seedCard(t, svc.DB, "c3", models.RarityLegendary)
	giveCard(t, svc.DB, "ash", "c1", 2)
	giveCard(t, svc.DB, "ash", "c2", 1)
	giveCard(t, svc.DB, "ash", "c3", 1)

	stats, err := svc.Stats("ash")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.UniqueCards)
	assert.Equal(t, 4, stats.TotalCopies)
	assert.Equal(t, 2, stats.ByRarity[models.RarityCommon])
	assert.Equal(t, 1, stats.ByRarity[models.RarityLegendary])
}

func TestVerifyAndClear(t *testing.T) {
	svc := newCollectionService(t)
	seedPlayer(t, svc.DB, "ash")
	seedCard(t, svc.DB, "c1", models.RarityCommon)
	giveCard(t, svc.DB, "ash", "c1", 1)

	entry, err := svc.Verify("ash", "c1")
	require.NoError(t, err)
	assert.Equal(t, "c1", entry.CardQRCode)

	_, err = svc.Verify("ash", "c2")
	assert.True(t, utils.IsKind(err, utils.KindNotFound))

	require.NoError(t, svc.Clear("ash"))
	entries, err := svc.List("ash")
	require.NoError(t, err)
	assert.Empty(t, entries)

	var profile models.PlayerProfile
	require.NoError(t, svc.DB.Where("nickname = ?", "ash").First(&profile).Error)
	assert.Equal(t, 0, profile.CardCount)
}
