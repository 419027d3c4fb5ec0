package services

import (
	"testing"
	"time"

	"card-explorer-backend/models"
	"card-explorer-backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMissionService(t *testing.T) *MissionService {
	t.Helper()
	db := newTestDB(t)
	person := models.Person{Nickname: "prof", Email: "prof@test.dev", Role: models.RoleEducator}
	require.NoError(t, db.Create(&person).Error)
	require.NoError(t, db.Create(&models.Educator{Nickname: "prof", Title: "Biologia"}).Error)
	return NewMissionService(db)
}

func TestCreateMission(t *testing.T) {
	svc := newMissionService(t)

	m, err := svc.Create(&models.Mission{Type: models.MissionTypeQuantity, Educator: "prof"})
	require.NoError(t, err)
	assert.NotZero(t, m.Code)
	assert.Equal(t, models.MissionStatusActive, m.Status)
	assert.False(t, m.StartsAt.IsZero())

	// a future start date leaves the mission scheduled
	future := time.Now().Add(time.Hour)
	m, err = svc.Create(&models.Mission{Type: models.MissionTypeRarity, Educator: "prof", StartsAt: future})
	require.NoError(t, err)
	assert.Equal(t, models.MissionStatusScheduled, m.Status)

	_, err = svc.Create(&models.Mission{Type: "corrida", Educator: "prof"})
	assert.True(t, utils.IsKind(err, utils.KindValidation))

	_, err = svc.Create(&models.Mission{Type: models.MissionTypeQuantity, Educator: "ghost"})
	assert.True(t, utils.IsKind(err, utils.KindNotFound))

	past := time.Now().Add(-time.Hour)
	_, err = svc.Create(&models.Mission{Type: models.MissionTypeQuantity, Educator: "prof", EndsAt: &past})
	assert.True(t, utils.IsKind(err, utils.KindValidation))
}

func TestMissionGoals(t *testing.T) {
	svc := newMissionService(t)
	seedCard(t, svc.DB, "carta-alvo", models.RarityRare)

	quantity, err := svc.Create(&models.Mission{Type: models.MissionTypeQuantity, Educator: "prof"})
	require.NoError(t, err)
	rarity, err := svc.Create(&models.Mission{Type: models.MissionTypeRarity, Educator: "prof"})
	require.NoError(t, err)

	goal, err := svc.SetQuantityGoal(quantity.Code, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, goal.TotalRequired)

	// setting again replaces the total
	goal, err = svc.SetQuantityGoal(quantity.Code, 15)
	require.NoError(t, err)
	assert.Equal(t, 15, goal.TotalRequired)

	_, err = svc.SetQuantityGoal(rarity.Code, 5)
	assert.True(t, utils.IsKind(err, utils.KindValidation))

	_, err = svc.AddRarityGoal(rarity.Code, "carta-alvo")
	require.NoError(t, err)
	_, err = svc.AddRarityGoal(rarity.Code, "carta-alvo")
	assert.True(t, utils.IsKind(err, utils.KindConflict))
	_, err = svc.AddRarityGoal(rarity.Code, "carta-inexistente")
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
	_, err = svc.AddRarityGoal(quantity.Code, "carta-alvo")
	assert.True(t, utils.IsKind(err, utils.KindValidation))

	goals, err := svc.ListRarityGoals(rarity.Code)
	require.NoError(t, err)
	assert.Len(t, goals, 1)

	require.NoError(t, svc.RemoveRarityGoal(rarity.Code, "carta-alvo"))
	assert.True(t, utils.IsKind(svc.RemoveRarityGoal(rarity.Code, "carta-alvo"), utils.KindNotFound))
}

func TestMissionParticipation(t *testing.T) {
	svc := newMissionService(t)
	seedPlayer(t, svc.DB, "ash")

	m, err := svc.Create(&models.Mission{Type: models.MissionTypeQuantity, Educator: "prof"})
	require.NoError(t, err)

	_, err = svc.Join(m.Code, "ash")
	require.NoError(t, err)
	_, err = svc.Join(m.Code, "ash")
	assert.True(t, utils.IsKind(err, utils.KindConflict))
	_, err = svc.Join(m.Code, "ghost")
	assert.True(t, utils.IsKind(err, utils.KindNotFound))

	// a scheduled mission does not accept participants
	scheduled, err := svc.Create(&models.Mission{
		Type: models.MissionTypeQuantity, Educator: "prof", StartsAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	_, err = svc.Join(scheduled.Code, "ash")
	assert.True(t, utils.IsKind(err, utils.KindValidation))

	collected := 7
	result, err := svc.Progress(m.Code, "ash", &collected, nil)
	require.NoError(t, err)
	p, ok := result.(*models.QuantityParticipation)
	require.True(t, ok)
	assert.Equal(t, 7, p.Collected)

	_, err = svc.Progress(m.Code, "ash", nil, nil)
	assert.True(t, utils.IsKind(err, utils.KindValidation))

	require.NoError(t, svc.Leave(m.Code, "ash"))
	assert.True(t, utils.IsKind(svc.Leave(m.Code, "ash"), utils.KindNotFound))
}

func TestDeleteMissionCascades(t *testing.T) {
	svc := newMissionService(t)
	seedPlayer(t, svc.DB, "ash")

	m, err := svc.Create(&models.Mission{Type: models.MissionTypeQuantity, Educator: "prof"})
	require.NoError(t, err)
	_, err = svc.SetQuantityGoal(m.Code, 10)
	require.NoError(t, err)
	_, err = svc.Join(m.Code, "ash")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(m.Code))

	_, err = svc.Get(m.Code)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))

	var count int64
	svc.DB.Model(&models.MissionQuantityGoal{}).Where("mission_code = ?", m.Code).Count(&count)
	assert.Equal(t, int64(0), count)
	svc.DB.Model(&models.QuantityParticipation{}).Where("mission_code = ?", m.Code).Count(&count)
	assert.Equal(t, int64(0), count)
}
