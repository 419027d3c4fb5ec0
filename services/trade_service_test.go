package services

import (
	"testing"

	"card-explorer-backend/models"
	"card-explorer-backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTradeService(t *testing.T) *TradeService {
	t.Helper()
	db := newTestDB(t)
	progression := NewProgressionService(db)
	messages := NewMessageService(db)
	return NewTradeService(db, progression, messages)
}

func seedTradeScenario(t *testing.T, svc *TradeService) {
	t.Helper()
	seedPlayer(t, svc.DB, "ash")
	seedPlayer(t, svc.DB, "gary")
	seedCard(t, svc.DB, "carta-ash", models.RarityCommon)
	seedCard(t, svc.DB, "carta-gary", models.RarityRare)
	giveCard(t, svc.DB, "ash", "carta-ash", 1)
	giveCard(t, svc.DB, "gary", "carta-gary", 2)
}

func TestProposeTrade(t *testing.T) {
	svc := newTradeService(t)
	seedTradeScenario(t, svc)

	trade, err := svc.Propose("ash", "gary", "carta-ash", "carta-gary")
	require.NoError(t, err)
	assert.Equal(t, models.TradeStatusPending, trade.Status)
	assert.NotEmpty(t, trade.ID)

	// the recipient gets a trade message tied to the proposal
	var msg models.Message
	require.NoError(t, svc.DB.Where("recipient = ? AND type = ?", "gary", models.MessageTypeTrade).First(&msg).Error)
	require.NotNil(t, msg.TradeID)
	assert.Equal(t, trade.ID, *msg.TradeID)
}

func TestProposeTradeValidation(t *testing.T) {
	svc := newTradeService(t)
	seedTradeScenario(t, svc)

	_, err := svc.Propose("ash", "ash", "carta-ash", "carta-gary")
	assert.True(t, utils.IsKind(err, utils.KindValidation))

	_, err = svc.Propose("ash", "gary", "", "carta-gary")
	assert.True(t, utils.IsKind(err, utils.KindValidation))

	// proposer does not hold the offered card
	_, err = svc.Propose("ash", "gary", "carta-gary", "carta-gary")
	assert.True(t, utils.IsKind(err, utils.KindValidation))

	// recipient does not hold the requested card
	_, err = svc.Propose("ash", "gary", "carta-ash", "carta-ash")
	assert.True(t, utils.IsKind(err, utils.KindValidation))
}

func TestAcceptTradeSwapsCards(t *testing.T) {
	svc := newTradeService(t)
	seedTradeScenario(t, svc)

	trade, err := svc.Propose("ash", "gary", "carta-ash", "carta-gary")
	require.NoError(t, err)

	// only the recipient may accept
	_, err = svc.Accept(trade.ID, "ash")
	assert.True(t, utils.IsKind(err, utils.KindNotFound))

	accepted, err := svc.Accept(trade.ID, "gary")
	require.NoError(t, err)
	assert.Equal(t, models.TradeStatusAccepted, accepted.Status)
	require.NotNil(t, accepted.RespondedAt)

	// ash gave away their only copy and received gary's card. Each lookup
	// gets a fresh struct so a populated primary key never leaks into the
	// next query's conditions.
	var gone models.CollectionEntry
	err = svc.DB.Where("player_nickname = ? AND card_qr_code = ?", "ash", "carta-ash").First(&gone).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var ashGained models.CollectionEntry
	require.NoError(t, svc.DB.Where("player_nickname = ? AND card_qr_code = ?", "ash", "carta-gary").First(&ashGained).Error)
	assert.Equal(t, 1, ashGained.Quantity)

	// gary kept one copy of his card and gained ash's
	var garyKept models.CollectionEntry
	require.NoError(t, svc.DB.Where("player_nickname = ? AND card_qr_code = ?", "gary", "carta-gary").First(&garyKept).Error)
	assert.Equal(t, 1, garyKept.Quantity)
	var garyGained models.CollectionEntry
	require.NoError(t, svc.DB.Where("player_nickname = ? AND card_qr_code = ?", "gary", "carta-ash").First(&garyGained).Error)
	assert.Equal(t, 1, garyGained.Quantity)

	// card counts follow the swap
	var ashProfile models.PlayerProfile
	require.NoError(t, svc.DB.Where("nickname = ?", "ash").First(&ashProfile).Error)
	assert.Equal(t, 1, ashProfile.CardCount)
	var garyProfile models.PlayerProfile
	require.NoError(t, svc.DB.Where("nickname = ?", "gary").First(&garyProfile).Error)
	assert.Equal(t, 2, garyProfile.CardCount)
}

func TestAcceptTradeCardGoneCancels(t *testing.T) {
	svc := newTradeService(t)
	seedTradeScenario(t, svc)

	trade, err := svc.Propose("ash", "gary", "carta-ash", "carta-gary")
	require.NoError(t, err)

	// ash loses the offered card before gary accepts
	require.NoError(t, svc.DB.Where("player_nickname = ? AND card_qr_code = ?", "ash", "carta-ash").
		Delete(&models.CollectionEntry{}).Error)

	_, err = svc.Accept(trade.ID, "gary")
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindConflict))

	var stored models.Trade
	require.NoError(t, svc.DB.Where("id = ?", trade.ID).First(&stored).Error)
	assert.Equal(t, models.TradeStatusCanceled, stored.Status)
	assert.NotNil(t, stored.RespondedAt)

	// gary's collection is untouched
	var entry models.CollectionEntry
	require.NoError(t, svc.DB.Where("player_nickname = ? AND card_qr_code = ?", "gary", "carta-gary").First(&entry).Error)
	assert.Equal(t, 2, entry.Quantity)
}

func TestRejectAndCancelTrade(t *testing.T) {
	svc := newTradeService(t)
	seedTradeScenario(t, svc)

	trade, err := svc.Propose("ash", "gary", "carta-ash", "carta-gary")
	require.NoError(t, err)

	rejected, err := svc.Reject(trade.ID, "gary")
	require.NoError(t, err)
	assert.Equal(t, models.TradeStatusRejected, rejected.Status)

	// a closed trade cannot be acted on again
	_, err = svc.Cancel(trade.ID, "ash")
	assert.True(t, utils.IsKind(err, utils.KindNotFound))

	trade, err = svc.Propose("ash", "gary", "carta-ash", "carta-gary")
	require.NoError(t, err)

	// only the proposer may cancel
	_, err = svc.Cancel(trade.ID, "gary")
	assert.True(t, utils.IsKind(err, utils.KindNotFound))

	canceled, err := svc.Cancel(trade.ID, "ash")
	require.NoError(t, err)
	assert.Equal(t, models.TradeStatusCanceled, canceled.Status)
}

func TestListTrades(t *testing.T) {
	svc := newTradeService(t)
	seedTradeScenario(t, svc)

	_, err := svc.Propose("ash", "gary", "carta-ash", "carta-gary")
	require.NoError(t, err)

	trades, err := svc.List("ash")
	require.NoError(t, err)
	assert.Len(t, trades, 1)

	trades, err = svc.List("gary")
	require.NoError(t, err)
	assert.Len(t, trades, 1)

	trades, err = svc.List("misty")
	require.NoError(t, err)
	assert.Empty(t, trades)
}
