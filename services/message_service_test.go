package services

import (
	"testing"

	"card-explorer-backend/models"
	"card-explorer-backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMessageService(t *testing.T) *MessageService {
	t.Helper()
	db := newTestDB(t)
	seedPlayer(t, db, "ash")
	seedPlayer(t, db, "misty")
	return NewMessageService(db)
}

func TestSendMessage(t *testing.T) {
	svc := newMessageService(t)

	msg, err := svc.Send("ash", "misty", "olá!", "", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, models.MessageTypeText, msg.Type)
	assert.NotEmpty(t, msg.ID)

	// sending opens the chat for the pair
	chat, err := svc.GetChat("misty", "ash")
	require.NoError(t, err)
	u1, u2 := models.ChatKey("ash", "misty")
	assert.Equal(t, u1, chat.User1)
	assert.Equal(t, u2, chat.User2)

	_, err = svc.Send("ash", "", "oi", "", nil, nil)
	assert.True(t, utils.IsKind(err, utils.KindValidation))

	_, err = svc.Send("ash", "misty", "oi", "invalido", nil, nil)
	assert.True(t, utils.IsKind(err, utils.KindValidation))

	_, err = svc.Send("ash", "ghost", "oi", "", nil, nil)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
}

func TestConversationAndInbox(t *testing.T) {
	svc := newMessageService(t)

	_, err := svc.Send("ash", "misty", "primeira", "", nil, nil)
	require.NoError(t, err)
	_, err = svc.Send("misty", "ash", "resposta", "", nil, nil)
	require.NoError(t, err)

	inbox, err := svc.Inbox("misty", 0)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Equal(t, "primeira", inbox[0].Text)

	sent, err := svc.Sent("misty", 0)
	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Equal(t, "resposta", sent[0].Text)

	conv, err := svc.Conversation("ash", "misty", 0)
	require.NoError(t, err)
	assert.Len(t, conv, 2)
}

func TestChatLifecycle(t *testing.T) {
	svc := newMessageService(t)

	_, err := svc.OpenChat("ash", "ash")
	assert.True(t, utils.IsKind(err, utils.KindValidation))

	chat, err := svc.OpenChat("misty", "ash")
	require.NoError(t, err)

	// opening again is idempotent
	again, err := svc.OpenChat("ash", "misty")
	require.NoError(t, err)
	assert.Equal(t, chat.User1, again.User1)
	assert.Equal(t, chat.User2, again.User2)

	chats, err := svc.Chats("ash")
	require.NoError(t, err)
	assert.Len(t, chats, 1)

	require.NoError(t, svc.DeleteChat("ash", "misty"))
	assert.True(t, utils.IsKind(svc.DeleteChat("ash", "misty"), utils.KindNotFound))

	_, err = svc.GetChat("ash", "misty")
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
}
