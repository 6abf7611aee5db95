package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeUpdates(t *testing.T) {
	data := []byte(`{"ok":true,"result":[
		{"update_id":10,"message":{"message_id":1,"date":0,"text":"/goals","chat":{"id":222,"type":"private","username":"chat_alice"},"from":{"id":222,"username":"alice"}}},
		{"update_id":11,"message":{"message_id":2,"date":0,"text":"hi","chat":{"id":111,"type":"private","username":"bob"}}},
		{"update_id":12,"edited_message":{"message_id":3,"date":0,"text":"x","chat":{"id":111,"type":"private"}}}
	]}`)

	updates, err := decodeUpdates(data)
	require.NoError(t, err)
	require.Len(t, updates, 3)

	assert.Equal(t, 10, updates[0].ID)
	assert.NoError(t, updates[0].Err)
	assert.Equal(t, &Message{ChatID: 222, Username: "alice", Text: "/goals"}, updates[0].Message)

	assert.Equal(t, 11, updates[1].ID)
	assert.Equal(t, &Message{ChatID: 111, Username: "bob", Text: "hi"}, updates[1].Message)

	assert.Equal(t, 12, updates[2].ID)
	assert.NoError(t, updates[2].Err)
	assert.Nil(t, updates[2].Message)
}

func TestDecodeUpdates_MalformedItem(t *testing.T) {
	data := []byte(`{"ok":true,"result":[
		{"update_id":20,"message":"not an object"},
		{"update_id":21,"message":{"message_id":1,"date":0,"text":"1","chat":{"id":222,"type":"private"}}}
	]}`)

	updates, err := decodeUpdates(data)
	require.NoError(t, err)
	require.Len(t, updates, 2)

	assert.Equal(t, 20, updates[0].ID)
	assert.Error(t, updates[0].Err)
	assert.Nil(t, updates[0].Message)

	assert.Equal(t, 21, updates[1].ID)
	assert.NoError(t, updates[1].Err)
	assert.Equal(t, int64(222), updates[1].Message.ChatID)
}

func TestDecodeUpdates_MissingChat(t *testing.T) {
	data := []byte(`{"ok":true,"result":[{"update_id":30,"message":{"message_id":1,"date":0,"text":"hi"}}]}`)

	updates, err := decodeUpdates(data)
	require.NoError(t, err)
	require.Len(t, updates, 1)

	assert.Equal(t, 30, updates[0].ID)
	assert.ErrorIs(t, updates[0].Err, ErrNoChat)
}

func TestDecodeUpdates_Empty(t *testing.T) {
	updates, err := decodeUpdates([]byte(`{"ok":true,"result":[]}`))

	assert.NoError(t, err)
	assert.Empty(t, updates)
}

func TestDecodeUpdates_BrokenEnvelope(t *testing.T) {
	updates, err := decodeUpdates([]byte(`{"ok":true,"result":`))

	assert.Error(t, err)
	assert.Nil(t, updates)
}
