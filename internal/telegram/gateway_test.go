package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"
)

type apiCall struct {
	method string
	body   map[string]interface{}
}

// fakeAPI records Bot API calls and answers with canned responses per method
type fakeAPI struct {
	mu        sync.Mutex
	calls     []apiCall
	responses map[string]string
	block     chan struct{}
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	method := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]

	var body map[string]interface{}
	_ = json.NewDecoder(r.Body).Decode(&body)

	f.mu.Lock()
	f.calls = append(f.calls, apiCall{method: method, body: body})
	resp := f.responses[method]
	f.mu.Unlock()

	if f.block != nil {
		<-f.block
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(resp))
}

func newTestGateway(t *testing.T, api *fakeAPI) *BotGateway {
	t.Helper()

	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	bot, err := tele.NewBot(tele.Settings{
		URL:     srv.URL,
		Token:   "test_token",
		Offline: true,
	})
	require.NoError(t, err)

	return NewBotGateway(bot)
}

func TestBotGateway_Poll(t *testing.T) {
	api := &fakeAPI{responses: map[string]string{
		"getUpdates": `{"ok":true,"result":[{"update_id":5,"message":{"message_id":1,"date":0,"text":"/create","chat":{"id":222,"type":"private"}}}]}`,
	}}
	gw := newTestGateway(t, api)

	updates, err := gw.Poll(context.Background(), 5, 30*time.Second)

	require.NoError(t, err)
	require.Len(t, updates, 1)
	assert.Equal(t, 5, updates[0].ID)
	assert.Equal(t, "/create", updates[0].Message.Text)

	require.Len(t, api.calls, 1)
	assert.Equal(t, "getUpdates", api.calls[0].method)
	assert.EqualValues(t, 5, api.calls[0].body["offset"])
	assert.EqualValues(t, 30, api.calls[0].body["timeout"])
}

func TestBotGateway_Poll_APIError(t *testing.T) {
	api := &fakeAPI{responses: map[string]string{
		"getUpdates": `{"ok":false,"error_code":409,"description":"Conflict: terminated by other getUpdates request"}`,
	}}
	gw := newTestGateway(t, api)

	updates, err := gw.Poll(context.Background(), 0, time.Second)

	assert.Error(t, err)
	assert.Nil(t, updates)
}

func TestBotGateway_Poll_Cancelled(t *testing.T) {
	api := &fakeAPI{
		responses: map[string]string{"getUpdates": `{"ok":true,"result":[]}`},
		block:     make(chan struct{}),
	}
	gw := newTestGateway(t, api)
	defer close(api.block)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	updates, err := gw.Poll(ctx, 0, 30*time.Second)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, updates)
}

func TestBotGateway_Send(t *testing.T) {
	api := &fakeAPI{responses: map[string]string{
		"sendMessage": `{"ok":true,"result":{"message_id":7,"date":0,"text":"Unknown command","chat":{"id":222,"type":"private"}}}`,
	}}
	gw := newTestGateway(t, api)

	err := gw.Send(context.Background(), 222, "Unknown command")

	require.NoError(t, err)
	require.Len(t, api.calls, 1)
	assert.Equal(t, "sendMessage", api.calls[0].method)
	assert.Equal(t, "222", api.calls[0].body["chat_id"])
	assert.Equal(t, "Unknown command", api.calls[0].body["text"])
}

func TestBotGateway_Send_Error(t *testing.T) {
	api := &fakeAPI{responses: map[string]string{
		"sendMessage": `{"ok":false,"error_code":403,"description":"Forbidden: bot was blocked by the user"}`,
	}}
	gw := newTestGateway(t, api)

	err := gw.Send(context.Background(), 222, "hello")

	assert.Error(t, err)
}

func TestBotGateway_Send_CancelledContext(t *testing.T) {
	api := &fakeAPI{responses: map[string]string{}}
	gw := newTestGateway(t, api)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := gw.Send(ctx, 222, "hello")

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, api.calls)
}
