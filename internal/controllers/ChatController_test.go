package controllers

import (
	"kinstore/internal/models"
	"kinstore/internal/services"
	"kinstore/internal/testutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatController(t *testing.T) (*ChatController, *testutil.MockCache) {
	store, _ := newTestStore(t)
	cache := testutil.NewMockCache()
	return NewChatController(&mockLogger{}, services.NewChatService(store, testutil.NewMockMetrics()), cache), cache
}

func postChat(cc *ChatController, body string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	cc.Apply(rr, httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body)))
	return rr
}

func TestChatController_ApplyAndGet(t *testing.T) {
	cc, cache := newChatController(t)

	rr := postChat(cc, `{"type":"addConversation","payload":{"id":"c1","status":"online"}}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"ok":true}`, rr.Body.String())
	assert.Equal(t, []string{chatCacheKey}, cache.Deleted)

	require.Equal(t, http.StatusOK, postChat(cc, `{"type":"addMessage","payload":{"id":"m1","conversationId":"c1","content":"hola"}}`).Code)
	require.Equal(t, http.StatusOK, postChat(cc, `{"type":"addMessage","payload":{"id":"m2","conversationId":"c2","content":"other"}}`).Code)
	require.Equal(t, http.StatusOK, postChat(cc, `{"type":"deleteConversation","payload":"c1"}`).Code)

	rr = httptest.NewRecorder()
	cc.Get(rr, httptest.NewRequest(http.MethodGet, "/api/chat", nil))
	var chat models.ChatStore
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &chat))
	assert.Empty(t, chat.Conversations)
	require.Len(t, chat.Messages, 1)
	assert.Equal(t, "m2", chat.Messages[0].ID)
}

func TestChatController_GetEmptyStore(t *testing.T) {
	cc, _ := newChatController(t)

	rr := httptest.NewRecorder()
	cc.Get(rr, httptest.NewRequest(http.MethodGet, "/api/chat", nil))

	assert.JSONEq(t, `{"conversations":[],"messages":[]}`, rr.Body.String())
}

func TestChatController_Rejects(t *testing.T) {
	cc, cache := newChatController(t)

	for _, body := range []string{`{"type":"explode","payload":"x"}`, `not json`, `{"type":"deleteMessage"}`} {
		rr := postChat(cc, body)
		assert.Equal(t, http.StatusBadRequest, rr.Code, body)
	}
	assert.Empty(t, cache.Deleted)
}
