package services

import (
	"context"
	"fmt"
	"kinstore/internal/apperr"
	"kinstore/internal/models"
	"kinstore/internal/providers"
	"kinstore/internal/storage"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

type ChatServiceInterface interface {
	Get(ctx context.Context) (*models.ChatStore, error)
	Apply(ctx context.Context, action *models.ChatAction) error
}

type ChatService struct {
	store   storage.StoreInterface
	metrics providers.MetricsProviderInterface
	now     func() time.Time
}

func NewChatService(store storage.StoreInterface, metrics providers.MetricsProviderInterface) ChatServiceInterface {
	return &ChatService{
		store:   store,
		metrics: metrics,
		now:     time.Now,
	}
}

func (s *ChatService) Get(ctx context.Context) (*models.ChatStore, error) {
	var chat models.ChatStore
	if err := s.store.Read(ctx, storage.Chat, &chat); err != nil {
		return nil, err
	}
	if chat.Conversations == nil {
		chat.Conversations = []*models.Conversation{}
	}
	if chat.Messages == nil {
		chat.Messages = []*models.Message{}
	}
	return &chat, nil
}

// Apply reads the chat document, performs one mutation and writes it back.
// A malformed action is rejected before anything is written.
func (s *ChatService) Apply(ctx context.Context, action *models.ChatAction) error {
	mutate, err := s.mutation(action)
	if err != nil {
		return err
	}

	chat, err := s.Get(ctx)
	if err != nil {
		return err
	}
	mutate(chat)

	if err = s.store.Write(ctx, storage.Chat, chat); err != nil {
		return err
	}
	s.metrics.SetRecordsTotal("conversations", len(chat.Conversations))
	s.metrics.SetRecordsTotal("messages", len(chat.Messages))
	return nil
}

func decodeID(payload json.RawMessage) (string, error) {
	var id string
	if err := json.Unmarshal(payload, &id); err != nil {
		return "", apperr.BadRequest("payload must be an id string", err)
	}
	if strings.TrimSpace(id) == "" {
		return "", apperr.BadRequest("payload must be a non-empty id", nil)
	}
	return id, nil
}

func (s *ChatService) mutation(action *models.ChatAction) (func(*models.ChatStore), error) {
	if len(action.Payload) == 0 || string(action.Payload) == "null" {
		return nil, apperr.BadRequest("payload is required", nil)
	}

	switch action.Type {
	case models.ChatAddMessage:
		var msg models.Message
		if err := json.Unmarshal(action.Payload, &msg); err != nil {
			return nil, apperr.BadRequest("payload must be a message", err)
		}
		if msg.ConversationID == "" || strings.TrimSpace(msg.Content) == "" {
			return nil, apperr.BadRequest("message needs a conversationId and content", nil)
		}
		if msg.ID == "" {
			msg.ID = uuid.NewString()
		}
		if msg.Timestamp == "" {
			msg.Timestamp = s.now().UTC().Format(time.RFC3339)
		}
		return func(chat *models.ChatStore) { addMessage(chat, &msg) }, nil

	case models.ChatAddConversation:
		var conv models.Conversation
		if err := json.Unmarshal(action.Payload, &conv); err != nil {
			return nil, apperr.BadRequest("payload must be a conversation", err)
		}
		if conv.ID == "" {
			conv.ID = uuid.NewString()
		}
		return func(chat *models.ChatStore) {
			chat.Conversations = append(chat.Conversations, &conv)
		}, nil

	case models.ChatDeleteConversation:
		id, err := decodeID(action.Payload)
		if err != nil {
			return nil, err
		}
		return func(chat *models.ChatStore) { deleteConversation(chat, id) }, nil

	case models.ChatDeleteMessage:
		id, err := decodeID(action.Payload)
		if err != nil {
			return nil, err
		}
		return func(chat *models.ChatStore) {
			kept := chat.Messages[:0]
			for _, m := range chat.Messages {
				if m.ID != id {
					kept = append(kept, m)
				}
			}
			chat.Messages = kept
		}, nil

	case models.ChatSetAllRead:
		id, err := decodeID(action.Payload)
		if err != nil {
			return nil, err
		}
		return func(chat *models.ChatStore) { setAllRead(chat, id) }, nil
	}

	return nil, apperr.BadRequest(fmt.Sprintf("unknown chat action %q", action.Type), nil)
}

// addMessage appends msg and refreshes the summary of its conversation, if
// that conversation exists.
func addMessage(chat *models.ChatStore, msg *models.Message) {
	chat.Messages = append(chat.Messages, msg)
	for _, c := range chat.Conversations {
		if c.ID != msg.ConversationID {
			continue
		}
		c.LastMessage = msg.Content
		c.LastMessageTime = msg.Timestamp
		if !msg.IsAdmin && !msg.Read {
			c.UnreadCount++
		}
		return
	}
}

// deleteConversation drops the conversation and exactly the messages that
// reference it.
func deleteConversation(chat *models.ChatStore, id string) {
	convs := chat.Conversations[:0]
	for _, c := range chat.Conversations {
		if c.ID != id {
			convs = append(convs, c)
		}
	}
	chat.Conversations = convs

	msgs := chat.Messages[:0]
	for _, m := range chat.Messages {
		if m.ConversationID != id {
			msgs = append(msgs, m)
		}
	}
	chat.Messages = msgs
}

func setAllRead(chat *models.ChatStore, conversationID string) {
	for _, m := range chat.Messages {
		if m.ConversationID == conversationID {
			m.Read = true
		}
	}
	for _, c := range chat.Conversations {
		if c.ID == conversationID {
			c.UnreadCount = 0
		}
	}
}
