package models

import json "github.com/goccy/go-json"

type Participant struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

type Message struct {
	ID             string      `json:"id"`
	ConversationID string      `json:"conversationId"`
	Sender         Participant `json:"sender"`
	Content        string      `json:"content"`
	Timestamp      string      `json:"timestamp"`
	Read           bool        `json:"read"`
	IsAdmin        bool        `json:"isAdmin"`
}

type Conversation struct {
	ID              string      `json:"id"`
	User            Participant `json:"user"`
	LastMessage     string      `json:"lastMessage"`
	LastMessageTime string      `json:"lastMessageTime"`
	UnreadCount     int         `json:"unreadCount"`
	Status          string      `json:"status"`
}

// ChatStore is the whole chat document. Messages point at conversations by
// id only; nothing enforces that the conversation exists.
type ChatStore struct {
	Conversations []*Conversation `json:"conversations"`
	Messages      []*Message      `json:"messages"`
}

const (
	ChatAddMessage         = "addMessage"
	ChatAddConversation    = "addConversation"
	ChatDeleteConversation = "deleteConversation"
	ChatDeleteMessage      = "deleteMessage"
	ChatSetAllRead         = "setAllRead"
)

// ChatAction is the body of POST /api/chat; Payload depends on Type.
type ChatAction struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}
