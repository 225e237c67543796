package messages

import (
	"context"
	"errors"
	"time"

	"docspot/internal/store"
)

type Message struct {
	ID           string `json:"id"`
	SenderID     string `json:"senderId"`
	ReceiverID   string `json:"receiverId"`
	SenderName   string `json:"senderName"`
	ReceiverName string `json:"receiverName"`
	Subject      string `json:"subject"`
	Content      string `json:"content"`
	Read         bool   `json:"read"`
	CreatedAt    string `json:"createdAt"`
}

func (m Message) GetID() string { return m.ID }

func Collection(st *store.Store) *store.Collection[Message] {
	return store.NewCollection[Message](st, store.MessagesKey)
}

func Compose(m Message) (Message, error) {
	if m.ReceiverID == "" {
		return m, errors.New("receiverId required")
	}
	m.ID = store.NewID("message")
	m.Read = false
	m.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	return m, nil
}

// MarkRead flags the message as read. Unknown ids are ignored.
func MarkRead(ctx context.Context, c *store.Collection[Message], id string) error {
	m, ok, err := c.Get(ctx, id)
	if err != nil || !ok {
		return err
	}
	m.Read = true
	return c.Update(ctx, m)
}

func Inbox(ctx context.Context, c *store.Collection[Message], userID string) ([]Message, error) {
	return c.Filter(ctx, func(m Message) bool { return m.ReceiverID == userID })
}

func Unread(ctx context.Context, c *store.Collection[Message], userID string) ([]Message, error) {
	return c.Filter(ctx, func(m Message) bool { return m.ReceiverID == userID && !m.Read })
}
