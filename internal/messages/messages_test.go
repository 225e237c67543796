package messages

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docspot/internal/storage"
	"docspot/internal/store"
)

func TestInboxAndMarkRead(t *testing.T) {
	ctx := context.Background()
	c := Collection(store.New(storage.NewMemory(), nil))

	m, err := Compose(Message{SenderID: "doctor-1", ReceiverID: "patient-1", Subject: "Results", Content: "All clear"})
	require.NoError(t, err)
	require.NoError(t, c.Add(ctx, m))

	other, err := Compose(Message{SenderID: "patient-1", ReceiverID: "doctor-1", Subject: "Thanks"})
	require.NoError(t, err)
	require.NoError(t, c.Add(ctx, other))

	inbox, err := Inbox(ctx, c, "patient-1")
	require.NoError(t, err)
	require.Len(t, inbox, 1)

	unread, err := Unread(ctx, c, "patient-1")
	require.NoError(t, err)
	assert.Len(t, unread, 1)

	require.NoError(t, MarkRead(ctx, c, m.ID))
	require.NoError(t, MarkRead(ctx, c, "message-404"))

	unread, err = Unread(ctx, c, "patient-1")
	require.NoError(t, err)
	assert.Empty(t, unread)

	all, err := c.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestComposeNeedsReceiver(t *testing.T) {
	_, err := Compose(Message{SenderID: "doctor-1"})
	assert.Error(t, err)
}
