package workers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docspot/internal/messages"
	"docspot/internal/storage"
	"docspot/internal/store"
)

func TestNotificationWorker(t *testing.T) {
	st := store.New(storage.NewMemory(), nil)
	c := make(chan messages.Message, 4)
	done := CreateNotificationWorker(c, st)

	assert.True(t, Notify(c, messages.Message{SenderID: "patient-1", ReceiverID: "doctor-1", Subject: "New appointment"}))
	assert.True(t, Notify(c, messages.Message{SenderID: "doctor-1", Subject: "no receiver"}))
	assert.True(t, Notify(c, messages.Message{SenderID: "doctor-1", ReceiverID: "patient-1", Subject: "Appointment confirmed"}))
	close(c)
	<-done

	all, err := messages.Collection(st).List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "doctor-1", all[0].ReceiverID)
	assert.False(t, all[0].Read)
	assert.NotEmpty(t, all[1].ID)
}

func TestNotifyFullQueue(t *testing.T) {
	c := make(chan messages.Message, 1)
	assert.True(t, Notify(c, messages.Message{ReceiverID: "a"}))
	assert.False(t, Notify(c, messages.Message{ReceiverID: "b"}))
	assert.False(t, Notify(nil, messages.Message{ReceiverID: "c"}))
}
