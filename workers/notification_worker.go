package workers

import (
	"context"

	log "github.com/sirupsen/logrus"

	"docspot/internal/messages"
	"docspot/internal/store"
)

// CreateNotificationWorker drains c into the messages collection until c is closed.
// The returned channel is closed once the last message has been written.
func CreateNotificationWorker(c chan messages.Message, st *store.Store) <-chan struct{} {
	done := make(chan struct{})
	col := messages.Collection(st)

	go func(cc chan messages.Message) {
		defer close(done)
		for data := range cc {
			msg, err := messages.Compose(data)
			if err != nil {
				log.Error(err)
				continue
			}
			if err := col.Add(context.Background(), msg); err != nil {
				log.Error(err)
			}
		}
	}(c)

	return done
}

// Notify queues m without blocking. It reports false when the queue is full or missing.
func Notify(c chan messages.Message, m messages.Message) bool {
	if c == nil {
		return false
	}
	select {
	case c <- m:
		return true
	default:
		log.Warnf("notification queue full, dropping %q for %s", m.Subject, m.ReceiverID)
		return false
	}
}
