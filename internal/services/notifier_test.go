package services

import (
	"context"
	"errors"
	"testing"

	"github.com/hardik-python-lr/our-gate-backend/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestPushNotifier_Notify(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t)
	sender := mocks.NewMockPushSender()
	core, logs := observer.New(zap.DebugLevel)
	notifier := NewPushNotifier(w.pushTokens, sender, zap.New(core))

	withToken := w.seed.User("Asha")
	_, err := w.pushTokens.Save(ctx, withToken.ID, "", "device-token-1")
	require.NoError(t, err)
	withoutToken := w.seed.User("Ravi")

	notifier.Notify(ctx, withToken.ID, "Service Request.", "hello")
	require.Len(t, sender.Sent, 1)
	assert.Equal(t, "device-token-1", sender.Sent[0].Token)
	assert.Equal(t, "hello", sender.Sent[0].Body)

	notifier.Notify(ctx, withoutToken.ID, "Service Request.", "hello")
	assert.Len(t, sender.Sent, 1)
	assert.Equal(t, 1, logs.FilterMessage("no push token").Len())
}

func TestPushNotifier_SwallowsDeliveryFailure(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t)
	sender := mocks.NewMockPushSender()
	sender.SendFunc = func(ctx context.Context, token, title, body string) error {
		return errors.New("fcm unavailable")
	}
	core, logs := observer.New(zap.WarnLevel)
	notifier := NewPushNotifier(w.pushTokens, sender, zap.New(core))

	u := w.seed.User("Asha")
	_, err := w.pushTokens.Save(ctx, u.ID, "", "device-token-1")
	require.NoError(t, err)

	notifier.Notify(ctx, u.ID, "title", "body")
	assert.Equal(t, 1, logs.FilterMessage("push delivery failed").Len())
}
