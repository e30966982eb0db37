package services

import (
	"context"
	"errors"

	"github.com/hardik-python-lr/our-gate-backend/domain"
	"go.uber.org/zap"
)

// PushNotifier implements domain.Notifier by pushing to the user's latest
// device token. Failures are logged and dropped.
type PushNotifier struct {
	tokens domain.PushTokenRepository
	sender domain.PushSender
	log    *zap.Logger
}

func NewPushNotifier(tokens domain.PushTokenRepository, sender domain.PushSender, log *zap.Logger) *PushNotifier {
	return &PushNotifier{tokens: tokens, sender: sender, log: log.Named("notifier")}
}

func (n *PushNotifier) Notify(ctx context.Context, userID uint, title, body string) {
	token, err := n.tokens.FindByUser(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		n.log.Debug("no push token", zap.Uint("user_id", userID))
		return
	}
	if err != nil {
		n.log.Warn("push token lookup failed", zap.Uint("user_id", userID), zap.Error(err))
		return
	}
	if err := n.sender.Send(ctx, token.CurrentToken, title, body); err != nil {
		n.log.Warn("push delivery failed", zap.Uint("user_id", userID), zap.Error(err))
	}
}
