package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Image string `json:"image"`
	Icon  string `json:"icon,omitempty"`
}

type fcmMessage struct {
	RegistrationIDs []string        `json:"registration_ids"`
	Priority        string          `json:"priority"`
	Notification    fcmNotification `json:"notification"`
}

type fcmResponse struct {
	Success int `json:"success"`
	Failure int `json:"failure"`
	Results []struct {
		Error string `json:"error,omitempty"`
	} `json:"results"`
}

// FCMSender implements domain.PushSender against the FCM legacy HTTP endpoint.
type FCMSender struct {
	http     *resty.Client
	endpoint string
	icon     string
}

func NewFCMSender(endpoint, serverKey, icon string, timeout time.Duration) *FCMSender {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", "key="+serverKey)

	return &FCMSender{http: client, endpoint: endpoint, icon: icon}
}

// Send delivers one notification to one device token.
func (s *FCMSender) Send(ctx context.Context, token, title, body string) error {
	msg := fcmMessage{
		RegistrationIDs: []string{token},
		Priority:        "high",
		Notification:    fcmNotification{Title: title, Body: body, Icon: s.icon},
	}

	var out fcmResponse
	resp, err := s.http.R().
		SetContext(ctx).
		SetBody(msg).
		SetResult(&out).
		Post(s.endpoint)
	if err != nil {
		return fmt.Errorf("failed to call push endpoint: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("push endpoint returned %d", resp.StatusCode())
	}
	if out.Failure > 0 {
		reason := "unknown"
		if len(out.Results) > 0 && out.Results[0].Error != "" {
			reason = out.Results[0].Error
		}
		return fmt.Errorf("push rejected: %s", reason)
	}
	return nil
}
