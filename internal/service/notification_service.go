package service

import (
	"encoding/json"
	"fmt"

	"charmly/internal/models"
)

// NotificationStore is the persistence surface for notifications.
type NotificationStore interface {
	Create(n *models.Notification) error
}

// EventPusher delivers a live event to a connected user, if any. Implemented
// by the websocket hub.
type EventPusher interface {
	Push(userID uint, event string, payload interface{})
}

type NotificationService struct {
	store  NotificationStore
	pusher EventPusher
}

func NewNotificationService(store NotificationStore, pusher EventPusher) *NotificationService {
	return &NotificationService{store: store, pusher: pusher}
}

func (s *NotificationService) Notify(userID uint, notifType, title, body string, data map[string]interface{}) error {
	var dataJSON string
	if data != nil {
		b, _ := json.Marshal(data)
		dataJSON = string(b)
	}
	err := s.store.Create(&models.Notification{
		UserID: userID,
		Type:   notifType,
		Title:  title,
		Body:   body,
		Data:   dataJSON,
	})
	if err != nil {
		return err
	}
	if s.pusher != nil {
		s.pusher.Push(userID, "notification", map[string]interface{}{
			"type": notifType, "title": title, "body": body, "data": data,
		})
	}
	return nil
}

func (s *NotificationService) NotifyMatchRequest(targetID uint, requesterName string, requestID uint) error {
	return s.Notify(targetID, "MATCH_REQUEST", "New match request",
		requesterName+" sent you a match request",
		map[string]interface{}{"request_id": requestID})
}

func (s *NotificationService) NotifyMatchResponse(requesterID uint, responderName, decision string, requestID uint) error {
	return s.Notify(requesterID, "MATCH_RESPONSE", "Match request "+decision,
		fmt.Sprintf("%s %s your match request", responderName, decision),
		map[string]interface{}{"request_id": requestID, "decision": decision})
}
