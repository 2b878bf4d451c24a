package service

import (
	"context"
	"errors"

	"charmly/internal/ai"
	"charmly/internal/domain"
	"charmly/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrMessageNotFound = errors.New("message not found or already read")

// MessageStore is the persistence surface for chat messages.
type MessageStore interface {
	Create(m *models.Message) error
	ListConversation(userID, otherID uint, limit, offset int) ([]models.Message, error)
	RecentHistory(userID, otherID uint, n int) ([]models.Message, error)
	CountConversation(userID, otherID uint) (int64, error)
	MarkRead(messageID, userID uint) (*models.Message, error)
	CountUnread(userID uint) (int64, error)
}

type ChatService struct {
	messages      MessageStore
	users         UserStore
	companion     *ai.Companion
	historyWindow int
	pusher        EventPusher
	logger        *zap.Logger
}

func NewChatService(messages MessageStore, users UserStore, companion *ai.Companion, historyWindow int, pusher EventPusher, logger *zap.Logger) *ChatService {
	if historyWindow <= 0 {
		historyWindow = 20
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatService{
		messages:      messages,
		users:         users,
		companion:     companion,
		historyWindow: historyWindow,
		pusher:        pusher,
		logger:        logger,
	}
}

// SendResult carries the persisted user message and, when the receiver is
// the AI companion, its reply.
type SendResult struct {
	UserMessage *models.Message `json:"user_message"`
	AIMessage   *models.Message `json:"ai_message,omitempty"`
}

// Send persists the sender's message. When the receiver is the AI companion,
// the recent conversation is replayed to the model and the reply is persisted
// and returned alongside. Generator trouble never fails the call; the
// companion answers with a stock apology instead.
func (s *ChatService) Send(ctx context.Context, senderID, receiverID uint, content string) (*SendResult, error) {
	sender, err := s.users.GetByID(senderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	receiver, err := s.users.GetByID(receiverID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	userMsg := &models.Message{
		SenderID:    senderID,
		ReceiverID:  receiverID,
		Content:     content,
		MessageType: domain.MessageTypeText,
	}
	if err := s.messages.Create(userMsg); err != nil {
		return nil, err
	}
	result := &SendResult{UserMessage: userMsg}

	if !receiver.IsCompanion {
		// Human conversation: just deliver.
		if s.pusher != nil {
			s.pusher.Push(receiverID, "chat.message", userMsg)
		}
		return result, nil
	}

	history, err := s.messages.RecentHistory(senderID, receiverID, s.historyWindow)
	if err != nil {
		s.logger.Warn("loading chat history failed", zap.Uint("sender", uint(senderID)), zap.Error(err))
		history = nil
	}
	turns := make([]ai.Turn, 0, len(history))
	for _, m := range history {
		if m.ID == userMsg.ID {
			continue // the new message is passed separately
		}
		role := "assistant"
		if m.SenderID == senderID {
			role = "user"
		}
		turns = append(turns, ai.Turn{Role: role, Content: m.Content})
	}

	reply := s.companion.Reply(ctx, content, turns, ai.UserContext{
		Name:            sender.Name,
		Country:         sender.Country,
		Interests:       sender.Preferences.Interests,
		PersonalityTags: sender.PersonalityTags,
	})
	tone := s.companion.AnalyzeTone(ctx, reply)

	aiMsg := &models.Message{
		SenderID:      receiverID,
		ReceiverID:    senderID,
		Content:       reply,
		MessageType:   domain.MessageTypeAI,
		EmotionalTone: tone,
	}
	if err := s.messages.Create(aiMsg); err != nil {
		return nil, err
	}
	result.AIMessage = aiMsg
	if s.pusher != nil {
		s.pusher.Push(senderID, "chat.message", aiMsg)
	}
	return result, nil
}

// Page is history pagination metadata.
type Page struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// History returns one page of the conversation in chronological order.
func (s *ChatService) History(userID, otherID uint, page, limit int) ([]models.Message, *Page, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	list, err := s.messages.ListConversation(userID, otherID, limit, (page-1)*limit)
	if err != nil {
		return nil, nil, err
	}
	total, err := s.messages.CountConversation(userID, otherID)
	if err != nil {
		return nil, nil, err
	}
	return list, &Page{Page: page, Limit: limit, Total: total}, nil
}

func (s *ChatService) MarkRead(messageID, userID uint) (*models.Message, error) {
	m, err := s.messages.MarkRead(messageID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return m, nil
}

func (s *ChatService) UnreadCount(userID uint) (int64, error) {
	return s.messages.CountUnread(userID)
}
