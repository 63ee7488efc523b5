package service

import (
	"context"
	"strings"

	"agora/internal/models"
	"agora/internal/repository"
)

type MessageService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
}

type SendMessageInput struct {
	SenderID   uint
	ReceiverID uint
	Content    *string
	MediaURL   *string
}

func NewMessageService(messageRepo repository.MessageRepository, userRepo repository.UserRepository) *MessageService {
	return &MessageService{messageRepo: messageRepo, userRepo: userRepo}
}

const maxMessageLen = 5000

func (s *MessageService) SendMessage(ctx context.Context, in SendMessageInput) (*models.Message, error) {
	if in.SenderID == in.ReceiverID {
		return nil, models.NewValidationError("You cannot message yourself")
	}

	hasContent := in.Content != nil && strings.TrimSpace(*in.Content) != ""
	hasMedia := in.MediaURL != nil && *in.MediaURL != ""
	if !hasContent && !hasMedia {
		return nil, models.NewValidationError("Message needs content or media")
	}
	if in.Content != nil && len(*in.Content) > maxMessageLen {
		return nil, models.NewValidationError("Message too long (max 5000 characters)")
	}

	if _, err := s.userRepo.GetByID(ctx, in.ReceiverID); err != nil {
		return nil, err
	}

	message := &models.Message{
		SenderID:   in.SenderID,
		ReceiverID: in.ReceiverID,
		Content:    in.Content,
		MediaURL:   in.MediaURL,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

// GetConversation returns the two-way message history between the requester
// and a peer, newest first.
func (s *MessageService) GetConversation(ctx context.Context, requesterID, peerID uint, limit, offset int) ([]models.Message, error) {
	if _, err := s.userRepo.GetByID(ctx, peerID); err != nil {
		return nil, err
	}
	return s.messageRepo.Conversation(ctx, requesterID, peerID, normalizeLimit(limit), offset)
}

func (s *MessageService) ListConversations(ctx context.Context, userID uint) ([]models.ConversationSummary, error) {
	return s.messageRepo.Conversations(ctx, userID)
}

// MarkRead marks one message read. Only the receiver may do this.
func (s *MessageService) MarkRead(ctx context.Context, userID, messageID uint) error {
	message, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if message.ReceiverID != userID {
		return models.NewPermissionError("Only the receiver can mark a message read")
	}
	return s.messageRepo.MarkRead(ctx, messageID)
}

// MarkConversationRead marks everything a peer sent to userID as read.
func (s *MessageService) MarkConversationRead(ctx context.Context, userID, peerID uint) (int64, error) {
	return s.messageRepo.MarkConversationRead(ctx, userID, peerID)
}

// DeleteMessage removes a message. Either participant may delete it from
// the conversation.
func (s *MessageService) DeleteMessage(ctx context.Context, userID, messageID uint) error {
	message, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if message.SenderID != userID && message.ReceiverID != userID {
		return models.NewPermissionError("You are not part of this conversation")
	}
	return s.messageRepo.Delete(ctx, messageID)
}

func (s *MessageService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.messageRepo.UnreadCount(ctx, userID)
}
