package repository

import (
	"context"
	"errors"

	"agora/internal/cache"
	"agora/internal/models"

	"gorm.io/gorm"
)

// MessageRepository defines persistence operations for direct messages.
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	GetByID(ctx context.Context, id uint) (*models.Message, error)
	Conversation(ctx context.Context, userA, userB uint, limit, offset int) ([]models.Message, error)
	Conversations(ctx context.Context, userID uint) ([]models.ConversationSummary, error)
	MarkRead(ctx context.Context, messageID uint) error
	MarkConversationRead(ctx context.Context, receiverID, senderID uint) (int64, error)
	Delete(ctx context.Context, id uint) error
	UnreadCount(ctx context.Context, userID uint) (int64, error)
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository returns a new MessageRepository implementation.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return translateWriteError(err, "Message already exists")
	}
	cache.Invalidate(ctx, cache.ConversationsKey(message.SenderID))
	cache.Invalidate(ctx, cache.ConversationsKey(message.ReceiverID))
	return nil
}

func (r *messageRepository) GetByID(ctx context.Context, id uint) (*models.Message, error) {
	var message models.Message
	if err := r.db.WithContext(ctx).First(&message, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Message", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &message, nil
}

func (r *messageRepository) Conversation(ctx context.Context, userA, userB uint, limit, offset int) ([]models.Message, error) {
	var messages []models.Message
	if err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}

// Conversations lists the user's message threads, one row per peer, carrying
// the latest message and the count of unread messages from that peer.
func (r *messageRepository) Conversations(ctx context.Context, userID uint) ([]models.ConversationSummary, error) {
	var summaries []models.ConversationSummary
	key := cache.ConversationsKey(userID)

	err := cache.Aside(ctx, key, &summaries, cache.ConversationTTL, func() error {
		if err := r.db.WithContext(ctx).
			Raw(`SELECT DISTINCT ON (peer_id)
			       peer_id,
			       u.username AS peer_username,
			       m.message_id AS last_message_id,
			       m.content AS last_content,
			       m.sender_id AS last_sender_id,
			       m.created_at AS last_message_time,
			       (SELECT COUNT(*) FROM messages
			        WHERE receiver_id = ? AND sender_id = peer_id AND is_read = FALSE) AS unread_count
			     FROM (
			       SELECT *, CASE WHEN sender_id = ? THEN receiver_id ELSE sender_id END AS peer_id
			       FROM messages
			       WHERE sender_id = ? OR receiver_id = ?
			     ) m
			     JOIN users u ON u.user_id = m.peer_id
			     ORDER BY peer_id, m.created_at DESC`,
				userID, userID, userID, userID).
			Scan(&summaries).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

func (r *messageRepository) MarkRead(ctx context.Context, messageID uint) error {
	result := r.db.WithContext(ctx).Model(&models.Message{}).
		Where("message_id = ?", messageID).
		Update("is_read", true)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Message", messageID)
	}
	return nil
}

// MarkConversationRead marks every unread message from senderID to
// receiverID as read and returns how many rows changed.
func (r *messageRepository) MarkConversationRead(ctx context.Context, receiverID, senderID uint) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Message{}).
		Where("receiver_id = ? AND sender_id = ? AND is_read = FALSE", receiverID, senderID).
		Update("is_read", true)
	if result.Error != nil {
		return 0, models.NewInternalError(result.Error)
	}
	cache.Invalidate(ctx, cache.ConversationsKey(receiverID))
	return result.RowsAffected, nil
}

func (r *messageRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Message{}, id)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Message", id)
	}
	return nil
}

func (r *messageRepository) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("receiver_id = ? AND is_read = FALSE", userID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
