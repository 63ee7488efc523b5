package models

import "time"

// Message is a direct message between two users. CHECK constraints reject
// sender == receiver and rows with neither content nor media.
type Message struct {
	ID         uint      `gorm:"primaryKey;column:message_id" json:"message_id"`
	SenderID   uint      `gorm:"not null;index" json:"sender_id"`
	Sender     *User     `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	ReceiverID uint      `gorm:"not null;index" json:"receiver_id"`
	Receiver   *User     `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
	Content    *string   `gorm:"type:text" json:"content"`
	MediaURL   *string   `gorm:"size:512" json:"media_url"`
	IsRead     bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (Message) TableName() string {
	return "messages"
}

// ConversationSummary is one row of the per-peer conversation listing:
// the latest message exchanged with a peer plus the unread count from them.
type ConversationSummary struct {
	PeerID          uint      `json:"peer_id"`
	PeerUsername    string    `json:"peer_username"`
	LastMessageID   uint      `json:"last_message_id"`
	LastContent     *string   `json:"last_content"`
	LastSenderID    uint      `json:"last_sender_id"`
	LastMessageTime time.Time `json:"last_message_time"`
	UnreadCount     int64     `json:"unread_count"`
}
