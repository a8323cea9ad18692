package store

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/gyanbhambhani/rltr/internal/model"
)

// CreateMessage inserts a message into one of the tenant's threads and
// refreshes the thread's last_message_at in the same transaction.
func (s *Store) CreateMessage(ctx context.Context, orgID string, m *model.Message) error {
	if _, err := s.GetThread(ctx, orgID, m.ThreadID); err != nil {
		return err
	}

	m.ID = ""
	m.OrgID = orgID
	if m.Status == "" {
		m.Status = model.MessageStatusPending
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		stamp := m.SentAt
		if stamp == nil {
			now := time.Now()
			stamp = &now
		}
		return tx.Model(&model.Thread{}).
			Where("id = ? AND org_id = ?", m.ThreadID, orgID).
			Update("last_message_at", stamp).Error
	})
}

// GetMessage fetches a message by id within the tenant
func (s *Store) GetMessage(ctx context.Context, orgID, id string) (*model.Message, error) {
	var m model.Message
	err := s.tenant(orgID).WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &m, nil
}

// ListMessages returns the messages of one of the tenant's threads in send
// order, oldest first. Messages that never left the outbox sort by creation
// time instead.
func (s *Store) ListMessages(ctx context.Context, orgID, threadID string, limit, offset int) ([]model.Message, error) {
	if _, err := s.GetThread(ctx, orgID, threadID); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	var messages []model.Message
	err := s.tenant(orgID).WithContext(ctx).
		Where("thread_id = ?", threadID).
		Order("COALESCE(sent_at, created_at) ASC").
		Offset(offset).Limit(limit).
		Find(&messages).Error
	return messages, err
}

// UpdateMessage applies a partial update to a message, typically delivery
// status transitions reported by a provider.
func (s *Store) UpdateMessage(ctx context.Context, orgID, id string, fields map[string]interface{}) (*model.Message, error) {
	m, err := s.GetMessage(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := s.db.WithContext(ctx).Model(m).Updates(fields).Error; err != nil {
			return nil, err
		}
		return s.GetMessage(ctx, orgID, id)
	}
	return m, nil
}
