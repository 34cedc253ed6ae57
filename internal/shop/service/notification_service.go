package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/stephenrocksolid/shopmgr/internal/shop/entity"
	"github.com/stephenrocksolid/shopmgr/internal/shop/repository"
)

// NotificationService stores internal notifications and fans them out over
// redis pub/sub when a client is configured. The publish is best-effort; the
// database row is the source of truth.
type NotificationService struct {
	repo *repository.NotificationRepository
	rdb  *redis.Client
}

func NewNotificationService(repo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

// SetRedis injects the pub/sub client.
func (s *NotificationService) SetRedis(rdb *redis.Client) {
	s.rdb = rdb
}

// Notify persists a notification and publishes it to the recipient's channel.
func (s *NotificationService) Notify(ctx context.Context, recipient, notifyType, title, body, refType, refID string) (*entity.Notification, error) {
	if recipient == "" {
		return nil, nil
	}
	n := &entity.Notification{
		ID:        uuid.New().String(),
		Recipient: recipient,
		Type:      notifyType,
		Title:     title,
		Body:      body,
		RefType:   refType,
		RefID:     refID,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if payload, err := json.Marshal(n); err == nil {
			pubCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			s.rdb.Publish(pubCtx, "shop:notifications:"+recipient, payload)
		}
	}
	return n, nil
}

func (s *NotificationService) List(ctx context.Context, recipient string, unreadOnly bool, page, pageSize int) ([]entity.Notification, int64, error) {
	return s.repo.FindByRecipient(ctx, recipient, unreadOnly, page, pageSize)
}

func (s *NotificationService) UnreadCount(ctx context.Context, recipient string) (int64, error) {
	return s.repo.UnreadCount(ctx, recipient)
}

func (s *NotificationService) MarkRead(ctx context.Context, id, recipient string) error {
	return s.repo.MarkRead(ctx, id, recipient)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, recipient string) error {
	return s.repo.MarkAllRead(ctx, recipient)
}
