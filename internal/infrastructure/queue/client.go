package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/lop-gin/nexus-backoffice/internal/application/ports"
	"github.com/lop-gin/nexus-backoffice/pkg/config"
)

var _ ports.InvitationExpiryScheduler = (*Client)(nil)

// RedisOpt traduce la configuración de Redis al formato de asynq.
func RedisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

// Client encola trabajos.
type Client struct {
	client *asynq.Client
}

// NewClient construye el cliente de la cola.
func NewClient(cfg config.RedisConfig) *Client {
	return &Client{client: asynq.NewClient(RedisOpt(cfg))}
}

// Close libera la conexión.
func (c *Client) Close() error {
	return c.client.Close()
}

// ScheduleInvitationExpiry programa TypeInvitationExpire para el instante at.
// El TaskID evita duplicados si la invitación se reprograma.
func (c *Client) ScheduleInvitationExpiry(ctx context.Context, companyID, invitationID string, at time.Time) error {
	return c.enqueue(ctx, TypeInvitationExpire, InvitationExpirePayload{CompanyID: companyID, InvitationID: invitationID},
		asynq.ProcessAt(at),
		asynq.MaxRetry(5),
		asynq.Timeout(30*time.Second),
		asynq.TaskID("invitation-expire-"+invitationID),
	)
}

func (c *Client) enqueue(ctx context.Context, taskType string, payload any, opts ...asynq.Option) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	task := asynq.NewTask(taskType, data)
	if _, err := c.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("enqueue %s: %w", taskType, err)
	}
	return nil
}
