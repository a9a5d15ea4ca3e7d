package queue

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

// enqueuer is the part of *asynq.Client the Client needs.
type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Client puts tasks on the queue for the worker.
type Client struct {
	ac enqueuer
}

func NewClient(ac *asynq.Client) *Client {
	return &Client{ac: ac}
}

// SendOTP queues the code mail. A code outlives a few retries, not more.
func (c *Client) SendOTP(ctx context.Context, email, code, purpose string) error {
	return c.enqueue(ctx, TaskTypeSendOTP, SendOTPPayload{Email: email, Code: code, Purpose: purpose},
		asynq.MaxRetry(3), asynq.Timeout(30*time.Second))
}

func (c *Client) DeleteObject(ctx context.Context, key string) error {
	return c.enqueue(ctx, TaskTypeDeleteObject, DeleteObjectPayload{Key: key},
		asynq.MaxRetry(10), asynq.ProcessIn(5*time.Second))
}

func (c *Client) enqueue(ctx context.Context, taskType string, payload any, opts ...asynq.Option) error {
	taskPayload, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	info, err := c.ac.EnqueueContext(ctx, asynq.NewTask(taskType, taskPayload), opts...)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	slog.Debug("task enqueued", "type", taskType, "id", info.ID, "queue", info.Queue)
	return nil
}
