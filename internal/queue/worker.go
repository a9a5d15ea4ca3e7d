package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/maheshrc27/tripnest-api/internal/mailer"
)

// Register mounts the task handlers on mux.
func (q *Queue) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TaskTypeSendOTP, q.HandleSendOTPTask)
	mux.HandleFunc(TaskTypeDeleteObject, q.HandleDeleteObjectTask)
}

func (q *Queue) HandleSendOTPTask(ctx context.Context, task *asynq.Task) error {
	var payload SendOTPPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("decode %s payload: %v: %w", TaskTypeSendOTP, err, asynq.SkipRetry)
	}

	err := q.mail.Send(ctx, mailer.OTPMessage(payload.Email, payload.Code, payload.Purpose, q.otpTTL))
	if errors.Is(err, mailer.ErrNotConfigured) {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (q *Queue) HandleDeleteObjectTask(ctx context.Context, task *asynq.Task) error {
	var payload DeleteObjectPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("decode %s payload: %v: %w", TaskTypeDeleteObject, err, asynq.SkipRetry)
	}
	if payload.Key == "" {
		return fmt.Errorf("empty object key: %w", asynq.SkipRetry)
	}

	if err := q.storage.Delete(ctx, payload.Key); err != nil {
		slog.Info(err.Error())
		return err
	}
	slog.Info("object deleted", "key", payload.Key)
	return nil
}
