package job

import (
	"context"
	"log/slog"
	"time"

	"github.com/maheshrc27/tripnest-api/internal/repository"
	"github.com/robfig/cron"
)

const (
	OTPCleanupSchedule = "@every 10m"
	otpRetention       = 24 * time.Hour
	otpCleanupTimeout  = time.Minute
)

// OTPCleanupJob removes consumed codes and codes expired for over a day.
type OTPCleanupJob struct {
	otps repository.OTPRepository
	now  func() time.Time
}

func NewOTPCleanupJob(otps repository.OTPRepository) *OTPCleanupJob {
	return &OTPCleanupJob{
		otps: otps,
		now:  time.Now,
	}
}

func (j *OTPCleanupJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), otpCleanupTimeout)
	defer cancel()

	n, err := j.otps.DeleteStale(ctx, j.now().Add(-otpRetention))
	if err != nil {
		slog.Info(err.Error())
		return
	}
	if n > 0 {
		slog.Info("otp codes cleaned", "deleted", n)
	}
}

// Schedule registers the job on c.
func (j *OTPCleanupJob) Schedule(c *cron.Cron) error {
	return c.AddFunc(OTPCleanupSchedule, j.Run)
}
