package queue

import (
	"time"

	"github.com/maheshrc27/tripnest-api/internal/mailer"
	"github.com/maheshrc27/tripnest-api/internal/service"
)

const (
	TaskTypeSendOTP      = "email:otp"
	TaskTypeDeleteObject = "storage:delete"
)

type SendOTPPayload struct {
	Email   string `json:"email"`
	Code    string `json:"code"`
	Purpose string `json:"purpose"`
}

type DeleteObjectPayload struct {
	Key string `json:"key"`
}

// Queue runs the background tasks.
type Queue struct {
	mail    mailer.Mailer
	storage service.ObjectStorage
	otpTTL  time.Duration
}

func NewQueue(mail mailer.Mailer, storage service.ObjectStorage, otpTTL time.Duration) *Queue {
	return &Queue{
		mail:    mail,
		storage: storage,
		otpTTL:  otpTTL,
	}
}
