package client

import (
	"fmt"
	"sync"
	"time"
)

const OTPWindow = 10 * time.Minute

// OTPCountdown tracks how long an emailed code can still be entered.
type OTPCountdown struct {
	now    func() time.Time
	window time.Duration

	mu      sync.Mutex
	started time.Time
}

func NewOTPCountdown(now func() time.Time) *OTPCountdown {
	if now == nil {
		now = time.Now
	}
	return &OTPCountdown{now: now, window: OTPWindow, started: now()}
}

// Restart begins a new window after a resend.
func (o *OTPCountdown) Restart() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.started = o.now()
}

func (o *OTPCountdown) Remaining() time.Duration {
	o.mu.Lock()
	defer o.mu.Unlock()
	left := o.window - o.now().Sub(o.started)
	if left < 0 {
		return 0
	}
	return left
}

// Expired disables the code input and offers a resend.
func (o *OTPCountdown) Expired() bool {
	return o.Remaining() == 0
}

// Display renders the remaining time as MM:SS.
func (o *OTPCountdown) Display() string {
	left := o.Remaining().Round(time.Second)
	m := int(left / time.Minute)
	s := int((left % time.Minute) / time.Second)
	return fmt.Sprintf("%02d:%02d", m, s)
}
