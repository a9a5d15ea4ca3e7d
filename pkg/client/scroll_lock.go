package client

import "sync"

// ScrollLock is held while any modal is open. onChange fires when the lock
// engages and when it is released for the last time.
type ScrollLock struct {
	mu       sync.Mutex
	count    int
	onChange func(locked bool)
}

func NewScrollLock(onChange func(locked bool)) *ScrollLock {
	if onChange == nil {
		onChange = func(bool) {}
	}
	return &ScrollLock{onChange: onChange}
}

// Acquire takes a reference. The returned release may be called more than once.
func (l *ScrollLock) Acquire() (release func()) {
	l.mu.Lock()
	l.count++
	if l.count == 1 {
		l.onChange(true)
	}
	l.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			defer l.mu.Unlock()
			l.count--
			if l.count == 0 {
				l.onChange(false)
			}
		})
	}
}

func (l *ScrollLock) Locked() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count > 0
}
