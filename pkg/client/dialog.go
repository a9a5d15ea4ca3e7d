package client

import (
	"fmt"
	"sync"
)

type DialogState int

const (
	DialogClosed DialogState = iota
	DialogOpening
	DialogOpen
	DialogClosing
)

func (s DialogState) String() string {
	switch s {
	case DialogClosed:
		return "closed"
	case DialogOpening:
		return "opening"
	case DialogOpen:
		return "open"
	case DialogClosing:
		return "closing"
	}
	return fmt.Sprintf("DialogState(%d)", int(s))
}

var dialogNext = map[DialogState]DialogState{
	DialogClosed:  DialogOpening,
	DialogOpening: DialogOpen,
	DialogOpen:    DialogClosing,
	DialogClosing: DialogClosed,
}

// Dialog is a modal that holds the scroll lock from opening until fully closed.
type Dialog struct {
	lock *ScrollLock

	mu      sync.Mutex
	state   DialogState
	release func()
}

func NewDialog(lock *ScrollLock) *Dialog {
	return &Dialog{lock: lock}
}

func (d *Dialog) State() DialogState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func (d *Dialog) Open() error { return d.step(DialogClosed) }
func (d *Dialog) Opened() error { return d.step(DialogOpening) }
func (d *Dialog) Close() error { return d.step(DialogOpen) }
func (d *Dialog) Closed() error { return d.step(DialogClosing) }

func (d *Dialog) step(from DialogState) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != from {
		return fmt.Errorf("dialog: invalid transition from %s", d.state)
	}
	d.state = dialogNext[from]

	switch d.state {
	case DialogOpening:
		if d.lock != nil {
			d.release = d.lock.Acquire()
		}
	case DialogClosed:
		if d.release != nil {
			d.release()
			d.release = nil
		}
	}
	return nil
}
