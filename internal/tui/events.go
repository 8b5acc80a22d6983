// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"github.com/MKhiriev/cyferkey/internal/session"
	tea "github.com/charmbracelet/bubbletea"
)

const eventBuffer = 64

// eventForwarder moves session events into a program in publish order.
// Publishers never block: push drops the event when the buffer is full.
type eventForwarder struct {
	events  chan session.Event
	done    chan struct{}
	stopped chan struct{}
}

func newEventForwarder(size int) *eventForwarder {
	return &eventForwarder{
		events:  make(chan session.Event, size),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

func (f *eventForwarder) push(e session.Event) bool {
	select {
	case f.events <- e:
		return true
	default:
		return false
	}
}

// run delivers events one at a time until stop is called.
func (f *eventForwarder) run(send func(tea.Msg)) {
	defer close(f.stopped)
	for {
		select {
		case <-f.done:
			return
		case e := <-f.events:
			send(sessionEventMsg(e))
		}
	}
}

// stop ends run and waits for it. send must not block forever by then.
func (f *eventForwarder) stop() {
	close(f.done)
	<-f.stopped
}
