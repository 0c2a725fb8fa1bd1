package app

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// Events posted into the screen's queue next to key and resize events, so a
// single channel carries everything in arrival order.

type tickEvent struct {
	tcell.EventTime
}

func newTickEvent() *tickEvent {
	ev := &tickEvent{}
	ev.SetEventNow()
	return ev
}

type dirChangedEvent struct {
	tcell.EventTime
	path string
}

func newDirChangedEvent(path string) *dirChangedEvent {
	ev := &dirChangedEvent{path: path}
	ev.SetEventNow()
	return ev
}

type resumeEvent struct {
	tcell.EventTime
}

func newResumeEvent() *resumeEvent {
	ev := &resumeEvent{}
	ev.SetEventNow()
	return ev
}

const postRetryDelay = 5 * time.Millisecond

// postEvent delivers ev into the screen's queue, retrying while the queue is
// full. It gives up only when stop is closed.
func postEvent(screen tcell.Screen, ev tcell.Event, stop <-chan struct{}) bool {
	for {
		if err := screen.PostEvent(ev); err == nil {
			return true
		}
		select {
		case <-stop:
			return false
		case <-time.After(postRetryDelay):
		}
	}
}

// runTicker posts a tickEvent every interval until stop is closed.
func runTicker(screen tcell.Screen, interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !postEvent(screen, newTickEvent(), stop) {
				return
			}
		}
	}
}
