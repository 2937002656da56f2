package memoryengine

import (
	"context"
	"sync"
)

// RecordingSink is a notification sink double that records every delivered
// message and can be scripted to fail.
type RecordingSink struct {
	mu       sync.Mutex
	failWith error
	messages []string
}

// NewRecordingSink creates a sink double that accepts every message.
func NewRecordingSink() *RecordingSink {
	return &RecordingSink{}
}

// FailWith makes every following Notify call fail with err (nil resets).
func (s *RecordingSink) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failWith = err
}

// Notify records the message, or fails when scripted to.
func (s *RecordingSink) Notify(_ context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return s.failWith
	}

	s.messages = append(s.messages, text)

	return nil
}

// Messages returns a copy of everything delivered so far.
func (s *RecordingSink) Messages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string(nil), s.messages...)
}
