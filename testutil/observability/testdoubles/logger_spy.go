package testdoubles

import (
	"sync"
)

// LoggerSpy captures logging calls for test assertions. It satisfies the
// Logger interface every handler in this module declares.
type LoggerSpy struct {
	mu           sync.Mutex
	debugRecords []SpyLogRecord
	infoRecords  []SpyLogRecord
	warnRecords  []SpyLogRecord
	errorRecords []SpyLogRecord
}

// SpyLogRecord represents one recorded log call.
type SpyLogRecord struct {
	Level   string
	Message string
	Args    []any
}

// NewLoggerSpy creates a new LoggerSpy instance.
func NewLoggerSpy() *LoggerSpy {
	return &LoggerSpy{}
}

// Debug records a debug-level log call.
func (s *LoggerSpy) Debug(msg string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.debugRecords = append(s.debugRecords, SpyLogRecord{Level: "debug", Message: msg, Args: args})
}

// Info records an info-level log call.
func (s *LoggerSpy) Info(msg string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.infoRecords = append(s.infoRecords, SpyLogRecord{Level: "info", Message: msg, Args: args})
}

// Warn records a warn-level log call.
func (s *LoggerSpy) Warn(msg string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.warnRecords = append(s.warnRecords, SpyLogRecord{Level: "warn", Message: msg, Args: args})
}

// Error records an error-level log call.
func (s *LoggerSpy) Error(msg string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.errorRecords = append(s.errorRecords, SpyLogRecord{Level: "error", Message: msg, Args: args})
}

// DebugRecords returns a copy of the recorded debug calls.
func (s *LoggerSpy) DebugRecords() []SpyLogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]SpyLogRecord(nil), s.debugRecords...)
}

// InfoRecords returns a copy of the recorded info calls.
func (s *LoggerSpy) InfoRecords() []SpyLogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]SpyLogRecord(nil), s.infoRecords...)
}

// WarnRecords returns a copy of the recorded warn calls.
func (s *LoggerSpy) WarnRecords() []SpyLogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]SpyLogRecord(nil), s.warnRecords...)
}

// ErrorRecords returns a copy of the recorded error calls.
func (s *LoggerSpy) ErrorRecords() []SpyLogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]SpyLogRecord(nil), s.errorRecords...)
}

// HasInfoMessage reports whether an info call with the given message was recorded.
func (s *LoggerSpy) HasInfoMessage(msg string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.infoRecords {
		if record.Message == msg {
			return true
		}
	}

	return false
}
