package overdueborrowings

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bookhive/borrowing-engine-go/shell"
)

const (
	logMsgScanCompleted    = "overdue scan completed"
	logMsgNoticeSendFailed = "failed to deliver overdue notice"
	logAttrNoticeCount     = "notice_count"
	logAttrError           = "error"

	// sendConcurrency bounds the parallel sink deliveries per scan.
	sendConcurrency = 4
)

// Logger interface for operational logging.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Runner executes the scan and fans the notices out to the notification
// sink. Delivery is best-effort: a failing notice is logged at warn level
// and the remaining notices still go out.
type Runner struct {
	handler QueryHandler
	sink    shell.Notifier
	logger  Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger for the runner.
func WithLogger(logger Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// NewRunner creates a new Runner with optional configuration.
func NewRunner(handler QueryHandler, sink shell.Notifier, options ...Option) Runner {
	runner := Runner{
		handler: handler,
		sink:    sink,
	}

	for _, option := range options {
		option(&runner)
	}

	return runner
}

// RunScan executes one scan at the given time and delivers every notice.
// It returns the notices for the caller's benefit; sink failures are
// swallowed and never surface as an error.
func (r Runner) RunScan(ctx context.Context, now time.Time) ([]OverdueNotice, error) {
	notices, err := r.handler.Handle(ctx, BuildQuery(now))
	if err != nil {
		return nil, err
	}

	group := errgroup.Group{}
	group.SetLimit(sendConcurrency)

	for _, notice := range notices {
		notice := notice
		group.Go(func() error {
			if sendErr := r.sink.Notify(ctx, notice.Text()); sendErr != nil {
				if r.logger != nil {
					r.logger.Warn(logMsgNoticeSendFailed, logAttrError, sendErr.Error())
				}
			}

			return nil
		})
	}

	_ = group.Wait() // the goroutines never return an error, failures are logged above

	if r.logger != nil {
		r.logger.Info(logMsgScanCompleted, logAttrNoticeCount, len(notices))
	}

	return notices, nil
}
