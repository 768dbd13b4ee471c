package sqlframe

import (
	"context"
	"log/slog"
)

// Stage identifies a point in the export or import lifecycle.
type Stage int

const (
	// StageConnected fires once the database handle is ready.
	StageConnected Stage = iota
	// StageBeforeCreate fires before CREATE TABLE is executed.
	StageBeforeCreate
	// StageAfterCreate fires after CREATE TABLE succeeded.
	StageAfterCreate
	// StageAfterInsert fires after every row was inserted, before commit.
	StageAfterInsert
	// StageBeforeQuery fires before an import query is executed.
	StageBeforeQuery
	// StageAfterQuery fires after the import result was fully read.
	StageAfterQuery
)

// String returns the string representation of Stage
func (s Stage) String() string {
	switch s {
	case StageConnected:
		return "connected"
	case StageBeforeCreate:
		return "before_create"
	case StageAfterCreate:
		return "after_create"
	case StageAfterInsert:
		return "after_insert"
	case StageBeforeQuery:
		return "before_query"
	case StageAfterQuery:
		return "after_query"
	default:
		return "unknown"
	}
}

// Event describes one lifecycle point. Fields not meaningful for a stage are zero.
type Event struct {
	Stage     Stage
	Database  string
	Table     string
	Statement string
	Columns   int
	Rows      int
}

// Observer receives lifecycle events from Export and Import.
// Observe is called synchronously on the calling goroutine.
type Observer interface {
	Observe(ctx context.Context, event Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ctx context.Context, event Event)

// Observe calls f(ctx, event).
func (f ObserverFunc) Observe(ctx context.Context, event Event) {
	f(ctx, event)
}

// notify forwards event to observer when one is configured.
func notify(ctx context.Context, observer Observer, event Event) {
	if observer == nil {
		return
	}
	observer.Observe(ctx, event)
}

// logObserver writes events to a slog.Logger.
type logObserver struct {
	logger *slog.Logger
}

// NewLogObserver returns an Observer that reports database creation, table
// creation and row upload at info level, and the remaining stages at debug
// level. A nil logger uses slog.Default().
func NewLogObserver(logger *slog.Logger) Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return &logObserver{logger: logger}
}

// Observe implements Observer.
func (o *logObserver) Observe(ctx context.Context, e Event) {
	switch e.Stage {
	case StageConnected:
		o.logger.InfoContext(ctx, "SQL DB connected", slog.String("database", e.Database))
	case StageAfterCreate:
		o.logger.InfoContext(ctx, "SQL table created",
			slog.String("table", e.Table),
			slog.Int("columns", e.Columns))
	case StageAfterInsert:
		o.logger.InfoContext(ctx, "rows uploaded",
			slog.String("table", e.Table),
			slog.Int("rows", e.Rows))
	case StageAfterQuery:
		o.logger.DebugContext(ctx, "query finished",
			slog.String("database", e.Database),
			slog.Int("columns", e.Columns),
			slog.Int("rows", e.Rows))
	default:
		o.logger.DebugContext(ctx, "executing statement",
			slog.String("stage", e.Stage.String()),
			slog.String("statement", e.Statement))
	}
}
