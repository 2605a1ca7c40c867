package querydesk

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/nao1215/querydesk/engine"
)

// NoticeLevel is the severity of a Notice
type NoticeLevel int

const (
	// NoticeInfo reports a successful action
	NoticeInfo NoticeLevel = iota
	// NoticeWarning reports an action that was refused before doing anything
	NoticeWarning
	// NoticeError reports an action that failed
	NoticeError
)

// String returns the name of the level
func (l NoticeLevel) String() string {
	switch l {
	case NoticeWarning:
		return "warning"
	case NoticeError:
		return "error"
	default:
		return "info"
	}
}

// Notice is the content of the dialog shown after a user action.
type Notice struct {
	Level   NoticeLevel
	Title   string
	Message string
}

// IsZero reports whether there is nothing to show
func (n Notice) IsZero() bool {
	return n.Message == ""
}

// Dialog titles
const (
	titleSuccess    = "Success"
	titleWarning    = "Warning"
	titleLoadError  = "Error"
	titleQueryError = "Query Error"
)

// Labels shown around the editor
const (
	noFileLabel     = "No file loaded"
	queryTitleBase  = "Write Your SQL Query"
	loadedLabelHead = "Loaded: "
)

// Recorder receives the outcome of user actions. internal/metrics provides
// a Prometheus implementation.
type Recorder interface {
	ObserveLoad(engine string, ok bool, rows int, elapsed time.Duration)
	ObserveQuery(engine string, ok bool, rows int, elapsed time.Duration)
}

// nopRecorder discards observations
type nopRecorder struct{}

func (nopRecorder) ObserveLoad(string, bool, int, time.Duration)  {}
func (nopRecorder) ObserveQuery(string, bool, int, time.Duration) {}

// Controller implements the two user actions, loading a file and running a
// query, and converts every outcome into a Notice. It never panics on user
// input and keeps the Session consistent after a failure.
type Controller struct {
	engine       engine.Engine
	session      *Session
	logger       *slog.Logger
	recorder     Recorder
	queryTimeout time.Duration
	fileName     string
}

// ControllerOption configures a Controller
type ControllerOption func(*Controller)

// WithLogger sets the logger used for load and query events
func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRecorder sets the metrics recorder
func WithRecorder(recorder Recorder) ControllerOption {
	return func(c *Controller) {
		if recorder != nil {
			c.recorder = recorder
		}
	}
}

// WithQueryTimeout bounds each query execution. Zero means no limit.
func WithQueryTimeout(timeout time.Duration) ControllerOption {
	return func(c *Controller) {
		c.queryTimeout = timeout
	}
}

// WithSession uses sess instead of a new empty session
func WithSession(sess *Session) ControllerOption {
	return func(c *Controller) {
		if sess != nil {
			c.session = sess
		}
	}
}

// NewController creates a controller that runs queries on eng
func NewController(eng engine.Engine, opts ...ControllerOption) *Controller {
	c := &Controller{
		engine:   eng,
		session:  NewSession(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session returns the session the controller works on
func (c *Controller) Session() *Session {
	return c.session
}

// Load reads path and makes it the active dataset. On failure the session
// is reset so no stale dataset stays queryable.
func (c *Controller) Load(ctx context.Context, path string) Notice {
	start := time.Now()
	ds, err := Load(ctx, path)
	elapsed := time.Since(start)
	if err != nil {
		c.session.Reset()
		c.fileName = ""
		c.recorder.ObserveLoad(c.engine.Name(), false, 0, elapsed)
		c.logger.Error("load failed", slog.String("path", path), slog.Any("error", err))
		return Notice{
			Level:   NoticeError,
			Title:   titleLoadError,
			Message: "Failed to load file:\n" + err.Error(),
		}
	}

	c.session.Replace(ds)
	c.fileName = filepath.Base(path)
	c.recorder.ObserveLoad(c.engine.Name(), true, ds.RowCount(), elapsed)
	c.logger.Info("dataset loaded",
		slog.String("path", path),
		slog.String("table", ds.Name()),
		slog.Int("rows", ds.RowCount()),
		slog.Int("columns", ds.ColumnCount()),
		slog.Duration("duration", elapsed),
	)
	return Notice{
		Level: NoticeInfo,
		Title: titleSuccess,
		Message: "Successfully loaded " + c.fileName + ".\n" +
			strconv.Itoa(ds.RowCount()) + " rows found.\n" +
			"Table name is '" + ds.Name() + "'.",
	}
}

// RunQuery executes sqlText and renders the result into grid. The grid is
// left untouched when no dataset is loaded or the query is blank, and is
// left cleared when execution fails. A successful run returns a zero Notice
// with an empty Message.
func (c *Controller) RunQuery(ctx context.Context, sqlText string, grid Grid) Notice {
	if !c.session.Loaded() {
		return Notice{Level: NoticeWarning, Title: titleWarning, Message: "Please load a CSV file first."}
	}
	if strings.TrimSpace(sqlText) == "" {
		return Notice{Level: NoticeWarning, Title: titleWarning, Message: "Query is empty. Please enter a SQL query."}
	}

	grid.Clear()

	if c.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.queryTimeout)
		defer cancel()
	}

	start := time.Now()
	result, err := Execute(ctx, c.engine, c.session, sqlText)
	elapsed := time.Since(start)
	if err != nil {
		c.recorder.ObserveQuery(c.engine.Name(), false, 0, elapsed)
		c.logger.Warn("query failed",
			slog.String("table", c.session.TableName()),
			slog.String("engine", c.engine.Name()),
			slog.Duration("duration", elapsed),
			slog.Any("error", err),
		)
		return Notice{
			Level:   NoticeError,
			Title:   titleQueryError,
			Message: "An error occurred:\n" + err.Error(),
		}
	}

	Render(grid, result)
	c.recorder.ObserveQuery(c.engine.Name(), true, result.RowCount(), elapsed)
	c.logger.Info("query executed",
		slog.String("table", c.session.TableName()),
		slog.String("engine", c.engine.Name()),
		slog.Int("rows", result.RowCount()),
		slog.Duration("duration", elapsed),
	)
	return Notice{}
}

// StatusLabel returns the text of the file status label
func (c *Controller) StatusLabel() string {
	if !c.session.Loaded() {
		return noFileLabel
	}
	return loadedLabelHead + c.fileName
}

// QueryTitle returns the title of the query editor frame
func (c *Controller) QueryTitle() string {
	if !c.session.Loaded() {
		return queryTitleBase
	}
	return queryTitleBase + " (use '" + c.session.TableName() + "' as the table name)"
}

// DefaultQuery returns the query the editor is prefilled with
func (c *Controller) DefaultQuery() string {
	return c.session.DefaultQuery()
}
