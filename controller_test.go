package querydesk

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/nao1215/querydesk/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRecorder collects observations
type fakeRecorder struct {
	mu      sync.Mutex
	loads   []bool
	queries []bool
	rows    []int
}

func (r *fakeRecorder) ObserveLoad(_ string, ok bool, _ int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loads = append(r.loads, ok)
}

func (r *fakeRecorder) ObserveQuery(_ string, ok bool, rows int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries = append(r.queries, ok)
	r.rows = append(r.rows, rows)
}

func TestController_StudentsEndToEnd(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	recorder := &fakeRecorder{}
	c := NewController(engine.NewSQLite(),
		WithLogger(slog.New(slog.NewTextHandler(&logs, nil))),
		WithRecorder(recorder),
	)

	assert.Equal(t, "No file loaded", c.StatusLabel())
	assert.Equal(t, "Write Your SQL Query", c.QueryTitle())
	assert.Equal(t, "SELECT * FROM my_table LIMIT 100;", c.DefaultQuery())

	notice := c.Load(context.Background(), filepath.Join("testdata", "students.csv"))
	assert.Equal(t, NoticeInfo, notice.Level)
	assert.Equal(t, "Success", notice.Title)
	assert.Equal(t, "Successfully loaded students.csv.\n3 rows found.\nTable name is 'students'.", notice.Message)

	assert.Equal(t, "Loaded: students.csv", c.StatusLabel())
	assert.Equal(t, "Write Your SQL Query (use 'students' as the table name)", c.QueryTitle())
	assert.Equal(t, "SELECT * FROM students LIMIT 100;", c.DefaultQuery())

	grid := &recordingGrid{}
	notice = c.RunQuery(context.Background(), c.DefaultQuery(), grid)
	assert.True(t, notice.IsZero(), notice.Message)
	assert.Equal(t, []string{"id", "name", "grade"}, grid.columns)
	assert.Len(t, grid.rows, 3)

	assert.Equal(t, []bool{true}, recorder.loads)
	assert.Equal(t, []bool{true}, recorder.queries)
	assert.Equal(t, []int{3}, recorder.rows)
	assert.Contains(t, logs.String(), "dataset loaded")
	assert.Contains(t, logs.String(), "query executed")
}

func TestController_RunQueryWarnings(t *testing.T) {
	t.Parallel()

	t.Run("no dataset", func(t *testing.T) {
		t.Parallel()

		eng := &mockEngine{}
		c := NewController(eng)
		grid := &recordingGrid{columns: []string{"kept"}}

		notice := c.RunQuery(context.Background(), "SELECT 1", grid)
		assert.Equal(t, NoticeWarning, notice.Level)
		assert.Equal(t, "Warning", notice.Title)
		assert.Equal(t, "Please load a CSV file first.", notice.Message)
		assert.Equal(t, 0, grid.clears)
		assert.Equal(t, []string{"kept"}, grid.columns)
		assert.Equal(t, 0, eng.opens)
		assert.False(t, c.Session().Loaded())
	})

	t.Run("blank query", func(t *testing.T) {
		t.Parallel()

		eng := &mockEngine{}
		c := NewController(eng, WithSession(studentsSession(t)))
		grid := &recordingGrid{}

		notice := c.RunQuery(context.Background(), " \n ", grid)
		assert.Equal(t, NoticeWarning, notice.Level)
		assert.Equal(t, "Query is empty. Please enter a SQL query.", notice.Message)
		assert.Equal(t, 0, grid.clears)
		assert.Equal(t, 0, eng.opens)
	})
}

func TestController_RunQueryErrors(t *testing.T) {
	t.Parallel()

	t.Run("malformed query leaves the grid empty", func(t *testing.T) {
		t.Parallel()

		recorder := &fakeRecorder{}
		c := NewController(engine.NewSQLite(), WithRecorder(recorder))
		c.Load(context.Background(), filepath.Join("testdata", "students.csv"))

		grid := &recordingGrid{}
		require.True(t, c.RunQuery(context.Background(), "SELECT * FROM students", grid).IsZero())
		require.NotEmpty(t, grid.rows)

		notice := c.RunQuery(context.Background(), "SELEC * FROM students", grid)
		assert.Equal(t, NoticeError, notice.Level)
		assert.Equal(t, "Query Error", notice.Title)
		assert.Contains(t, notice.Message, "An error occurred:\n")
		assert.Contains(t, notice.Message, "SELEC")
		assert.Nil(t, grid.columns)
		assert.Nil(t, grid.rows)
		assert.Equal(t, []bool{true, false}, recorder.queries)
	})

	t.Run("second load replaces the first table", func(t *testing.T) {
		t.Parallel()

		c := NewController(engine.NewSQLite())
		c.Load(context.Background(), filepath.Join("testdata", "students.csv"))
		notice := c.Load(context.Background(), filepath.Join("testdata", "courses.csv"))
		require.Equal(t, NoticeInfo, notice.Level)
		assert.Equal(t, "Successfully loaded courses.csv.\n2 rows found.\nTable name is 'courses'.", notice.Message)
		assert.Equal(t, "Loaded: courses.csv", c.StatusLabel())

		grid := &recordingGrid{}
		notice = c.RunQuery(context.Background(), "SELECT * FROM students", grid)
		assert.Equal(t, NoticeError, notice.Level)
		assert.Contains(t, notice.Message, "no such table: students")

		notice = c.RunQuery(context.Background(), "SELECT * FROM courses", grid)
		assert.True(t, notice.IsZero())
		assert.Equal(t, []string{"course", "credits", "mandatory"}, grid.columns)
		assert.Equal(t, [][]string{{"Math", "4", "true"}, {"Art", "2", "false"}}, grid.rows)
	})

	t.Run("header names differing only in case", func(t *testing.T) {
		t.Parallel()

		c := NewController(engine.NewSQLite())
		notice := c.Load(context.Background(), writeTestFile(t, "people.csv", "id,ID,name\n1,2,x\n"))
		require.Equal(t, NoticeInfo, notice.Level)

		grid := &recordingGrid{}
		notice = c.RunQuery(context.Background(), "SELECT * FROM people", grid)
		assert.True(t, notice.IsZero(), notice.Message)
		assert.Equal(t, []string{"id", "ID.1", "name"}, grid.columns)
		assert.Equal(t, [][]string{{"1", "2", "x"}}, grid.rows)
	})

	t.Run("query timeout", func(t *testing.T) {
		t.Parallel()

		c := NewController(engine.NewSQLite(), WithQueryTimeout(time.Nanosecond))
		c.Load(context.Background(), filepath.Join("testdata", "students.csv"))
		time.Sleep(time.Millisecond)

		notice := c.RunQuery(context.Background(), "SELECT * FROM students", &recordingGrid{})
		assert.Equal(t, NoticeError, notice.Level)
		assert.Contains(t, notice.Message, "deadline exceeded")
	})
}

func TestController_LoadFailure(t *testing.T) {
	t.Parallel()

	recorder := &fakeRecorder{}
	c := NewController(engine.NewSQLite(), WithRecorder(recorder))
	require.Equal(t, NoticeInfo, c.Load(context.Background(), filepath.Join("testdata", "students.csv")).Level)

	notice := c.Load(context.Background(), filepath.Join("testdata", "missing.csv"))
	assert.Equal(t, NoticeError, notice.Level)
	assert.Equal(t, "Error", notice.Title)
	assert.Contains(t, notice.Message, "Failed to load file:\n")
	assert.Contains(t, notice.Message, "file not found")

	assert.False(t, c.Session().Loaded())
	assert.Equal(t, "No file loaded", c.StatusLabel())
	assert.Equal(t, "Write Your SQL Query", c.QueryTitle())
	assert.Equal(t, []bool{true, false}, recorder.loads)

	notice = c.RunQuery(context.Background(), "SELECT * FROM students", &recordingGrid{})
	assert.Equal(t, "Please load a CSV file first.", notice.Message)
}

func TestNoticeLevel_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "info", NoticeInfo.String())
	assert.Equal(t, "warning", NoticeWarning.String())
	assert.Equal(t, "error", NoticeError.String())
}
