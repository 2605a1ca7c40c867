package querydesk_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/nao1215/querydesk"
	"github.com/nao1215/querydesk/engine"
)

// ExampleExecute loads a CSV file, runs a query against it with the SQLite
// engine and prints the result as an aligned table.
func ExampleExecute() {
	ctx := context.Background()

	ds, err := querydesk.Load(ctx, filepath.Join("testdata", "students.csv"))
	if err != nil {
		log.Fatal(err)
	}
	sess := querydesk.NewSession()
	sess.Replace(ds)

	result, err := querydesk.Execute(ctx, engine.NewSQLite(), sess, sess.DefaultQuery())
	if err != nil {
		log.Fatal(err)
	}

	grid := querydesk.NewTextGrid()
	querydesk.Render(grid, result)
	if _, err := grid.WriteTo(os.Stdout); err != nil {
		log.Fatal(err)
	}

	// Output:
	// id   name     grade
	// ---  ----     -----
	// 1    Alice    90
	// 2    Bob      85
	// 3    Charlie  78
	// (3 rows)
}

// ExampleController shows the notices produced by the two user actions.
func ExampleController() {
	ctx := context.Background()
	c := querydesk.NewController(engine.NewSQLite())

	fmt.Println(c.RunQuery(ctx, "SELECT 1", querydesk.NewTextGrid()).Message)

	notice := c.Load(ctx, filepath.Join("testdata", "students.csv"))
	fmt.Println(notice.Message)
	fmt.Println(c.StatusLabel())
	fmt.Println(c.DefaultQuery())

	// Output:
	// Please load a CSV file first.
	// Successfully loaded students.csv.
	// 3 rows found.
	// Table name is 'students'.
	// Loaded: students.csv
	// SELECT * FROM students LIMIT 100;
}
