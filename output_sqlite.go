package patchepi

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/segmentio/ksuid"
)

// SQLiteWriter persists an Output to a SQLite database, one table per
// query's statistics series plus a single trace table, tagged by run ID
// so multiple runs can share one database file without colliding -- the
// same database/sql + go-sqlite3 pairing as the teacher's SQLiteLogger,
// adapted from per-instance tables to a per-run-ID table suffix.
type SQLiteWriter struct {
	path  string
	runID ksuid.KSUID
}

// NewSQLiteWriter builds a SQLiteWriter targeting the database at path,
// tagging every table it creates with runID.
func NewSQLiteWriter(path string, runID ksuid.KSUID) *SQLiteWriter {
	return &SQLiteWriter{path: path, runID: runID}
}

func (w *SQLiteWriter) open() (*sql.DB, error) {
	return OpenSQLiteDB(w.path)
}

// OpenSQLiteDB establishes a database connection using the given path,
// matching the teacher's SQLiteLogger.OpenSQLiteDB helper.
func OpenSQLiteDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	return db, nil
}

func (w *SQLiteWriter) tableSuffix() string {
	return w.runID.String()
}

// Init creates the trace table and one statistics table per query name.
func (w *SQLiteWriter) Init(queryNames []string) error {
	db, err := w.open()
	if err != nil {
		return err
	}
	defer db.Close()

	traceTable := "Trace_" + w.tableSuffix()
	stmt := fmt.Sprintf(
		"create table %s (id integer not null primary key, tick int, personID int, x int, y int, state text)",
		traceTable,
	)
	if _, err := db.Exec(stmt); err != nil {
		return fmt.Errorf("%q: %s", err, stmt)
	}

	for _, name := range queryNames {
		table := statsTableName(name, w.tableSuffix())
		stmt := fmt.Sprintf(
			"create table %s (id integer not null primary key, tick int, susceptible int, infected int, infectious int, recovered int)",
			table,
		)
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("%q: %s", err, stmt)
		}
	}
	return nil
}

func statsTableName(query, suffix string) string {
	return fmt.Sprintf("Stats_%s_%s", query, suffix)
}

// WriteTrace inserts one row per (tick, person) into the trace table.
func (w *SQLiteWriter) WriteTrace(output *Output) error {
	db, err := w.open()
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare("insert into " + "Trace_" + w.tableSuffix() + "(tick, personID, x, y, state) values(?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for t, entry := range output.Trace {
		for _, info := range entry.Population {
			if _, err := stmt.Exec(t, info.ID, info.Position.X, info.Position.Y, info.State.String()); err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}

// WriteStatistics inserts one row per (query, tick) into that query's
// statistics table.
func (w *SQLiteWriter) WriteStatistics(output *Output) error {
	db, err := w.open()
	if err != nil {
		return err
	}
	defer db.Close()

	for name, series := range output.Statistics {
		table := statsTableName(name, w.tableSuffix())
		tx, err := db.Begin()
		if err != nil {
			return err
		}
		stmt, err := tx.Prepare("insert into " + table + "(tick, susceptible, infected, infectious, recovered) values(?, ?, ?, ?, ?)")
		if err != nil {
			return err
		}
		for t, s := range series {
			if _, err := stmt.Exec(t, s.Susceptible, s.Infected, s.Infectious, s.Recovered); err != nil {
				stmt.Close()
				return err
			}
		}
		stmt.Close()
		if err := tx.Commit(); err != nil {
			return err
		}
	}
	return nil
}
