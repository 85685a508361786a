package patchepi

import (
	"bytes"
	"fmt"
	"os"
	"strings"
)

// CSVWriter writes an Output as comma-delimited files, one for the trace
// and one per query's statistics series, in the same buffer-then-write
// idiom as the teacher's CSVLogger.
type CSVWriter struct {
	tracePath string
	statsPath string
}

// NewCSVWriter builds a CSVWriter rooted at basepath, the way
// CSVLogger.SetBasePath derives its per-kind file names.
func NewCSVWriter(basepath string) *CSVWriter {
	trimmed := strings.TrimSuffix(basepath, ".")
	return &CSVWriter{
		tracePath: trimmed + ".trace.csv",
		statsPath: trimmed + ".stats.csv",
	}
}

// WriteTrace appends one row per (tick, person) to the trace file.
// Format: tick,personID,x,y,state
func (w *CSVWriter) WriteTrace(output *Output) error {
	const template = "%d,%d,%d,%d,%s\n"
	var b bytes.Buffer
	for t, entry := range output.Trace {
		for _, info := range entry.Population {
			row := fmt.Sprintf(template, t, info.ID, info.Position.X, info.Position.Y, info.State)
			b.WriteString(row)
		}
	}
	return AppendToFile(w.tracePath, b.Bytes())
}

// WriteStatistics appends one row per (query, tick) to the statistics
// file. Format: query,tick,susceptible,infected,infectious,recovered
func (w *CSVWriter) WriteStatistics(output *Output) error {
	const template = "%s,%d,%d,%d,%d,%d\n"
	var b bytes.Buffer
	for name, series := range output.Statistics {
		for t, s := range series {
			row := fmt.Sprintf(template, name, t, s.Susceptible, s.Infected, s.Infectious, s.Recovered)
			b.WriteString(row)
		}
	}
	return AppendToFile(w.statsPath, b.Bytes())
}

// AppendToFile creates the file at path if it does not exist, or appends
// to it if it does, matching the teacher's CSVLogger.AppendToFile helper.
func AppendToFile(path string, b []byte) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(b); err != nil {
		return err
	}
	return f.Sync()
}
