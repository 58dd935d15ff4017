package commands

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/dropclock/dropclock-go/pkg/log"
)

// exportRecord is the JSON shape of one exported event.
type exportRecord struct {
	Timestamp       time.Time  `json:"timestamp"`
	Kind            string     `json:"kind"`
	TimerID         string     `json:"timer_id,omitempty"`
	Name            string     `json:"name,omitempty"`
	DurationSeconds float64    `json:"duration_seconds,omitempty"`
	StartTime       *time.Time `json:"start_time,omitempty"`
	ReminderID      string     `json:"reminder_id,omitempty"`
	Error           string     `json:"error,omitempty"`
	Reason          string     `json:"reason,omitempty"`
}

func toExportRecord(event log.Event) exportRecord {
	rec := exportRecord{
		Timestamp:       event.Timestamp.UTC(),
		Kind:            event.Kind.String(),
		TimerID:         event.TimerID,
		Name:            event.Name,
		DurationSeconds: event.Duration.Seconds(),
		ReminderID:      event.ReminderID,
		Error:           event.Error,
		Reason:          event.Reason,
	}
	if !event.StartTime.IsZero() {
		start := event.StartTime.UTC()
		rec.StartTime = &start
	}
	return rec
}

// RunExport exports the trace file to the specified format.
func RunExport(path, format, output string) error {
	if format != "jsonl" && format != "csv" {
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}

	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	// Determine output writer
	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if format == "csv" {
		return exportCSV(reader, w)
	}
	return exportJSONL(reader, w)
}

func exportJSONL(reader *log.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := encoder.Encode(toExportRecord(event)); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
	return nil
}

func exportCSV(reader *log.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)

	header := []string{"timestamp", "kind", "timer_id", "name", "duration_seconds", "end_time", "reminder_id", "reason", "error"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		duration := ""
		endTime := ""
		if event.Duration > 0 {
			duration = strconv.FormatFloat(event.Duration.Seconds(), 'f', -1, 64)
			if !event.StartTime.IsZero() {
				endTime = event.EndTime().UTC().Format(time.RFC3339)
			}
		}

		row := []string{
			event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z"),
			event.Kind.String(),
			event.TimerID,
			event.Name,
			duration,
			endTime,
			event.ReminderID,
			event.Reason,
			event.Error,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
