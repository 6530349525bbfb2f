package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/kwcargobay/fairing-go/pkg/log"
)

// RunExport exports the trace file to the specified format. An empty
// output writes to stdout.
func RunExport(path, format, output string) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "jsonl":
		return exportJSONL(reader, w)
	case "csv":
		return exportCSV(reader, w)
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}
}

func exportJSONL(reader *log.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := encoder.Encode(event); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
	return nil
}

var csvHeader = []string{"timestamp", "episode_id", "vessel_id", "fairing_id", "category", "part_id", "detail"}

func exportCSV(reader *log.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		partID, detail := csvDetail(event)
		row := []string{
			event.Timestamp.UTC().Format(timestampFormat),
			event.EpisodeID,
			event.VesselID,
			event.FairingID,
			event.Category.String(),
			partID,
			detail,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return nil
}

// csvDetail flattens the event payload into a part ID and a detail column.
func csvDetail(event log.Event) (string, string) {
	switch {
	case event.StateChange != nil:
		return "", event.StateChange.OldState + "->" + event.StateChange.NewState
	case event.Shield != nil:
		return event.Shield.PartID, event.Shield.Kind.String()
	case event.Expose != nil:
		return "", event.Expose.Reason.String() + " restored=" + strconv.Itoa(event.Expose.Restored)
	case event.Diagnostic != nil:
		return event.Diagnostic.PartID, event.Diagnostic.Severity.String() + " " + event.Diagnostic.Message
	}
	return "", ""
}
