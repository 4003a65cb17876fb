package collector

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/mgraziano/virusnet/internal/sim"
)

// csvHeader matches the column order of the model's tabular dump.
var csvHeader = []string{"tick", "infected", "resistant", "susceptible"}

// WriteCSV writes the snapshot series as CSV to w, one row per tick.
func WriteCSV(w io.Writer, series []sim.Snapshot) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, s := range series {
		row := []string{
			strconv.Itoa(s.Tick),
			strconv.Itoa(s.Infected),
			strconv.Itoa(s.Resistant),
			strconv.Itoa(s.Susceptible),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing tick %d: %w", s.Tick, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportCSV writes the snapshot series to a file at path.
func ExportCSV(path string, series []sim.Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	if err := WriteCSV(f, series); err != nil {
		return err
	}
	return f.Close()
}
