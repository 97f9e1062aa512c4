package workload

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/inference-sim/schedsim/sim"
)

// LoadProcessesCSVFile reads a process table from a CSV file.
func LoadProcessesCSVFile(path string) ([]sim.Process, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening process csv: %w", err)
	}
	defer f.Close()
	return LoadProcessesCSV(f)
}

// LoadProcessesCSV parses rows of name,burst,arrival[,priority].
// A first row whose burst column is not an integer is treated as a header.
func LoadProcessesCSV(r io.Reader) ([]sim.Process, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	var procs []sim.Process
	for line := 1; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading process csv: %w", err)
		}
		if line == 1 && isHeader(row) {
			continue
		}
		p, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("process csv line %d: %w", line, err)
		}
		procs = append(procs, p)
	}
	if len(procs) == 0 {
		return nil, fmt.Errorf("process csv: no processes")
	}
	return procs, nil
}

func isHeader(row []string) bool {
	if len(row) < 2 {
		return false
	}
	_, err := strconv.ParseInt(strings.TrimSpace(row[1]), 10, 64)
	return err != nil
}

func parseRow(row []string) (sim.Process, error) {
	if len(row) < 3 || len(row) > 4 {
		return sim.Process{}, fmt.Errorf("want 3 or 4 columns (name,burst,arrival[,priority]), got %d", len(row))
	}
	name := strings.TrimSpace(row[0])
	if name == "" {
		return sim.Process{}, fmt.Errorf("empty name")
	}
	burst, err := strconv.ParseInt(strings.TrimSpace(row[1]), 10, 64)
	if err != nil {
		return sim.Process{}, fmt.Errorf("%s: burst: %w", name, err)
	}
	arrival, err := strconv.ParseInt(strings.TrimSpace(row[2]), 10, 64)
	if err != nil {
		return sim.Process{}, fmt.Errorf("%s: arrival: %w", name, err)
	}
	priority := sim.DefaultPriority
	if len(row) == 4 && strings.TrimSpace(row[3]) != "" {
		priority, err = strconv.Atoi(strings.TrimSpace(row[3]))
		if err != nil {
			return sim.Process{}, fmt.Errorf("%s: priority: %w", name, err)
		}
	}
	p := sim.NewProcess(name, arrival, burst, priority)
	if err := p.Validate(); err != nil {
		return sim.Process{}, err
	}
	return p, nil
}
