package ingest

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/adas-hsim/adas-hsim/hsim"
)

// FromCSV parses the whitespace-, tab-, or comma-separated task table
// described in spec.md §6 (columns `name bcet wcet period deadline
// [priority]`) into a single EDF root component on a single core with
// performance factor 1. A header row is detected if the first row
// contains both "Task" and "WCET" (case-insensitive); rows whose wcet,
// period, or deadline field doesn't parse are skipped and logged.
func FromCSV(r io.Reader) (*hsim.SystemModel, error) {
	root := &hsim.Component{ID: "core-csv-root", Name: "csv", Algorithm: hsim.EDF}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	first := true
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := splitFields(line)

		if first {
			first = false
			if isHeaderRow(fields) {
				continue
			}
		}

		task, err := parseTaskRow(fields, lineNo)
		if err != nil {
			logrus.WithError(err).WithField("line", lineNo).Warn("ingest: skipping unparseable CSV task row")
			continue
		}
		root.Tasks = append(root.Tasks, task)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading csv: %v", hsim.ErrInvalidModel, err)
	}

	return &hsim.SystemModel{
		Cores:          []*hsim.Core{{ID: "csv", Name: "csv", PerformanceFactor: 1}},
		RootComponents: []*hsim.Component{root},
	}, nil
}

func isHeaderRow(fields []string) bool {
	var hasTask, hasWCET bool
	for _, f := range fields {
		switch strings.ToLower(f) {
		case "task":
			hasTask = true
		case "wcet":
			hasWCET = true
		}
	}
	return hasTask && hasWCET
}

func splitFields(line string) []string {
	line = strings.ReplaceAll(line, ",", " ")
	return strings.Fields(line)
}

// parseTaskRow parses `name bcet wcet period deadline [priority]`. Per
// spec §6, only wcet/period/deadline failures skip the row; bcet is
// optional (as in the JSON schema) and simply defaults to 0 if absent
// or unparseable, same as the trailing priority column.
func parseTaskRow(fields []string, lineNo int) (*hsim.Task, error) {
	if len(fields) < 5 {
		return nil, fmt.Errorf("row has %d fields, want at least 5", len(fields))
	}
	name := fields[0]
	bcet, _ := strconv.ParseFloat(fields[1], 64) // optional; 0 if absent or unparseable
	wcet, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return nil, fmt.Errorf("wcet: %w", err)
	}
	period, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return nil, fmt.Errorf("period: %w", err)
	}
	deadline, err := strconv.ParseFloat(fields[4], 64)
	if err != nil {
		return nil, fmt.Errorf("deadline: %w", err)
	}
	priority := 0
	if len(fields) >= 6 {
		priority, _ = strconv.Atoi(fields[5]) // optional; 0 if absent or unparseable
	}

	return &hsim.Task{
		ID:       fmt.Sprintf("%s-L%d", name, lineNo),
		Name:     name,
		BCET:     bcet,
		WCET:     wcet,
		Deadline: deadline,
		Priority: priority,
		Kind:     hsim.PeriodicTask{Period: period},
	}, nil
}
