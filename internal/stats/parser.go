package stats

import (
	"strings"
)

const (
	// FieldSeparator splits a line into key and values.
	FieldSeparator = "\t"
	// WorkerIDKey starts a new worker record in the workers section.
	WorkerIDKey = "id"
)

// Parse converts the raw stats report into a Snapshot.
// It never fails: malformed lines are dropped and counted in Snapshot.Skipped.
func Parse(text string) *Snapshot {
	snap := &Snapshot{
		System:  make(map[string]Values),
		Workers: []Worker{},
	}

	inSystem := true
	var current *Worker

	flush := func() {
		if current != nil {
			snap.Workers = append(snap.Workers, *current)
			current = nil
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)

		// Blank line: close the open record and leave the system section.
		if line == "" {
			flush()
			inSystem = false
			continue
		}

		parts := strings.Split(line, FieldSeparator)
		if len(parts) < 2 {
			snap.Skipped++
			continue
		}
		key := parts[0]
		values := Values(parts[1:])

		if inSystem {
			snap.System[key] = values
			continue
		}

		if key == WorkerIDKey {
			flush()
			if values[0] == "" {
				// A record without an id cannot own fields.
				snap.Skipped++
				continue
			}
			current = &Worker{
				ID:     values[0],
				Fields: make(map[string]Values),
			}
			continue
		}

		if current == nil {
			snap.Skipped++
			continue
		}
		current.Fields[key] = values
	}

	flush()
	return snap
}
