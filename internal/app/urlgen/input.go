package urlgen

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/heartmarshall/catalog-urlgen/internal/service/urlrewrite"
)

// maxLineSize is the buffer size for bufio.Scanner (1 MB).
const maxLineSize = 1 << 20

// record is one JSONL input line.
type record struct {
	EntityType string `json:"entity_type"`
	EntityID   int64  `json:"entity_id"`
	URLKey     string `json:"url_key"`
	Name       string `json:"name"`
	StoreID    int64  `json:"store_id"`
}

// Batch holds the entities of one entity type, in input order.
type Batch struct {
	EntityType string
	Entities   []urlrewrite.Entity
}

// ReadStats counts input lines.
type ReadStats struct {
	Lines    int
	Entities int
	// Skipped counts records of an entity type other than the requested one.
	Skipped int
}

// ReadEntities parses JSONL entity records from r and groups them by entity
// type, in order of first appearance. Blank lines are ignored.
//
// When only is non-empty, records without entity_type are assigned to it
// and records of any other type are skipped. Otherwise every record must
// name its entity type.
func ReadEntities(r io.Reader, only string) ([]Batch, ReadStats, error) {
	var stats ReadStats
	only = strings.TrimSpace(only)

	index := make(map[string]int)
	var batches []Batch

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64<<10), maxLineSize)

	for scanner.Scan() {
		stats.Lines++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var rec record
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, stats, fmt.Errorf("line %d: %w", stats.Lines, err)
		}

		entityType := strings.TrimSpace(rec.EntityType)
		switch {
		case entityType == "" && only == "":
			return nil, stats, fmt.Errorf("line %d: entity_type is required", stats.Lines)
		case entityType == "":
			entityType = only
		case only != "" && entityType != only:
			stats.Skipped++
			continue
		}
		if rec.EntityID <= 0 {
			return nil, stats, fmt.Errorf("line %d: entity_id must be > 0 (got %d)", stats.Lines, rec.EntityID)
		}
		if rec.StoreID < 0 {
			return nil, stats, fmt.Errorf("line %d: store_id must be >= 0 (got %d)", stats.Lines, rec.StoreID)
		}

		i, ok := index[entityType]
		if !ok {
			i = len(batches)
			index[entityType] = i
			batches = append(batches, Batch{EntityType: entityType})
		}
		batches[i].Entities = append(batches[i].Entities, urlrewrite.Entity{
			ID:      rec.EntityID,
			URLKey:  rec.URLKey,
			Name:    rec.Name,
			StoreID: rec.StoreID,
		})
		stats.Entities++
	}
	if err := scanner.Err(); err != nil {
		return nil, stats, fmt.Errorf("scan input: %w", err)
	}

	return batches, stats, nil
}
