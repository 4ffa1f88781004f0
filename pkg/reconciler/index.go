package reconciler

import (
	"context"

	"github.com/agentstation/deptmerge/pkg/departments"
	"github.com/agentstation/deptmerge/pkg/logging"
)

// IndexEntry is the secondary record a key resolves to.
type IndexEntry struct {
	RecordID     string
	OriginalName string
}

// Index maps normalized keys of the secondary list to record ids.
type Index struct {
	entries    map[departments.Key]IndexEntry
	collisions int

	// record id -> distinct keys, in first-seen order
	keysByRecord map[string][]departments.Key
	recordOrder  []string
}

// BuildIndex indexes already-normalized secondary rows by key.
// When two rows share a key the later one wins and the collision is logged.
func BuildIndex(ctx context.Context, rows []departments.Secondary) *Index {
	logger := logging.FromContext(ctx)

	ix := &Index{
		entries:      make(map[departments.Key]IndexEntry, len(rows)),
		keysByRecord: make(map[string][]departments.Key),
	}

	for i := range rows {
		row := &rows[i]
		key := row.Key()

		if prev, ok := ix.entries[key]; ok {
			ix.collisions++
			logger.Warn().
				Str("name", key.Name).
				Str("code", key.Code).
				Str("previous_record_id", prev.RecordID).
				Str("record_id", row.RecordID).
				Msg("Secondary key collision, later row wins")
		}
		ix.entries[key] = IndexEntry{RecordID: row.RecordID, OriginalName: row.OriginalName}
		ix.trackKey(row.RecordID, key)
	}

	multi := ix.MultiKeyRecords()
	logger.Info().
		Int("size", ix.Size()).
		Int("collisions", ix.collisions).
		Int("multi_key_records", len(multi)).
		Msg("Secondary index built")

	for _, id := range multi {
		logger.Info().
			Str("record_id", id).
			Interface("keys", ix.keysByRecord[id]).
			Msg("Secondary record id appears under several keys")
	}

	return ix
}

func (ix *Index) trackKey(recordID string, key departments.Key) {
	keys, seen := ix.keysByRecord[recordID]
	if !seen {
		ix.recordOrder = append(ix.recordOrder, recordID)
	}
	for _, k := range keys {
		if k == key {
			return
		}
	}
	ix.keysByRecord[recordID] = append(keys, key)
}

// Lookup returns the entry for key.
func (ix *Index) Lookup(key departments.Key) (IndexEntry, bool) {
	e, ok := ix.entries[key]
	return e, ok
}

// Size returns the number of distinct keys.
func (ix *Index) Size() int {
	return len(ix.entries)
}

// Collisions returns how many rows overwrote an earlier row's key.
func (ix *Index) Collisions() int {
	return ix.collisions
}

// MultiKeyRecords returns record ids seen under more than one distinct key,
// in first-seen order.
func (ix *Index) MultiKeyRecords() []string {
	var ids []string
	for _, id := range ix.recordOrder {
		if len(ix.keysByRecord[id]) > 1 {
			ids = append(ids, id)
		}
	}
	return ids
}
