package normalizer

import (
	"log"

	"eventhub/pkg/models"
)

// SourceBatch is the raw output of one adapter, tagged with its key.
// Batches are passed as a slice so source iteration order, and with it
// sequence id assignment, is deterministic across runs.
type SourceBatch struct {
	Key    string
	Events []models.RawEvent
}

// Transformer applies Normalize across whole batches, assigning
// sequence ids from a single shared counter. Not safe for concurrent
// use: the orchestrator's single-flight guard is expected to hold.
type Transformer struct {
	nextID int
	counts map[string]int
}

func NewTransformer() *Transformer {
	return &Transformer{
		nextID: 1,
		counts: make(map[string]int),
	}
}

// TransformAll normalizes every record of every batch into the flat
// accepted sequence. One bad record is logged and skipped; it never
// aborts the rest of its source or the sources after it.
func (t *Transformer) TransformAll(batches []SourceBatch) []models.CanonicalEvent {
	var all []models.CanonicalEvent

	for _, batch := range batches {
		log.Printf("[transform] %s: transforming %d events", batch.Key, len(batch.Events))

		for _, raw := range batch.Events {
			ev, ok := t.transformOne(raw, batch.Key)
			if !ok {
				continue
			}
			all = append(all, *ev)
		}
	}

	log.Printf("[transform] total transformed events: %d", len(all))
	return all
}

// transformOne wraps Normalize so that a panic on one malformed
// record is contained to that record.
func (t *Transformer) transformOne(raw models.RawEvent, sourceKey string) (ev *models.CanonicalEvent, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[transform] %s: error transforming event: %v", sourceKey, r)
			ev, ok = nil, false
		}
	}()

	ev, ok = Normalize(raw, sourceKey)
	if !ok {
		return nil, false
	}

	ev.ID = t.nextID
	t.nextID++
	t.counts[sourceKey]++
	return ev, true
}

// Counts reports how many records were accepted per source key.
func (t *Transformer) Counts() map[string]int {
	out := make(map[string]int, len(t.counts))
	for k, v := range t.counts {
		out[k] = v
	}
	return out
}
