package dispatch

import "github.com/google/uuid"

// Record is the loosely-typed representation of a platform record as it
// arrives from the host's change notification.
type Record map[string]any

// RecordMap indexes records by identity. During a batched update the same key
// appears in both the old and new maps; a key present only in the old map was
// deleted in the batch, and one present only in the new map was inserted.
type RecordMap map[uuid.UUID]Record

// Stage identifies the lifecycle stage of a record-change event.
type Stage string

const (
	StageBeforeCreate Stage = "before_create"
	StageBeforeUpdate Stage = "before_update"
	StageBeforeDelete Stage = "before_delete"
	StageAfterCreate  Stage = "after_create"
	StageAfterUpdate  Stage = "after_update"
	StageAfterDelete  Stage = "after_delete"
	StageAfterRestore Stage = "after_restore"
)

// Event carries one lifecycle notification from the host platform. Records is
// populated for create and restore stages, Old for delete stages, and both
// Old and New for update stages.
type Event struct {
	Stage   Stage
	Records []Record
	Old     RecordMap
	New     RecordMap
}
