package model

import (
	"time"

	"github.com/google/uuid"
)

// ExportKind selects the exported dataset.
type ExportKind string

const (
	ExportMembers ExportKind = "members"
	ExportLedger  ExportKind = "ledger"
)

// ExportStatus tracks a background CSV export.
type ExportStatus string

const (
	ExportPending ExportStatus = "pending"
	ExportRunning ExportStatus = "running"
	ExportDone    ExportStatus = "done"
	ExportFailed  ExportStatus = "failed"
)

// ExportFields lists the columns a client may select per kind.
var ExportFields = map[ExportKind][]string{
	ExportMembers: {"id", "email", "name", "role", "state", "board_position", "membership_type", "joined_at"},
	ExportLedger:  {"id", "member_id", "kind", "amount", "currency", "reference", "note", "processed_at"},
}

// ValidExportField reports whether field is exportable for kind.
func ValidExportField(kind ExportKind, field string) bool {
	for _, f := range ExportFields[kind] {
		if f == field {
			return true
		}
	}
	return false
}

// ExportJob is a queued CSV export. Progress counts written rows.
type ExportJob struct {
	ID          uuid.UUID
	Kind        ExportKind
	Fields      []string
	Status      ExportStatus
	Progress    int64
	ObjectKey   string
	Error       string
	RequestedBy int64
	CreatedAt   time.Time
	FinishedAt  *time.Time
}
