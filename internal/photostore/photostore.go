// Package photostore keeps photo metadata attached to equipment. Records are
// append-only and keyed by equipment id; the actual image bytes live wherever
// Reference points (a data URL, an object key, an external URL).
package photostore

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable is returned when the backing store cannot be reached.
var ErrUnavailable = errors.New("photostore: unavailable")

// Photo is one stored photo record.
type Photo struct {
	ID          string    `json:"id"`
	EquipmentID string    `json:"equipmentId"`
	Reference   string    `json:"reference"`
	Caption     string    `json:"caption,omitempty"`
	UploadedBy  string    `json:"uploadedBy"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

// Store appends and lists photo records per equipment id.
type Store interface {
	Append(ctx context.Context, equipmentID string, photos []Photo) error
	List(ctx context.Context, equipmentID string) ([]Photo, error)
}
