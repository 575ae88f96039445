package backup

import "context"

// Repository defines the bulk write side of backup restore. ReplaceAll
// overwrites the whole store in one batch; there are no merge semantics.
type Repository interface {
	ReplaceAll(ctx context.Context, snap *Snapshot) error
	SettingsExist(ctx context.Context) (bool, error)
}
