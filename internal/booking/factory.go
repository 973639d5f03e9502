package booking

import "context"

// NewStore selects a booking store backend. A database URL wins over a
// bookings file; with neither configured the store is in-memory only
// and bookings do not survive a restart.
func NewStore(ctx context.Context, databaseURL, filePath string) (Store, error) {
	if databaseURL != "" {
		return NewPostgresStore(ctx, databaseURL)
	}
	if filePath != "" {
		return NewFileStore(filePath)
	}
	return NewInMemoryStore(), nil
}
