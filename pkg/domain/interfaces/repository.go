package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Event() EventRepository

	// Close releases backend resources. In-memory backends treat it as a
	// no-op.
	Close() error
}
