package interfaces

// Repository defines the interface for data persistence. Every collection is
// partitioned by workspace ID and workspaces never share data or sequences.
type Repository interface {
	Model() ModelRepository
	Risk() RiskRepository
	Control() ControlRepository

	Close() error
}
