package memory

import "github.com/secmon-lab/riskregister/pkg/domain/interfaces"

// ErrNotFound is returned when a requested entity does not exist in the workspace
var ErrNotFound = interfaces.ErrNotFound
