package firestore

import "github.com/secmon-lab/riskregister/pkg/domain/interfaces"

// ErrNotFound is returned when a requested document does not exist
var ErrNotFound = interfaces.ErrNotFound
