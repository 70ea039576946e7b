package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskregister/pkg/domain/interfaces"
)

type Firestore struct {
	client  *firestore.Client
	store   *store
	model   *modelRepository
	risk    *riskRepository
	control *controlRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix prefixes the root collection so several deployments
// (or test runs) can share one database.
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.store.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID))
	}

	s := &store{client: client}
	f := &Firestore{
		client:  client,
		store:   s,
		model:   &modelRepository{store: s},
		risk:    &riskRepository{store: s},
		control: &controlRepository{store: s},
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Model() interfaces.ModelRepository {
	return f.model
}

func (f *Firestore) Risk() interfaces.RiskRepository {
	return f.risk
}

func (f *Firestore) Control() interfaces.ControlRepository {
	return f.control
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
