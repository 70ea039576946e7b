package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskregister/pkg/domain/model"
	"github.com/secmon-lab/riskregister/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type modelDoc struct {
	ID          int64     `firestore:"ID"`
	Name        string    `firestore:"Name"`
	UseCase     string    `firestore:"UseCase"`
	Description string    `firestore:"Description"`
	Owner       string    `firestore:"Owner"`
	Status      string    `firestore:"Status"`
	CreatedAt   time.Time `firestore:"CreatedAt"`
}

func toModelDoc(m *model.AIModel) *modelDoc {
	return &modelDoc{
		ID:          m.ID,
		Name:        m.Name,
		UseCase:     m.UseCase,
		Description: m.Description,
		Owner:       m.Owner,
		Status:      m.Status.String(),
		CreatedAt:   m.CreatedAt,
	}
}

func fromModelDoc(d *modelDoc) *model.AIModel {
	return &model.AIModel{
		ID:          d.ID,
		Name:        d.Name,
		UseCase:     d.UseCase,
		Description: d.Description,
		Owner:       d.Owner,
		Status:      types.ModelStatus(d.Status),
		CreatedAt:   d.CreatedAt,
	}
}

type modelRepository struct {
	store *store
}

func (r *modelRepository) Create(ctx context.Context, workspaceID string, m *model.AIModel) (*model.AIModel, error) {
	nextID, err := r.store.nextID(ctx, workspaceID, modelsCollection)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get next ID")
	}

	created := m.Copy()
	created.ID = nextID
	created.CreatedAt = time.Now().UTC()

	_, err = r.store.collection(workspaceID, modelsCollection).Doc(docID(created.ID)).Set(ctx, toModelDoc(created))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create model", goerr.V("id", created.ID))
	}

	return created, nil
}

func (r *modelRepository) Get(ctx context.Context, workspaceID string, id int64) (*model.AIModel, error) {
	doc, err := r.store.collection(workspaceID, modelsCollection).Doc(docID(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "model not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get model", goerr.V("id", id))
	}

	var d modelDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to decode model", goerr.V("id", id))
	}

	return fromModelDoc(&d), nil
}

func (r *modelRepository) List(ctx context.Context, workspaceID string) ([]*model.AIModel, error) {
	iter := r.store.collection(workspaceID, modelsCollection).
		OrderBy("ID", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	models := make([]*model.AIModel, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate models")
		}

		var d modelDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to decode model", goerr.V("doc_id", doc.Ref.ID))
		}
		models = append(models, fromModelDoc(&d))
	}

	return models, nil
}
