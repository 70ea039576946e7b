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

// riskDoc stores optional scores as nullable integers
type riskDoc struct {
	ID                int64     `firestore:"ID"`
	ModelID           int64     `firestore:"ModelID"`
	RiskType          string    `firestore:"RiskType"`
	HazardDescription string    `firestore:"HazardDescription"`
	Likelihood        *int64    `firestore:"Likelihood"`
	Magnitude         *int64    `firestore:"Magnitude"`
	Composite         *int64    `firestore:"Composite"`
	CreatedAt         time.Time `firestore:"CreatedAt"`
	UpdatedAt         time.Time `firestore:"UpdatedAt"`
}

func scoreToInt64(s *types.Score) *int64 {
	if s == nil {
		return nil
	}
	v := int64(*s)
	return &v
}

func int64ToScore(v *int64) *types.Score {
	if v == nil {
		return nil
	}
	return types.ScorePtr(int(*v))
}

func toRiskDoc(r *model.Risk) *riskDoc {
	d := &riskDoc{
		ID:                r.ID,
		ModelID:           r.ModelID,
		RiskType:          r.RiskType,
		HazardDescription: r.HazardDescription,
		Likelihood:        scoreToInt64(r.Likelihood),
		Magnitude:         scoreToInt64(r.Magnitude),
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
	if r.Composite != nil {
		c := int64(*r.Composite)
		d.Composite = &c
	}
	return d
}

func fromRiskDoc(d *riskDoc) *model.Risk {
	r := &model.Risk{
		ID:                d.ID,
		ModelID:           d.ModelID,
		RiskType:          d.RiskType,
		HazardDescription: d.HazardDescription,
		Likelihood:        int64ToScore(d.Likelihood),
		Magnitude:         int64ToScore(d.Magnitude),
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
	if d.Composite != nil {
		c := int(*d.Composite)
		r.Composite = &c
	}
	return r
}

type riskRepository struct {
	store *store
}

func (r *riskRepository) Create(ctx context.Context, workspaceID string, risk *model.Risk) (*model.Risk, error) {
	nextID, err := r.store.nextID(ctx, workspaceID, risksCollection)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get next ID")
	}

	now := time.Now().UTC()
	created := risk.Copy()
	created.ID = nextID
	created.CreatedAt = now
	created.UpdatedAt = now
	created.Recompute()

	_, err = r.store.collection(workspaceID, risksCollection).Doc(docID(created.ID)).Set(ctx, toRiskDoc(created))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create risk", goerr.V("id", created.ID))
	}

	return created, nil
}

func (r *riskRepository) Get(ctx context.Context, workspaceID string, id int64) (*model.Risk, error) {
	doc, err := r.store.collection(workspaceID, risksCollection).Doc(docID(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "risk not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get risk", goerr.V("id", id))
	}

	var d riskDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to decode risk", goerr.V("id", id))
	}

	return fromRiskDoc(&d), nil
}

func (r *riskRepository) List(ctx context.Context, workspaceID string) ([]*model.Risk, error) {
	return listRisks(ctx, r.store.collection(workspaceID, risksCollection).OrderBy("ID", firestore.Asc))
}

func (r *riskRepository) ListByModel(ctx context.Context, workspaceID string, modelID int64) ([]*model.Risk, error) {
	return listRisks(ctx, r.store.collection(workspaceID, risksCollection).Where("ModelID", "==", modelID).OrderBy("ID", firestore.Asc))
}

// listRisks expects q ordered by ID. The filtered query relies on the
// (ModelID, ID) composite index created by the migrate command.
func listRisks(ctx context.Context, q firestore.Query) ([]*model.Risk, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	risks := make([]*model.Risk, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate risks")
		}

		var d riskDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to decode risk", goerr.V("doc_id", doc.Ref.ID))
		}
		risks = append(risks, fromRiskDoc(&d))
	}

	return risks, nil
}

func (r *riskRepository) Update(ctx context.Context, workspaceID string, risk *model.Risk) (*model.Risk, error) {
	docRef := r.store.collection(workspaceID, risksCollection).Doc(docID(risk.ID))

	existing, err := r.Get(ctx, workspaceID, risk.ID)
	if err != nil {
		return nil, err
	}

	updated := existing.Copy()
	incoming := risk.Copy()
	updated.Likelihood = incoming.Likelihood
	updated.Magnitude = incoming.Magnitude
	updated.Composite = incoming.Composite
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, toRiskDoc(updated)); err != nil {
		return nil, goerr.Wrap(err, "failed to update risk", goerr.V("id", risk.ID))
	}

	return updated, nil
}
