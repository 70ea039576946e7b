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

type controlDoc struct {
	ID            int64     `firestore:"ID"`
	RiskID        int64     `firestore:"RiskID"`
	Description   string    `firestore:"Description"`
	Effectiveness *int64    `firestore:"Effectiveness"`
	Response      *string   `firestore:"Response"`
	CreatedAt     time.Time `firestore:"CreatedAt"`
	UpdatedAt     time.Time `firestore:"UpdatedAt"`
}

func toControlDoc(c *model.Control) *controlDoc {
	d := &controlDoc{
		ID:            c.ID,
		RiskID:        c.RiskID,
		Description:   c.Description,
		Effectiveness: scoreToInt64(c.Effectiveness),
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
	if c.Response != nil {
		resp := c.Response.String()
		d.Response = &resp
	}
	return d
}

func fromControlDoc(d *controlDoc) *model.Control {
	c := &model.Control{
		ID:            d.ID,
		RiskID:        d.RiskID,
		Description:   d.Description,
		Effectiveness: int64ToScore(d.Effectiveness),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
	if d.Response != nil {
		resp := types.RiskResponse(*d.Response)
		c.Response = &resp
	}
	return c
}

type controlRepository struct {
	store *store
}

func (r *controlRepository) Create(ctx context.Context, workspaceID string, control *model.Control) (*model.Control, error) {
	nextID, err := r.store.nextID(ctx, workspaceID, controlsCollection)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get next ID")
	}

	now := time.Now().UTC()
	created := control.Copy()
	created.ID = nextID
	created.CreatedAt = now
	created.UpdatedAt = now

	_, err = r.store.collection(workspaceID, controlsCollection).Doc(docID(created.ID)).Set(ctx, toControlDoc(created))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create control", goerr.V("id", created.ID))
	}

	return created, nil
}

func (r *controlRepository) Get(ctx context.Context, workspaceID string, id int64) (*model.Control, error) {
	doc, err := r.store.collection(workspaceID, controlsCollection).Doc(docID(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "control not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get control", goerr.V("id", id))
	}

	var d controlDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to decode control", goerr.V("id", id))
	}

	return fromControlDoc(&d), nil
}

func (r *controlRepository) List(ctx context.Context, workspaceID string) ([]*model.Control, error) {
	return listControls(ctx, r.store.collection(workspaceID, controlsCollection).OrderBy("ID", firestore.Asc))
}

func (r *controlRepository) ListByRisk(ctx context.Context, workspaceID string, riskID int64) ([]*model.Control, error) {
	return listControls(ctx, r.store.collection(workspaceID, controlsCollection).Where("RiskID", "==", riskID).OrderBy("ID", firestore.Asc))
}

func listControls(ctx context.Context, q firestore.Query) ([]*model.Control, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	controls := make([]*model.Control, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate controls")
		}

		var d controlDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to decode control", goerr.V("doc_id", doc.Ref.ID))
		}
		controls = append(controls, fromControlDoc(&d))
	}

	return controls, nil
}

func (r *controlRepository) Update(ctx context.Context, workspaceID string, control *model.Control) (*model.Control, error) {
	existing, err := r.Get(ctx, workspaceID, control.ID)
	if err != nil {
		return nil, err
	}

	updated := existing.Copy()
	incoming := control.Copy()
	updated.Effectiveness = incoming.Effectiveness
	updated.Response = incoming.Response
	updated.UpdatedAt = time.Now().UTC()

	docRef := r.store.collection(workspaceID, controlsCollection).Doc(docID(control.ID))
	if _, err := docRef.Set(ctx, toControlDoc(updated)); err != nil {
		return nil, goerr.Wrap(err, "failed to update control", goerr.V("id", control.ID))
	}

	return updated, nil
}
