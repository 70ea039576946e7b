package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	modelsCollection   = "models"
	risksCollection    = "risks"
	controlsCollection = "controls"
	countersCollection = "counters"
)

// store holds the client and resolves workspace scoped paths:
// {prefix_}workspaces/{workspaceID}/{collection}/{id}
type store struct {
	client           *firestore.Client
	collectionPrefix string
}

func (s *store) workspacesCollection() string {
	if s.collectionPrefix != "" {
		return s.collectionPrefix + "_workspaces"
	}
	return "workspaces"
}

func (s *store) collection(workspaceID, name string) *firestore.CollectionRef {
	return s.client.Collection(s.workspacesCollection()).Doc(workspaceID).Collection(name)
}

func docID(id int64) string {
	return fmt.Sprintf("%d", id)
}

// nextID increments the workspace counter of a collection in a transaction.
// The first ID is 1.
func (s *store) nextID(ctx context.Context, workspaceID, name string) (int64, error) {
	counterRef := s.collection(workspaceID, countersCollection).Doc(name)

	var nextID int64
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(counterRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				nextID = 1
				return tx.Set(counterRef, map[string]interface{}{
					"value": nextID,
				})
			}
			return goerr.Wrap(err, "failed to get counter")
		}

		currentValue, err := doc.DataAt("value")
		if err != nil {
			return goerr.Wrap(err, "failed to get counter value")
		}

		val, ok := currentValue.(int64)
		if !ok {
			return goerr.New("counter value is not of type int64", goerr.V("value", currentValue))
		}
		nextID = val + 1
		return tx.Update(counterRef, []firestore.Update{
			{Path: "value", Value: nextID},
		})
	})

	if err != nil {
		return 0, goerr.Wrap(err, "failed to get next ID",
			goerr.V("workspace_id", workspaceID),
			goerr.V("collection", name))
	}

	return nextID, nil
}
