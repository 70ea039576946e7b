package repository_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskregister/pkg/domain/interfaces"
	"github.com/secmon-lab/riskregister/pkg/domain/model"
	"github.com/secmon-lab/riskregister/pkg/domain/types"
)

func runControlRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	const wsID = "test-ws"

	t.Run("Create starts pending", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Control().Create(ctx, wsID, &model.Control{
			RiskID:      1,
			Description: "Retrain quarterly",
		})
		gt.NoError(t, err).Required()
		gt.Value(t, created.ID).Equal(int64(1))
		gt.Bool(t, created.IsPending()).True()

		got, err := repo.Control().Get(ctx, wsID, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Description).Equal("Retrain quarterly")
		gt.Value(t, got.Effectiveness).Nil()
		gt.Value(t, got.Response).Nil()
	})

	t.Run("Update assigns response", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Control().Create(ctx, wsID, &model.Control{RiskID: 1, Description: "Human review"})
		gt.NoError(t, err).Required()

		change := created.Copy()
		change.SetResponse(4, types.RiskResponseMitigate)
		_, err = repo.Control().Update(ctx, wsID, change)
		gt.NoError(t, err).Required()

		got, err := repo.Control().Get(ctx, wsID, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, *got.Effectiveness).Equal(types.Score(4))
		gt.Value(t, *got.Response).Equal(types.RiskResponseMitigate)
		gt.Bool(t, got.IsPending()).False()
	})

	t.Run("Get and Update of unknown control fail", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Control().Get(ctx, wsID, 5)
		gt.Value(t, err).NotNil()
		_, err = repo.Control().Update(ctx, wsID, &model.Control{ID: 5})
		gt.Value(t, err).NotNil()
	})

	t.Run("ListByRisk filters and orders by ID", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for _, c := range []*model.Control{
			{RiskID: 2, Description: "a"},
			{RiskID: 1, Description: "b"},
			{RiskID: 2, Description: "c"},
		} {
			_, err := repo.Control().Create(ctx, wsID, c)
			gt.NoError(t, err).Required()
		}

		all, err := repo.Control().List(ctx, wsID)
		gt.NoError(t, err).Required()
		gt.Array(t, all).Length(3)

		byRisk, err := repo.Control().ListByRisk(ctx, wsID, 2)
		gt.NoError(t, err).Required()
		gt.Array(t, byRisk).Length(2).Required()
		gt.Value(t, byRisk[0].Description).Equal("a")
		gt.Value(t, byRisk[1].Description).Equal("c")
	})
}

func TestControlRepository_Memory(t *testing.T) {
	runControlRepositoryTest(t, newMemoryRepository)
}

func TestControlRepository_Firestore(t *testing.T) {
	runControlRepositoryTest(t, newFirestoreRepository)
}
