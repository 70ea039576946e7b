package usecase_test

import (
	"context"
	"sync"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskregister/pkg/domain/model"
	"github.com/secmon-lab/riskregister/pkg/repository/memory"
	"github.com/secmon-lab/riskregister/pkg/usecase"
)

const testWorkspaceID = "test-ws"

func newTestUseCases(t *testing.T, opts ...usecase.Option) *usecase.UseCases {
	t.Helper()
	registry := model.NewWorkspaceRegistry()
	registry.Register(&model.WorkspaceEntry{
		Workspace: model.Workspace{ID: testWorkspaceID, Name: "Test Workspace"},
	})
	return usecase.New(memory.New(), registry, opts...)
}

func addModel(t *testing.T, uc *usecase.UseCases, name string) *model.AIModel {
	t.Helper()
	m, err := uc.Model.AddModel(context.Background(), testWorkspaceID, usecase.AddModelInput{Name: name})
	gt.NoError(t, err).Required()
	return m
}

// notifierMock records alerts and signals each delivery on ch
type notifierMock struct {
	mu     sync.Mutex
	alerts []*model.RiskAlert
	ch     chan struct{}
}

func newNotifierMock() *notifierMock {
	return &notifierMock{ch: make(chan struct{}, 16)}
}

func (n *notifierMock) NotifyRisk(ctx context.Context, alert *model.RiskAlert) error {
	n.mu.Lock()
	n.alerts = append(n.alerts, alert)
	n.mu.Unlock()
	n.ch <- struct{}{}
	return nil
}

func (n *notifierMock) Alerts() []*model.RiskAlert {
	n.mu.Lock()
	defer n.mu.Unlock()
	result := make([]*model.RiskAlert, len(n.alerts))
	copy(result, n.alerts)
	return result
}
