package archive_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskregister/pkg/domain/model"
	"github.com/secmon-lab/riskregister/pkg/domain/types"
	"github.com/secmon-lab/riskregister/pkg/service/archive"
)

type memObject struct {
	bytes.Buffer
	closed bool
}

func (o *memObject) Close() error {
	o.closed = true
	return nil
}

type memStore struct {
	objects      map[string]*memObject
	contentTypes map[string]string
}

func newMemStore() *memStore {
	return &memStore{
		objects:      make(map[string]*memObject),
		contentTypes: make(map[string]string),
	}
}

func (s *memStore) NewWriter(ctx context.Context, name, contentType string) io.WriteCloser {
	obj := &memObject{}
	s.objects[name] = obj
	s.contentTypes[name] = contentType
	return obj
}

func sampleRows() []*model.RegisterRow {
	m := []*model.AIModel{
		{ID: 1, Name: "M1", Status: types.ModelStatusInProduction},
		{ID: 2, Name: "M2, with comma", Status: types.ModelStatusRetired},
	}
	r := &model.Risk{ID: 1, ModelID: 1, RiskType: "Data Quality", HazardDescription: "Label noise"}
	r.SetScores(3, 4)
	c := &model.Control{ID: 1, RiskID: 1, Description: "Retrain quarterly"}
	c.SetResponse(4, types.RiskResponseMitigate)
	return model.BuildRegister(m, []*model.Risk{r}, []*model.Control{c})
}

func TestArchiver_Save(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	t.Run("json snapshot", func(t *testing.T) {
		store := newMemStore()
		a := archive.New(store, archive.WithPrefix("registers"))

		name, err := a.Save(ctx, "default", sampleRows(), at)
		gt.NoError(t, err).Required()
		gt.Bool(t, strings.HasPrefix(name, "registers/default/2026/03/14/20260314T092653Z_")).True()
		gt.Bool(t, strings.HasSuffix(name, ".json")).True()

		obj := store.objects[name]
		gt.Value(t, obj).NotNil().Required()
		gt.Bool(t, obj.closed).True()
		gt.Value(t, store.contentTypes[name]).Equal("application/json")

		var snap archive.Snapshot
		gt.NoError(t, json.Unmarshal(obj.Bytes(), &snap)).Required()
		gt.Value(t, snap.WorkspaceID).Equal("default")
		gt.Array(t, snap.Rows).Length(2).Required()
		gt.Value(t, *snap.Rows[0].CompositeRiskScore).Equal(12)
		gt.Value(t, snap.Rows[1].RiskID).Nil()
	})

	t.Run("object names are unique", func(t *testing.T) {
		store := newMemStore()
		a := archive.New(store)

		n1, err := a.Save(ctx, "default", nil, at)
		gt.NoError(t, err).Required()
		n2, err := a.Save(ctx, "default", nil, at)
		gt.NoError(t, err).Required()
		gt.Value(t, n1).NotEqual(n2)
	})

	t.Run("csv snapshot", func(t *testing.T) {
		store := newMemStore()
		a := archive.New(store, archive.WithFormat(archive.FormatCSV))

		name, err := a.Save(ctx, "default", sampleRows(), at)
		gt.NoError(t, err).Required()
		gt.Value(t, store.contentTypes[name]).Equal("text/csv")

		records, err := csv.NewReader(strings.NewReader(store.objects[name].String())).ReadAll()
		gt.NoError(t, err).Required()
		gt.Array(t, records).Length(3).Required()
		gt.Value(t, records[0]).Equal(archive.Columns)
		gt.Value(t, records[1][1]).Equal("M1")
		gt.Value(t, records[1][11]).Equal("12")
		gt.Value(t, records[1][15]).Equal("Mitigate")
		gt.Value(t, records[2][1]).Equal("M2, with comma")
		gt.Value(t, records[2][6]).Equal("")
	})
}

func TestParseFormat(t *testing.T) {
	f, err := archive.ParseFormat("csv")
	gt.NoError(t, err).Required()
	gt.Value(t, f).Equal(archive.FormatCSV)

	_, err = archive.ParseFormat("xlsx")
	gt.Value(t, err).NotNil()
}

func TestGCS_Integration(t *testing.T) {
	bucket := os.Getenv("TEST_ARCHIVE_BUCKET")
	if bucket == "" {
		t.Skip("TEST_ARCHIVE_BUCKET is not set")
	}

	ctx := context.Background()
	store, err := archive.NewGCS(ctx, bucket)
	gt.NoError(t, err).Required()
	defer func() { gt.NoError(t, store.Close()) }()

	name, err := archive.New(store, archive.WithPrefix("test")).Save(ctx, "default", sampleRows(), time.Now())
	gt.NoError(t, err).Required()
	t.Logf("uploaded %s", name)
}
