package archive

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskregister/pkg/domain/model"
	"github.com/secmon-lab/riskregister/pkg/utils/logging"
	"github.com/secmon-lab/riskregister/pkg/utils/safe"
)

// ObjectStore opens writers for named objects
type ObjectStore interface {
	NewWriter(ctx context.Context, name, contentType string) io.WriteCloser
}

// Archiver stores register snapshots as objects named
// {prefix}/{workspace}/{yyyy}/{mm}/{dd}/{timestamp}_{uuid}.{ext}
type Archiver struct {
	store  ObjectStore
	prefix string
	format Format
}

type Option func(*Archiver)

func WithPrefix(prefix string) Option {
	return func(a *Archiver) {
		a.prefix = prefix
	}
}

func WithFormat(format Format) Option {
	return func(a *Archiver) {
		a.format = format
	}
}

func New(store ObjectStore, opts ...Option) *Archiver {
	a := &Archiver{
		store:  store,
		prefix: "snapshots",
		format: FormatJSON,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Save encodes rows and uploads them. It returns the object name.
func (a *Archiver) Save(ctx context.Context, workspaceID string, rows []*model.RegisterRow, at time.Time) (string, error) {
	at = at.UTC()
	name := a.objectName(workspaceID, at)

	w := a.store.NewWriter(ctx, name, a.format.ContentType())
	if err := Encode(w, a.format, &Snapshot{
		WorkspaceID: workspaceID,
		GeneratedAt: at,
		Rows:        rows,
	}); err != nil {
		safe.Close(ctx, w)
		return "", goerr.Wrap(err, "failed to encode snapshot", goerr.V("object", name))
	}
	// the upload is committed on Close
	if err := w.Close(); err != nil {
		return "", goerr.Wrap(err, "failed to upload snapshot", goerr.V("object", name))
	}

	logging.From(ctx).Info("register snapshot saved",
		"workspace_id", workspaceID,
		"object", name,
		"rows", len(rows))
	return name, nil
}

func (a *Archiver) objectName(workspaceID string, at time.Time) string {
	file := fmt.Sprintf("%s_%s.%s", at.Format("20060102T150405Z"), uuid.NewString(), a.format.Extension())
	return path.Join(a.prefix, workspaceID, at.Format("2006"), at.Format("01"), at.Format("02"), file)
}

// GCS is an ObjectStore backed by a Cloud Storage bucket
type GCS struct {
	client *storage.Client
	bucket string
}

var _ ObjectStore = &GCS{}

func NewGCS(ctx context.Context, bucket string) (*GCS, error) {
	if bucket == "" {
		return nil, goerr.New("archive bucket is required")
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client", goerr.V("bucket", bucket))
	}
	return &GCS{client: client, bucket: bucket}, nil
}

func (g *GCS) NewWriter(ctx context.Context, name, contentType string) io.WriteCloser {
	w := g.client.Bucket(g.bucket).Object(name).NewWriter(ctx)
	w.ContentType = contentType
	return w
}

func (g *GCS) Close() error {
	return g.client.Close()
}
