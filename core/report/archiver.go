package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"opnsense-manager/core/reconcile"
	"opnsense-manager/core/storage"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Archiver uploads reconciliation reports to a bucket.
type Archiver struct {
	client storage.Client
	bucket string
	prefix string
	logger *zap.Logger
	now    func() time.Time
}

// NewArchiver creates an archiver writing to bucket under prefix.
func NewArchiver(client storage.Client, bucket, prefix string, logger *zap.Logger) *Archiver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Archiver{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logger,
		now:    time.Now,
	}
}

// Observe implements reconcile.Observer. Unchanged successful outcomes are skipped.
func (a *Archiver) Observe(ctx context.Context, o reconcile.Outcome) error {
	if o.Err == nil && (o.Result == nil || !o.Result.Changed) {
		return nil
	}

	now := a.now()
	r := newReport(uuid.NewString(), o, now)
	body, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	name := a.objectName(r.ObjectType, now, r.ID)
	_, err = a.client.PutObject(ctx, a.bucket, name, bytes.NewReader(body), int64(len(body)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("failed to upload report %s: %w", name, err)
	}

	a.logger.Debug("Report archived", zap.String("bucket", a.bucket), zap.String("object", name))
	return nil
}

func (a *Archiver) objectName(objectType string, at time.Time, id string) string {
	return a.prefix + path.Join(objectType, at.UTC().Format("2006-01-02"), id+".json")
}
