package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"opnsense-manager/core/reconcile"
	"opnsense-manager/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func fixedArchiver(client *mocks.Client) *Archiver {
	a := NewArchiver(client, "reports-bucket", "reports/", nil)
	a.now = func() time.Time { return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC) }
	return a
}

func TestArchiver_UploadsChangedResult(t *testing.T) {
	client := new(mocks.Client)
	a := fixedArchiver(client)

	var uploaded []byte
	client.On("PutObject", mock.Anything, "reports-bucket",
		mock.MatchedBy(func(name string) bool {
			return strings.HasPrefix(name, "reports/vip/2026-03-14/") && strings.HasSuffix(name, ".json")
		}),
		mock.Anything, mock.Anything,
		mock.MatchedBy(func(opts minio.PutObjectOptions) bool { return opts.ContentType == "application/json" }),
	).Run(func(args mock.Arguments) {
		data, err := io.ReadAll(args.Get(3).(io.Reader))
		require.NoError(t, err)
		uploaded = data
		assert.Equal(t, int64(len(data)), args.Get(4).(int64))
	}).Return(minio.UploadInfo{}, nil)

	err := a.Observe(context.Background(), reconcile.Outcome{
		ObjectType: "vip",
		Applied:    true,
		Duration:   1500 * time.Millisecond,
		Result: &reconcile.Result{
			ObjectType: "vip",
			Decision:   reconcile.Create,
			Changed:    true,
			Diff:       reconcile.Diff{After: reconcile.Record{"address": "10.0.0.5"}},
		},
	})
	require.NoError(t, err)
	client.AssertExpectations(t)

	var r Report
	require.NoError(t, json.Unmarshal(uploaded, &r))
	assert.Equal(t, "vip", r.ObjectType)
	assert.Equal(t, reconcile.Create, r.Decision)
	assert.True(t, r.Changed)
	assert.True(t, r.Applied)
	assert.Equal(t, int64(1500), r.DurationMS)
	require.NotNil(t, r.Diff)
	assert.Equal(t, "10.0.0.5", r.Diff.After["address"])
	assert.Nil(t, r.Diff.Before)
}

func TestArchiver_SkipsUnchanged(t *testing.T) {
	client := new(mocks.Client)
	a := fixedArchiver(client)

	err := a.Observe(context.Background(), reconcile.Outcome{
		ObjectType: "vip",
		Result:     &reconcile.Result{Decision: reconcile.NoChange},
	})
	require.NoError(t, err)
	client.AssertNotCalled(t, "PutObject")
}

func TestArchiver_RecordsFailures(t *testing.T) {
	client := new(mocks.Client)
	a := fixedArchiver(client)

	var uploaded bytes.Buffer
	client.On("PutObject", mock.Anything, "reports-bucket", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			_, _ = io.Copy(&uploaded, args.Get(3).(io.Reader))
		}).
		Return(minio.UploadInfo{}, nil)

	err := a.Observe(context.Background(), reconcile.Outcome{
		ObjectType: "firewall_rule",
		Err:        errors.New("appliance unreachable"),
	})
	require.NoError(t, err)

	var r Report
	require.NoError(t, json.Unmarshal(uploaded.Bytes(), &r))
	assert.Equal(t, "appliance unreachable", r.Error)
	assert.Empty(t, r.Decision)
}

func TestArchiver_UploadError(t *testing.T) {
	client := new(mocks.Client)
	a := fixedArchiver(client)

	client.On("PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("access denied"))

	err := a.Observe(context.Background(), reconcile.Outcome{
		ObjectType: "vip",
		Result:     &reconcile.Result{Decision: reconcile.Delete, Changed: true},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}

func TestArchiver_ObjectName(t *testing.T) {
	a := NewArchiver(nil, "b", "", nil)
	at := time.Date(2026, 1, 2, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "unbound_host_alias/2026-01-02/abc.json", a.objectName("unbound_host_alias", at, "abc"))
}
