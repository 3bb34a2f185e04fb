package history

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"opnsense-manager/core/database"
	"opnsense-manager/core/reconcile"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupSQLite(t *testing.T) *Recorder {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	rec := NewRecorder(db)
	require.NoError(t, rec.Migrate())
	return rec
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestRecorder_ObserveAndRecent(t *testing.T) {
	rec := setupSQLite(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	tick := 0
	rec.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	update := &reconcile.Result{
		ObjectType: "firewall_rule",
		Decision:   reconcile.Update,
		Changed:    true,
		Diff: reconcile.Diff{
			Before: reconcile.Record{"description": "old"},
			After:  reconcile.Record{"description": "new"},
		},
		Existing: reconcile.Record{"uuid": "u1"},
	}

	require.NoError(t, rec.Observe(ctx, reconcile.Outcome{ObjectType: "firewall_rule", Result: update, Applied: true, Duration: 1500 * time.Millisecond}))
	require.NoError(t, rec.Observe(ctx, reconcile.Outcome{ObjectType: "vip", Result: &reconcile.Result{Decision: reconcile.NoChange}}))
	require.NoError(t, rec.Observe(ctx, reconcile.Outcome{ObjectType: "vip", Err: errors.New("appliance rejected the change")}))

	changes, err := rec.Recent(ctx, Query{})
	require.NoError(t, err)
	require.Len(t, changes, 2)

	assert.Equal(t, "vip", changes[0].ObjectType)
	assert.Equal(t, "appliance rejected the change", changes[0].Error)

	assert.Equal(t, "firewall_rule", changes[1].ObjectType)
	assert.Equal(t, "update", changes[1].Decision)
	assert.Equal(t, "u1", changes[1].ObjectUUID)
	assert.True(t, changes[1].Applied)
	assert.Equal(t, int64(1500), changes[1].DurationMS)
	assert.JSONEq(t, `{"before": {"description": "old"}, "after": {"description": "new"}}`, changes[1].Diff)

	filtered, err := rec.Recent(ctx, Query{ObjectType: "firewall_rule", Limit: 10})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, changes[1].ID, filtered[0].ID)
}

func TestRecorder_ObserveMySQL(t *testing.T) {
	db, mock := setupMockDB(t)
	rec := NewRecorder(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `reconcile_changes`")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := rec.Observe(context.Background(), reconcile.Outcome{
		ObjectType: "unbound_host_alias",
		Result:     &reconcile.Result{Decision: reconcile.Create, Changed: true, Diff: reconcile.Diff{After: reconcile.Record{"alias": "www"}}},
		Check:      true,
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecorder_ObserveMySQLFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	rec := NewRecorder(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `reconcile_changes`")).
		WillReturnError(errors.New("table is read only"))
	mock.ExpectRollback()

	err := rec.Observe(context.Background(), reconcile.Outcome{
		ObjectType: "vip",
		Result:     &reconcile.Result{Decision: reconcile.Delete, Changed: true},
	})
	assert.ErrorContains(t, err, "failed to record change")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecorder_RecentMySQL(t *testing.T) {
	db, mock := setupMockDB(t)
	rec := NewRecorder(db)

	rows := sqlmock.NewRows([]string{"id", "object_type", "decision", "check_mode", "applied"}).
		AddRow("c1", "vip", "create", false, true)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `reconcile_changes` WHERE object_type = ? ORDER BY created_at DESC LIMIT ?")).
		WithArgs("vip", sqlmock.AnyArg()).
		WillReturnRows(rows)

	changes, err := rec.Recent(context.Background(), Query{ObjectType: "vip", Limit: 5})
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, "c1", changes[0].ID)
	assert.True(t, changes[0].Applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}
