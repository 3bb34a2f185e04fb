// Package history keeps a ledger of reconciliations in a SQL database.
//
// The Recorder is a reconcile.Observer: every reconciliation that changed (or
// would have changed, in check mode) an object, or that failed, is stored as a
// Change row with its decision and diff. Reconciliations that found nothing to do
// are not recorded.
//
// # Usage
//
//	db, _ := database.Connect(cfg.Database)
//	rec := history.NewRecorder(db)
//	_ = rec.Migrate()
//	engine := reconcile.NewEngine(client, log, reconcile.EngineOptions{Observers: []reconcile.Observer{rec}})
//
//	changes, err := rec.Recent(ctx, history.Query{Limit: 20})
package history
