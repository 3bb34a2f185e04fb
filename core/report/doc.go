// Package report archives reconciliation reports to object storage.
//
// The Archiver is a reconcile.Observer. Every reconciliation that produced a
// change, or failed, is encoded as a JSON document and uploaded to the
// configured bucket under:
//
//	<prefix><object type>/<YYYY-MM-DD>/<uuid>.json
//
// Reports are written once and never read back by this application.
package report
