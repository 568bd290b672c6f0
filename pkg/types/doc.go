// Package types defines the data model shared by the kilm merge engine.
//
// It holds library entries and their identities, the ChangeSet computed by
// the merge planner, the desired state supplied by the command layer, backup
// records, and the FS interface every component reads and writes through.
package types
