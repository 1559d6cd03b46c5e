// Package trigger turns a schema graph and per-entity relationship paths
// into PostgreSQL trigger definitions that keep a search index in sync with
// the database.
//
// For every table a declared path touches, the package renders a trigger
// function that computes the set of root-entity ids affected by a changed
// row and publishes them on a message channel, plus the CREATE TRIGGER
// statement binding that function to the table. The output is plain SQL
// text; nothing here connects to a database or a broker.
//
// The pipeline is: [UniqueSplitPaths] normalizes the declared paths,
// [Walk] resolves each path against the graph into a nested SELECT
// fragment, and [Generate] drives the four generator variants over the
// resolved paths, streaming the rendered text to the output sinks.
package trigger
