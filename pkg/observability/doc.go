/*
Package observability provides lifecycle hooks and Prometheus metrics for
the planning engine.

Hooks fire around solver runs and during command replay; the Metrics type
binds a set of counters and histograms to those hooks so an embedding
service can expose them without the engine knowing about a metrics backend.
*/
package observability
