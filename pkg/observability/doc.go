/*
Package observability provides Prometheus metrics for renaming sessions and the
HTTP adapter.

A nil *Metrics is valid and records nothing, so components can take metrics as
an optional dependency.
*/
package observability
