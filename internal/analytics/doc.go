// Package analytics derives dashboard metrics from entity snapshots.
//
// Every function here is pure: inputs are treated as read-only, results are freshly
// allocated, and zero denominators produce zero instead of NaN or Inf.
package analytics
