// Package solverio is the external interface layer (spec.md §6): JSON
// experiment configuration, the status enums and execution logs the core
// exposes to callers, and the solve/best-solution result envelope. It is
// the only package allowed to import every layer below it — bcp,
// bidirectional, and labeling each avoid importing solverio to keep the
// dependency graph acyclic, so the naming this package does (BCStatus,
// BLBStatus, MLBStatus, BLBExecutionLog) happens here as type aliases
// rather than duplicated definitions.
package solverio
