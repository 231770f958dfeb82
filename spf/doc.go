// Package spf implements the set-partitioning formulation for the TDVRPTW
// master problem (spec.md §4.7): a restricted LP over route columns with
// one equality row per customer and one <= row per active subset-row cut.
// It owns Omega (the pool of discovered routes), translates the master's
// dual values into a pricing problem for the labeling engines, and keeps
// forbidden-arc bookkeeping in sync with branching decisions.
package spf
