// Package bcp implements the branch-cut-and-price search tree (spec.md
// §4.8): best-bound node selection, column generation against a spf.SPF
// master, root-only subset-row cut separation, strong branching on arc
// flows, and a rounding-dive freeze heuristic for an early incumbent.
package bcp
