// Package vrpinstance holds the time-dependent VRP data model: the
// int-indexed Digraph, the Instance (time windows, capacity, demands, and
// the piecewise-linear travel/arrival/departure functions of every arc),
// the latest-departure-time (LDT) precomputation used to prune unreachable
// vertices, and the exact time-reversal transform the bidirectional
// labeling driver uses to run a second search on the reverse network.
//
// Vertices are plain ints in [0,n) rather than the teacher's string-keyed
// core.Vertex, since every quantity here (time windows, demands, PWL
// matrices) is naturally indexed by a dense integer range.
package vrpinstance
