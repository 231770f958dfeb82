// Command tdbcp solves time-dependent vehicle routing problems with time
// windows via branch-cut-and-price.
package main

import "github.com/katalvlaran/tdbcp/cmd/tdbcp/cmd"

func main() {
	cmd.Execute()
}
