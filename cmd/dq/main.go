/*
File    : dq/cmd/dq/main.go
Author  : dq contributors

Entry point, grounded on the earlier main/main.go dispatch shape
(parse flags, delegate to a run function, exit nonzero on error)
generalized from the earlier interpreter's REPL-or-file-execution split to cobra's
flag/subcommand dispatch.
*/
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "dq: error: %s\n", err)
		os.Exit(1)
	}
}
