// Command astrobrasil serves and administers the AstroBrasil mission catalog.
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(nil).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
