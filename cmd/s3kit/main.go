// Command s3kit is a small CLI over the s3kit library: list, fetch, store,
// and delete objects, and check the caller identity.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
