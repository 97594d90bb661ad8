// Command molsplit splits a CSV of molecules into train / valid / test index
// files by scaffold, by stratified labels or at random.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "molsplit:", err)
		os.Exit(1)
	}
}
