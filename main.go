// The main package for the ffd-crawler executable.
package main

import (
	"github.com/flagfootballdirectory/crawler/cmd"
)

// main is the entry point of the application.
// It defers all execution to the Cobra CLI library.
func main() {
	cmd.Execute()
}
