// Package main is the entry point for the tcgradar CLI.
package main

import (
	"github.com/tcgradar/tcgradar/cmd/tcgradar/cmd"
)

func main() {
	cmd.Execute()
}
