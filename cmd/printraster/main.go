// Command printraster inspects, converts, and renders CUPS and Apple URF
// print raster streams.
package main

import (
	"os"

	"github.com/charmbracelet/log"

	"github.com/go-raster/printraster/cmd/printraster/root"
)

func main() {
	if err := root.NewRootCmd().Execute(); err != nil {
		log.Error("printraster failed", "error", err)
		os.Exit(1)
	}
}
