// Package main provides the climbex CLI application.
// climbex exports the OpenBeta climb catalog to parquet and converts
// exports to JSON or GeoJSON.
package main

import (
	"os"
)

var (
	// Version is set by build flags
	Version = "dev"
)

func main() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
