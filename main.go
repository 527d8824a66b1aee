// main is the entry point for the tempo CLI.
package main

import (
	"github.com/huangsam/tempo/cmd"
	"github.com/huangsam/tempo/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("tempo failed", err)
	}
}
