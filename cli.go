//go:build cli
// +build cli

package main

import (
	_ "wms.GO/custom"

	"wms.GO/cmd"
	"wms.GO/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
