package main

import "github.com/temporalcortex/tcx/cmd"

func main() {
	cmd.Execute()
}
