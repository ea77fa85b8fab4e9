// Command ebikecore runs the e-bike motor-controller application-layer
// control core as a headless CLI.
package main

import "github.com/ebike-foss/ctrlcore/internal/cli"

func main() {
	cli.Execute()
}
