package main

import "github.com/oshokin/bms-sim/cmd/bms-sim/cmd"

func main() {
	cmd.Execute()
}
