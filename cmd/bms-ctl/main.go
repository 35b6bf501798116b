package main

import "github.com/oshokin/bms-sim/cmd/bms-ctl/cmd"

func main() {
	cmd.Execute()
}
