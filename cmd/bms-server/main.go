package main

import "github.com/oshokin/bms-sim/cmd/bms-server/cmd"

func main() {
	cmd.Execute()
}
