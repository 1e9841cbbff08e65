package main

import "f2yaml/cmd/f2yaml-cli/cmd"

func main() {
	cmd.Execute()
}
