package main

import "payfold/cmd"

func main() {
	cmd.Execute()
}
