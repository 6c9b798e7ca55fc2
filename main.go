package main

import "batchpix/cmd"

func main() {
	cmd.Execute()
}
