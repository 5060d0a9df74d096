package main

import "raspview/internal/cmd"

func main() {
	cmd.Execute()
}
