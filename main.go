package main

import "codeck-client/cmd"

func main() {
	cmd.Run()
}
