package main

import "photopti/cmd"

func main() {
	cmd.Execute()
}
