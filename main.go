package main

import "opnsense-manager/cmd"

func main() {
	cmd.Execute()
}
