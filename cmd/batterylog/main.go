package main

import "github.com/cptspacemanspiff/batterylog/internal/cli"

func main() {
	cli.Execute()
}
