package main

import "github.com/snapshare/cli/internal/cmd"

func main() {
	cmd.Execute()
}
