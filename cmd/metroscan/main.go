package main

import "github.com/metroscan/metroscan/cmd/metroscan/cmd"

func main() {
	cmd.Execute()
}
