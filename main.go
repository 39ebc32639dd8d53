package main

import "github.com/ktuncer/wastewise/cmd"

func main() {
	cmd.Execute()
}
