package main

import "github.com/kezou/pacer/cmd"

func main() {
	cmd.Execute()
}
