package main

import "github.com/carton-io/carton/cmd"

func main() {
	cmd.Execute()
}
