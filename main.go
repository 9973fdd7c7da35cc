package main

import "github.com/notefall/charter/cmd"

func main() {
	cmd.Execute()
}
