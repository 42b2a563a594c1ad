package main

import "github.com/FactomWyomingEntity/prosper-roi/cmd"

func main() {
	cmd.Execute()
}
