package main

import "bella/cmd"

func main() {
	cmd.Execute()
}
