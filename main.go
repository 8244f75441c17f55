package main

import "github.com/ossrfc/ossrfc/cmd"

func main() {
	cmd.Execute()
}
