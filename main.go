package main

import "github.com/matt-g-everett/ledtween/cmd"

func main() {
	cmd.Execute()
}
