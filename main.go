package main

import "github.com/jsphweid/chordal/cmd"

func main() {
	cmd.Execute()
}
