package main

import "github.com/liamg/portgrab/cmd"

func main() {
	cmd.Execute()
}
