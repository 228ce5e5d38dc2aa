package main

import "github.com/KaramelBytes/statboard/cmd"

func main() {
	cmd.Execute()
}
