package main

import "github.com/Alijeyrad/angket_backend/cmd"

func main() {
	cmd.Execute()
}
