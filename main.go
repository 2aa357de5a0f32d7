package main

import "tracker78-backend/cmd"

func main() {
	cmd.Run()
}
