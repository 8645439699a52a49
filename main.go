package main

import "gdps-backend/cmd"

func main() {
	cmd.Execute()
}
