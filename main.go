package main

import "github.com/jalvarado/incident-management/cmd"

func main() {
	cmd.Execute()
}
