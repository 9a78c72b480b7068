package main

import "github.com/passosperdidos/parlamento-backend/cmd"

func main() {
	cmd.Execute()
}
