package main

import "nathanbeddoewebdev/pokeshop/cmd"

func main() {
	cmd.Execute()
}
