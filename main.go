package main

import "github.com/jvsteiner/otc-agent/cmd"

func main() {
	cmd.Execute()
}
