package main

import "github.com/KaramelBytes/playmetrics-cli/cmd"

func main() {
	cmd.Execute()
}
