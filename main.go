package main

import (
	"github.com/arkadem/startup-board/cmd"
)

func main() {
	cmd.Execute()
}
