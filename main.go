package main

import (
	"github.com/charmbracelet/stickylist/internal/cmd"
)

func main() {
	cmd.Execute()
}
