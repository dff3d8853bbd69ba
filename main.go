package main

import (
	"github.com/samuelfneumann/gomonte/examples"
)

func main() {
	examples.MonteCarloGridWorld()
}
