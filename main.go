package main

import (
	"github.com/mubarak-24/football-matches/cmd"
)

func main() {
	cmd.Execute()
}
