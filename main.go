package main

import (
	"fmt"
	"os"

	"github.com/Shiwantha-I-Rodrigo/watch-tower/cmd/watchtower"
)

func main() {
	if err := watchtower.Command.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
