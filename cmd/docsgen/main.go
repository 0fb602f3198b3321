package main

import (
	"fmt"
	"os"

	"github.com/Shiwantha-I-Rodrigo/watch-tower/cmd/docsgen/docsgen"
)

func main() {
	if err := docsgen.Command.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
