package main

import (
	"os"

	"github.com/felixbrock/monument/internal/app"
	"github.com/felixbrock/monument/internal/cli"
	"github.com/felixbrock/monument/internal/components"
	_ "go.uber.org/automaxprocs"
)

func main() {
	componentBuilder := app.ComponentBuilder{
		Page:   components.Page,
		App:    components.App,
		Index:  components.Index,
		Hero:   components.Hero,
		NavBar: components.NavBar,
		Footer: components.Footer,
		Error:  components.Error,
	}

	cmd := cli.NewRootCmd(cli.Deps{Components: componentBuilder, Stderr: os.Stderr})

	err := cmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
