package main

import (
	"fmt"
	"os"

	"github.com/discogen/discogen/cmd"
	"github.com/discogen/discogen/doc"
	"github.com/discogen/discogen/mkdocs"
	"github.com/discogen/discogen/readme"
)

var cli *cmd.CommandLine

func init() {
	cli = cmd.NewCLI()
	cli.AllowPlugins("discogen-gen-")

	// Register reference documentation generator
	cli.RegisterGenerator(new(doc.Generator),
		"doc_out",
		"doc_opt",
		"Generate CommonMark reference documentation.",
	)

	// Register mkdocs site config generator
	cli.RegisterGenerator(new(mkdocs.Generator),
		"mkdocs_out",
		"mkdocs_opt",
		"Generate a mkdocs site config.",
	)

	// Register README generator
	cli.RegisterGenerator(new(readme.Generator),
		"readme_out",
		"readme_opt",
		"Generate client library README boilerplate.",
	)
}

func main() {
	if err := cli.Run(os.Args); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
