package main

import (
	stderrors "errors"
	"os"

	"github.com/alecthomas/kong"

	"github.com/apache/tsfile-website/cmd/tsfile-site/commands"
	"github.com/apache/tsfile-website/internal/foundation/errors"
	"github.com/apache/tsfile-website/internal/version"
)

func main() {
	var cli commands.CLI
	parser := kong.Parse(&cli,
		kong.Name("tsfile-site"),
		kong.Description("Configure, check and publish the Apache TsFile documentation site."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	g := commands.NewGlobal()
	err := parser.Run(g, &cli)
	if err == nil {
		return
	}
	var code commands.ExitCode
	if stderrors.As(err, &code) {
		os.Exit(int(code))
	}
	os.Exit(errors.NewCLIErrorAdapter(cli.Verbose, nil).Handle(err, os.Stderr))
}
