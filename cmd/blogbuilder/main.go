package main

import (
	"fmt"
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/blogbuilder/cmd/blogbuilder/commands"
	"git.home.luguber.info/inful/blogbuilder/internal/version"
)

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("blogbuilder"),
		kong.Description("Build, preview and publish a Pelican blog from one YAML config."),
		kong.Vars{"version": fmt.Sprintf("blogbuilder %s (commit %s, built %s)",
			version.Version, version.GitCommit, version.BuildTime)},
	)
	ctx.FatalIfErrorf(ctx.Run(&commands.Global{Logger: slog.Default()}))
}
