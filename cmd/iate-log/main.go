// cmd/iate-log/main.go
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"iate-log/internal/cli"
	"iate-log/internal/config"
	"iate-log/internal/logger"
	"iate-log/internal/server"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Path to a YAML config file. Falls back to CONFIG_PATH, then ./local.yaml." type:"path"`

	Serve   cli.ServeCmd   `cmd:"" help:"Run the HTTP, MCP and websocket server." default:"1"`
	Log     cli.LogCmd     `cmd:"" help:"Log a meal from a description."`
	Photo   cli.PhotoCmd   `cmd:"" help:"Log a meal from a JPEG photo."`
	Meals   cli.MealsCmd   `cmd:"" help:"List logged meals."`
	Delete  cli.DeleteCmd  `cmd:"" help:"Delete a meal by ID."`
	Clear   cli.ClearCmd   `cmd:"" help:"Delete every logged meal."`
	Summary cli.SummaryCmd `cmd:"" help:"Show calories against the daily target for a period."`
	Profile cli.ProfileCmd `cmd:"" help:"Show or change the profile."`
	Info    cli.VersionCmd `cmd:"" name:"version" help:"Print the version."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("iate-log"),
		kong.Description("Food log that estimates calories with a language model"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": server.Version},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.Log)

	appCtx := cli.NewContext(cfg, os.Stdout)
	err = ctx.Run(appCtx)
	if cerr := appCtx.Close(); cerr != nil {
		logger.Warn("storage.close_failed", "err", cerr)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
