package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Config   string           `short:"c" type:"path" help:"Path to HCL configuration file"`
	LogLevel string           `default:"info" enum:"debug,info,warn,error" help:"Log level"`

	Simulate  SimulateCmd  `cmd:"" help:"Play automated hands and report results"`
	GenTables GenTablesCmd `cmd:"" name:"gen-tables" help:"Generate the perfect-hash evaluator table"`
	Serve     ServeCmd     `cmd:"" help:"Run a simulated table with a websocket spectator feed"`
	Watch     WatchCmd     `cmd:"" help:"Watch a simulated table live in the terminal"`
	Odds      OddsCmd      `cmd:"" help:"Estimate hold'em equity by Monte Carlo simulation"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pokerengine"),
		kong.Description("Multi-variant poker engine: tables, hand histories and evaluator tools"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli)
	ctx.FatalIfErrorf(err)
}
