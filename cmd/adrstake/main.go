// Copyright (c) 2025 The ADRStake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/adrtoken/adrstake/api"
	"github.com/adrtoken/adrstake/log"
	"github.com/adrtoken/adrstake/metrics"
	"github.com/adrtoken/adrstake/runtime"
	"github.com/adrtoken/adrstake/state"
)

var (
	version   string
	gitCommit string
	gitTag    string

	logger = log.WithContext("pkg", "main")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "ADRStake",
		Usage:     "ADR token staking engine",
		Copyright: "2025 The ADRStake developers",
		Flags: []cli.Flag{
			dataDirFlag,
			genesisFlag,
			apiAddrFlag,
			apiCorsFlag,
			verbosityFlag,
			enableAPILogsFlag,
			enableMetricsFlag,
			pprofFlag,
		},
		Action: defaultAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	defer func() { logger.Info("exited") }()

	initLogger(ctx)
	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	dataDir := makeDataDir(ctx)

	mainDB := openMainDB(dataDir)
	defer func() { logger.Info("closing main database..."); mainDB.Close() }()

	logDB := openLogDB(dataDir)
	defer func() { logger.Info("closing event database..."); logDB.Close() }()

	st := state.New(mainDB)
	buildGenesis(ctx, st)

	rt := runtime.New(st, logDB, unixNow)

	handler := api.New(rt, logDB, api.Options{
		AllowedOrigins:  ctx.String(apiCorsFlag.Name),
		PprofOn:         ctx.Bool(pprofFlag.Name),
		EnableReqLogger: ctx.Bool(enableAPILogsFlag.Name),
		EnableMetrics:   ctx.Bool(enableMetricsFlag.Name),
	})

	apiURL, srvCloser := startAPIServer(ctx, handler)
	defer func() { logger.Info("stopping API server..."); srvCloser() }()

	printStartupMessage(rt, dataDir, apiURL)

	<-handleExitSignal()
	return nil
}
