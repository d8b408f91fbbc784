// Copyright (c) 2025 The ADRStake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"runtime"
	"sync"
	"syscall"
	"time"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/adrtoken/adrstake/genesis"
	"github.com/adrtoken/adrstake/kv"
	"github.com/adrtoken/adrstake/log"
	"github.com/adrtoken/adrstake/logdb"
	rt "github.com/adrtoken/adrstake/runtime"
	"github.com/adrtoken/adrstake/staking"
	"github.com/adrtoken/adrstake/state"
)

func fatal(args ...interface{}) {
	fmt.Fprint(os.Stderr, "Fatal: ")
	fmt.Fprintln(os.Stderr, args...)
	os.Exit(1)
}

func fatalf(format string, args ...interface{}) {
	fatal(fmt.Sprintf(format, args...))
}

func initLogger(ctx *cli.Context) {
	log.SetVerbosity(ctx.Int(verbosityFlag.Name))
}

func unixNow() uint64 {
	return uint64(time.Now().Unix())
}

func makeDataDir(ctx *cli.Context) string {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		fatalf("unable to infer default data dir, use -%s to specify one", dataDirFlag.Name)
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		fatalf("create data dir at '%v': %v", dataDir, err)
	}
	return dataDir
}

func openMainDB(dataDir string) *kv.LevelDB {
	dir := filepath.Join(dataDir, "main.db")
	db, err := kv.New(dir, kv.Options{})
	if err != nil {
		fatalf("open main database at '%v': %v", dir, err)
	}
	return db
}

func openLogDB(dataDir string) *logdb.LogDB {
	path := filepath.Join(dataDir, "events.db")
	db, err := logdb.New(path)
	if err != nil {
		fatalf("open event database at '%v': %v", path, err)
	}
	return db
}

// buildGenesis bootstraps an empty deployment from the genesis config file.
// A data dir that already carries a deployment is left untouched.
func buildGenesis(ctx *cli.Context, st *state.State) {
	path := ctx.String(genesisFlag.Name)

	cfg, err := staking.New(st).Config()
	if err != nil {
		fatal("read config record:", err)
	}
	if cfg.Initialized {
		if path != "" {
			logger.Info("deployment already exists, ignoring genesis file", "path", path)
		}
		return
	}
	if path == "" {
		fatalf("empty data dir and no genesis file, use -%s to bootstrap", genesisFlag.Name)
	}

	gene, err := genesis.Load(path)
	if err != nil {
		fatal("load genesis config:", err)
	}
	if err := genesis.Build(st, gene, unixNow()); err != nil {
		fatal("build genesis:", err)
	}
	logger.Info("deployment bootstrapped", "mint", gene.Mint, "admin", gene.Admin)
}

func startAPIServer(ctx *cli.Context, handler http.Handler) (string, func()) {
	addr := ctx.String(apiAddrFlag.Name)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		fatalf("listen API addr [%v]: %v", addr, err)
	}
	srv := &http.Server{Handler: handler}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		srv.Serve(listener)
	}()
	return "http://" + listener.Addr().String() + "/", func() {
		srv.Close()
		wg.Wait()
	}
}

func printStartupMessage(stakeRT *rt.Runtime, dataDir, apiURL string) {
	summary, err := stakeRT.Engine().ConfigSummary()
	if err != nil {
		fatal("read config summary:", err)
	}

	fmt.Printf(`Starting ADRStake %v
    Payment token [ %v ]
    Admin         [ %v ]
    Staking       [ enabled=%v rate=%vbps paused=%v ]
    Data dir      [ %v ]
    API portal    [ %v ]
`,
		fullVersion(),
		summary.PaymentToken,
		summary.Admin,
		summary.StakingEnabled, summary.RewardRateBps, summary.EmergencyPaused,
		dataDir,
		apiURL)
}

func handleExitSignal() <-chan struct{} {
	done := make(chan struct{})
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		logger.Info("exit signal received", "signal", sig)
		close(done)
	}()
	return done
}

// copy from go-ethereum
func defaultDataDir() string {
	if home := homeDir(); home != "" {
		if runtime.GOOS == "darwin" {
			return filepath.Join(home, "Library", "Application Support", "org.adrtoken.adrstake")
		} else if runtime.GOOS == "windows" {
			return filepath.Join(home, "AppData", "Roaming", "org.adrtoken.adrstake")
		} else {
			return filepath.Join(home, ".org.adrtoken.adrstake")
		}
	}
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}
