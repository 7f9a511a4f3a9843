// Copyright (c) 2026 The CreditLedger developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/creditledger/credits/log"
	"github.com/creditledger/credits/lvldb"
	"github.com/creditledger/credits/metrics"
)

func fatal(args ...any) {
	fmt.Fprint(os.Stderr, "Fatal: ")
	fmt.Fprintln(os.Stderr, args...)
	os.Exit(1)
}

func defaultDataDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".creditsd")
	}
	return ""
}

func initLogger(ctx *cli.Context) {
	var level slog.Level
	switch verbosity := ctx.GlobalInt(verbosityFlag.Name); {
	case verbosity <= 1:
		level = log.LevelError
	case verbosity == 2:
		level = log.LevelWarn
	case verbosity == 3:
		level = log.LevelInfo
	case verbosity == 4:
		level = log.LevelDebug
	default:
		level = log.LevelTrace
	}
	useColor := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	log.SetRootHandler(log.NewTerminalHandler(os.Stderr, level, useColor))
}

func openDB(ctx *cli.Context) (*lvldb.LevelDB, error) {
	dir := ctx.GlobalString(dataDirFlag.Name)
	if dir == "" {
		return nil, fmt.Errorf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name)
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	return lvldb.New(filepath.Join(dir, "ledger.db"), lvldb.Options{
		CacheSize:              128,
		OpenFilesCacheCapacity: 512,
	})
}

func startMetricsServer(ctx *cli.Context) {
	addr := ctx.GlobalString(metricsAddrFlag.Name)
	if addr == "" {
		return
	}
	metrics.InitializePrometheusMetrics()
	go func() {
		if err := http.ListenAndServe(addr, metrics.HTTPHandler()); err != nil {
			fatal("metrics server:", err)
		}
	}()
}
