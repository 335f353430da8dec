// Copyright 2025 The ninekey Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main runs the ninekey predictive text engine, either as a MessagePack IPC server or as an
interactive CLI.

ninekey keeps a weighted vocabulary in a prefix trie and answers the queries a 9-key phone keypad needs:
the best letters so far for the digits typed, corrections for a mistyped key sequence, prefix listings and
wildcard matches. Words can be added, removed and re-weighted while it runs; nothing is written back to
the dictionary.

# Usage

Start the server on stdin/stdout with the dictionary from the config:

	ninekey

Use another dictionary, debug logs and a metrics endpoint:

	ninekey -dict /path/to/words.txt -d -metrics :9109

Run the CLI:

	ninekey -c -limit 10

A dictionary is a text file of "<word> <count>" lines, a binary file (.bin) or a directory of dict_NNNN.txt
and dict_NNNN.bin files loaded in id order.

# Configuration

ninekey.toml lives in the user config dir and is created with defaults when missing:

	[server]
	max_results = 64
	max_query_len = 60
	cache_size = 4096
	reload_every = 100

	[dict]
	path = "dict.txt"
	encoding = "utf-8"
	skip_duplicates = true

	[cli]
	default_limit = 24
	show_counts = true

The server re-reads the file every reload_every requests; the dictionary itself is only read at start.

# Command Line Flags

	-dict string
	    Dictionary file or data directory (default from config)
	-config string
	    Config file (default [config dir]/ninekey/ninekey.toml)
	-d  Enable debug mode with detailed logging
	-c  Run the CLI instead of the server
	-limit int
	    Results shown per listing in the CLI (default from config)
	-metrics string
	    Address serving Prometheus metrics on /metrics, off when empty
	-version
	    Show current version
*/
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/ninekey/internal/cli"
	"github.com/bastiangx/ninekey/internal/utils"
	"github.com/bastiangx/ninekey/pkg/config"
	"github.com/bastiangx/ninekey/pkg/dictionary"
	"github.com/bastiangx/ninekey/pkg/server"
	"github.com/bastiangx/ninekey/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	Version = "0.3.0"
	AppName = "ninekey"
	gh      = "https://github.com/bastiangx/ninekey"
)

// sigHandler tears the engine down on interrupt and exits.
func sigHandler(engine *suggest.Engine) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		released := engine.Close()
		log.Debugf("Released %d nodes", released)
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main only wires packages together; the server and the CLI own their loops.
func main() {
	showVersion := flag.Bool("version", false, "Show current version")
	dictPath := flag.String("dict", "", "Dictionary file or data directory (default from config)")
	configFile := flag.String("config", "", "Config file (default [config dir]/ninekey/ninekey.toml)")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for trying edits and queries by hand")
	limit := flag.Int("limit", 0, "Results shown per listing in the CLI (default from config)")
	metricsAddr := flag.String("metrics", "", "Serve Prometheus metrics on this address, e.g. :9109")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	appConfig, configPath, err := config.LoadConfigWithPriority(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(configPath))

	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}
	if *debugMode {
		for k, v := range pathResolver.GetRuntimeInfo() {
			log.Debug("runtime", k, v)
		}
	}

	if *dictPath == "" {
		*dictPath = appConfig.Dict.Path
	}
	resolvedDict := pathResolver.GetDictPath(*dictPath)
	log.Debugf("Using dictionary at: %s", resolvedDict)

	engine := suggest.NewEngine(appConfig.Server.CacheSize)
	sigHandler(engine)

	loader := dictionary.NewLoader(appConfig.Dict.Encoding, appConfig.Dict.SkipDuplicates)
	stats, err := loader.Load(resolvedDict, engine)
	if err != nil {
		log.Warnf("Failed to load dictionary: %v. Running with an empty lexicon...", err)
	} else {
		log.Debug("Dictionary loaded",
			"files", stats.Files,
			"words", stats.Loaded,
			"malformed", stats.Malformed,
			"duplicates", stats.Duplicates)
	}

	if *metricsAddr != "" {
		go serveMetrics(*metricsAddr)
	}

	if *cliMode {
		log.SetReportTimestamp(false)
		inputHandler := cli.NewInputHandler(engine, appConfig, configPath, *limit)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		engine.Close()
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(engine, appConfig, configPath)
	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
	engine.Close()
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	log.Debugf("Serving metrics on %s/metrics", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Errorf("Metrics endpoint stopped: %v", err)
	}
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ ninekey ] predictive text for 9-key keypads")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}
