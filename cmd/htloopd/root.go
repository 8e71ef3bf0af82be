/*
MIT License

Copyright (c) 2019 Nicolas JUHEL

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nabbar/htloop/config"
	"github.com/nabbar/htloop/logger"
	"github.com/nabbar/htloop/metrics"
	"github.com/nabbar/htloop/server"
)

var (
	flagConfigFile    string
	flagListen        string
	flagProcesses     int
	flagNoKeepAlive   bool
	flagXHeaders      bool
	flagConnTimeout   time.Duration
	flagMaxBufferSize int
	flagMetricsListen string
	flagVerbose       int
)

// newRootCommand builds the htloopd command: flag wiring follows the
// teacher's cobra.SetFlagConfig / SetFlagVerbose convention (--config and
// --verbose, file-completion hints on --config), registered as local flags
// of the single root command.
func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:     "htloopd",
		Short:   "Non-blocking HTTP/1.x server front-end",
		Long:    "htloopd binds one listen address, parses HTTP/1.x requests off an event-driven connection core, and hands each one to a diagnostic handler.",
		Version: "0.1.0",
		RunE:    runServe,
	}

	flags := root.Flags()
	flags.StringVarP(&flagConfigFile, "config", "c", "", "path to a config file (json, yaml, toml) loaded via Viper; overrides the other flags")
	_ = root.MarkFlagFilename("config", "json", "toml", "yaml", "yml")
	flags.StringVarP(&flagListen, "listen", "l", ":8080", "address to bind when --config is not given")
	flags.IntVar(&flagProcesses, "processes", 1, "number of worker processes to fork (0 or 1: single process)")
	flags.BoolVar(&flagNoKeepAlive, "no-keep-alive", false, "close every connection after one request")
	flags.BoolVar(&flagXHeaders, "xheaders", false, "honor X-Real-Ip/X-Forwarded-For/X-Scheme/X-Forwarded-Proto")
	flags.DurationVar(&flagConnTimeout, "connection-timeout", 60*time.Second, "idle connection timeout; 0 disables reaping")
	flags.IntVar(&flagMaxBufferSize, "max-buffer-size", 1<<20, "bound on request body size (Content-Length) in bytes")
	flags.StringVar(&flagMetricsListen, "metrics-listen", "", "address to serve Prometheus metrics on; empty disables")
	flags.CountVarP(&flagVerbose, "verbose", "v", "increase log verbosity (multi allowed: -v, -vv, -vvv)")

	return root
}

func verboseLevel(v int) logger.Level {
	switch {
	case v >= 3:
		return logger.DebugLevel
	case v == 2:
		return logger.InfoLevel
	case v == 1:
		return logger.WarnLevel
	default:
		return logger.ErrorLevel
	}
}

func loadConfig() (*config.ServerConfig, error) {
	if flagConfigFile != "" {
		cfg, err := config.Load(flagConfigFile)
		if err != nil {
			return nil, err
		}
		return cfg, nil
	}

	return config.New(flagListen,
		config.WithProcesses(flagProcesses),
		config.WithNoKeepAlive(flagNoKeepAlive),
		config.WithXHeaders(flagXHeaders),
		config.WithConnectionTimeout(flagConnTimeout),
		config.WithMaxBufferSize(flagMaxBufferSize),
	), nil
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.New()
	log.SetLevel(verboseLevel(flagVerbose))

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.SetRequestCallback(diagnosticHandler(log))

	if e := cfg.Validate(); e != nil {
		return e
	}

	namespace := cfg.Name
	if namespace == "" {
		namespace = "htloopd"
	}
	met := metrics.New(namespace)

	srv := server.New(cfg, met, log)

	if e := srv.PortInUse(); e != nil {
		return fmt.Errorf("htloopd: %s is already bound: %w", cfg.Listen, e)
	}

	if err := srv.Start(); err != nil {
		return err
	}
	log.Info("htloopd listening on %s", nil, cfg.Listen)

	if flagMetricsListen != "" {
		go serveMetrics(flagMetricsListen, met, log)
	}

	srv.WaitNotify()
	log.Info("htloopd stopped", nil)

	return nil
}
