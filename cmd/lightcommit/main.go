// Copyright 2025 Certen Protocol
//
// lightcommit verifies a CometBFT commit against a validator set, both
// read from JSON files on disk, and prints the verification outcome.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/certen/lightcommit/pkg/config"
	verifyerrors "github.com/certen/lightcommit/pkg/errors"
	"github.com/certen/lightcommit/pkg/logging"
	"github.com/certen/lightcommit/pkg/signedheader"
	"github.com/certen/lightcommit/pkg/valset"
	"github.com/certen/lightcommit/pkg/verify"
)

func main() {
	validatorsPath := flag.String("validators", "", "path to a /validators JSON response")
	commitPath := flag.String("commit", "", "path to a /commit JSON response")
	configPath := flag.String("config", "", "path to a YAML config file (optional)")
	metricsAddr := flag.String("metrics-addr", "", "address to serve Prometheus metrics on (overrides config)")
	flag.Parse()

	if *validatorsPath == "" || *commitPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -validators and -commit are required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal(err)
	}
	if *metricsAddr != "" {
		cfg.MetricsAddr = *metricsAddr
	}
	if err := cfg.Validate(); err != nil {
		fatal(err)
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		fatal(err)
	}
	logCfg := logging.DefaultConfig()
	logCfg.Level = level
	logCfg.Format = cfg.LogFormat
	logger, err := logging.New(logCfg)
	if err != nil {
		fatal(err)
	}
	logging.SetGlobal(logger)
	logger = logger.WithRequestID(uuid.New().String())

	var metrics *verify.Metrics
	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		metrics = verify.NewMetrics(reg)
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				logger.Error("metrics server exited", "error", err)
			}
		}()
		logger.Info("metrics server listening", "addr", cfg.MetricsAddr)
	}

	validatorsData, err := os.ReadFile(*validatorsPath)
	if err != nil {
		fatal(err)
	}
	commitData, err := os.ReadFile(*commitPath)
	if err != nil {
		fatal(err)
	}

	valResult, err := valset.Import(validatorsData)
	if err != nil {
		fatalVerify(logger, err)
	}

	sh, err := signedheader.Import(commitData)
	if err != nil {
		fatalVerify(logger, err)
	}

	verifier := verify.New(cfg, metrics)
	outcome, err := verifier.Verify(sh, valResult.Set, valResult.CryptoIdx)
	if err != nil {
		fatalVerify(logger, err)
	}

	logger.LogVerification(outcome.OK, outcome.Quorum, outcome.SignedPower.String(), outcome.TotalPower.String(), 0)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(outcome); err != nil {
		fatal(err)
	}

	if !outcome.OK {
		os.Exit(1)
	}
}

func fatalVerify(logger *logging.Logger, err error) {
	if ve, ok := verifyerrors.As(err); ok {
		logger.WithError(ve).Error("verification failed")
	}
	fatal(err)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
