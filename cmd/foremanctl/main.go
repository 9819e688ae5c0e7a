// Package main is the entry point for foremanctl
// foremanctl applies a desired-state file for one Foreman LDAP auth source
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Mamut3D/foremanctl/internal/common/config"
	"github.com/Mamut3D/foremanctl/internal/common/logger"
	"github.com/Mamut3D/foremanctl/internal/foreman"
	"github.com/Mamut3D/foremanctl/internal/ldapsource"
)

var (
	Version    = "dev"
	BuildTime  = "unknown"
	CommitHash = "unknown"
)

func main() {
	specPath := flag.String("spec", "", "path to the desired-state YAML file")
	configPath := flag.String("config", "", "path to the config file (default: search standard locations)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("foremanctl %s (built %s, commit %s)\n", Version, BuildTime, CommitHash)
		return
	}

	log := logger.New()
	defer log.Sync()

	if *specPath == "" {
		log.Fatal("missing required -spec flag")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}

	spec, err := ldapsource.LoadSpec(*specPath)
	if err != nil {
		log.Fatal("invalid desired-state file", zap.String("path", *specPath), zap.Error(err))
	}

	client := foreman.NewClient(foreman.Config{
		BaseURL:       cfg.BaseURL(),
		Username:      cfg.ForemanUser,
		Password:      cfg.ForemanPass,
		Timeout:       time.Duration(cfg.RequestTimeout) * time.Second,
		SkipTLSVerify: !cfg.SSLVerify,
	}, log)

	reconciler := ldapsource.NewReconciler(client, log)

	result, err := reconciler.Reconcile(context.Background(), spec)
	if err != nil {
		log.Fatal("reconciliation failed", zap.String("name", spec.Name), zap.Error(err))
	}

	out, err := json.Marshal(result)
	if err != nil {
		log.Fatal("failed to encode result", zap.Error(err))
	}
	fmt.Fprintln(os.Stdout, string(out))
}
