package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fpt/scopefs/internal/config"
	"github.com/fpt/scopefs/internal/infra"
	"github.com/fpt/scopefs/internal/roots"
	"github.com/fpt/scopefs/internal/server"
	pkgLogger "github.com/fpt/scopefs/pkg/logger"
)

const version = "0.2.0"

func printUsage() {
	fmt.Fprintln(os.Stderr, "scopefs - MCP filesystem server confined to allowed directories")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  scopefs [flags] [allowed-directory ...]")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Allowed directories come from the command line and the settings file.")
	fmt.Fprintln(os.Stderr, "Clients supporting the MCP roots protocol replace them at runtime.")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Examples:")
	fmt.Fprintln(os.Stderr, "  scopefs /home/user/projects              # Serve one directory")
	fmt.Fprintln(os.Stderr, "  scopefs /srv/data /srv/docs              # Serve several directories")
	fmt.Fprintln(os.Stderr, "  scopefs -v /srv/data                     # Enable verbose debug logging")
	fmt.Fprintln(os.Stderr, "  scopefs                                  # Roots supplied by the client")
	fmt.Fprintln(os.Stderr)
}

func main() {
	ctx := context.Background()

	var settingsPath = flag.String("settings", "", "Path to settings file")
	var verbose = flag.Bool("v", false, "Enable verbose logging (debug level)")
	var verboseLong = flag.Bool("verbose", false, "Enable verbose logging (debug level)")
	var showVersion = flag.Bool("version", false, "Print version and exit")
	var help = flag.Bool("h", false, "Show this help message")
	var helpLong = flag.Bool("help", false, "Show this help message")

	flag.Usage = func() {
		printUsage()
		fmt.Fprintln(os.Stderr, "Flags:")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *help || *helpLong {
		flag.Usage()
		return
	}
	if *showVersion {
		fmt.Println("scopefs " + version)
		return
	}

	resolvedVerbose := *verbose || *verboseLong

	resolvedSettingsPath := *settingsPath
	if resolvedSettingsPath == "" {
		if p, err := config.DefaultSettingsPath(); err == nil {
			resolvedSettingsPath = p
		}
	}
	settings, err := config.LoadSettings(resolvedSettingsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load settings: %v\n", err)
		settings = config.GetDefaultSettings()
	}

	logLevel := settings.LogLevel
	if resolvedVerbose {
		logLevel = "debug"
	}
	pkgLogger.SetGlobalLogLevel(pkgLogger.LogLevel(logLevel))
	logger := pkgLogger.NewComponentLogger("main")

	fsRepo := infra.NewOSFilesystemRepository()
	registry := roots.NewRegistry(fsRepo)

	// Startup roots: command-line arguments plus settings file entries.
	candidates := append([]string{}, flag.Args()...)
	candidates = append(candidates, settings.AllowedDirectories...)
	if len(candidates) > 0 {
		if err := registry.Replace(ctx, candidates); err != nil {
			logger.Error("Invalid allowed directories", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Warn("Started without allowed directories; every file operation will be denied until the client provides roots")
	}

	dispatcher := server.New(fsRepo, registry, server.Options{
		Version:         version,
		DefaultExcludes: settings.DefaultExcludePatterns,
	})

	logger.Info("scopefs starting", "version", version, "allowed_directories", registry.List())
	if err := dispatcher.ServeStdio(); err != nil {
		logger.Error("Server terminated", "error", err)
		os.Exit(1)
	}
}
