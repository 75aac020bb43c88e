package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kyawyelin284/zeus-core/internal/server"
	"github.com/kyawyelin284/zeus-core/internal/shutdown"
	"github.com/kyawyelin284/zeus-core/internal/snapshot"
	"github.com/kyawyelin284/zeus-core/pkg/scanner"
)

var (
	version = "1.0.0"

	// Global flags
	configFile string
	verbose    bool
	debug      bool

	// Scan flags
	extensions  []string
	incremental bool
	archive     bool

	// Serve flags
	servePort int
	rateLimit float64
	burst     int

	// History flags
	showKey string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "zeus",
		Short: "Zeus - Backend Route Extraction Engine",
		Long: `Zeus scans a backend source tree, extracts HTTP route declarations
across Express, Fastify, and Spring code, pairs each route with its
documentation block, and persists the result as an endpoint snapshot.`,
		Version: version,
	}

	scanCmd := &cobra.Command{
		Use:   "scan [root]",
		Short: "Scan a source tree for route declarations",
		Long:  "Scan a source tree, extract endpoint descriptors, and write the snapshot.",
		Args:  cobra.ExactArgs(1),
		RunE:  runScan,
	}

	serveCmd := &cobra.Command{
		Use:   "serve [root]",
		Short: "Serve the persisted endpoint snapshot over HTTP",
		Args:  cobra.ExactArgs(1),
		RunE:  runServe,
	}

	historyCmd := &cobra.Command{
		Use:   "history [root]",
		Short: "List archived snapshots",
		Long:  "List archived snapshots from the history store, or show one with --show.",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistory,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Debug mode")

	// Scan flags
	scanCmd.Flags().StringArrayVarP(&extensions, "ext", "e", nil, "File extensions to scan (default: .js,.mjs,.ts,.java)")
	scanCmd.Flags().BoolVarP(&incremental, "incremental", "i", false, "Reconcile against the prior snapshot")
	scanCmd.Flags().BoolVar(&archive, "archive", false, "Append the snapshot to the history store")

	// Serve flags
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "Listen port")
	serveCmd.Flags().Float64VarP(&rateLimit, "rate-limit", "r", 0, "Requests per second (0 disables limiting)")
	serveCmd.Flags().IntVar(&burst, "burst", 10, "Rate limiter burst size")

	// History flags
	historyCmd.Flags().StringVar(&showKey, "show", "", "Show the snapshot archived under this key")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func buildConfig(cmd *cobra.Command, root string) (*scanner.Config, error) {
	config := scanner.DefaultConfig()

	if configFile != "" {
		fileConfig, err := scanner.LoadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
		config = fileConfig
	}

	config.Root = root

	// Override with command-line flags if provided
	if cmd.Flags().Changed("ext") {
		config.Extensions = extensions
	}
	if cmd.Flags().Changed("incremental") {
		config.Incremental = incremental
	}
	if cmd.Flags().Changed("archive") {
		config.Archive = archive
	}
	if cmd.Flags().Changed("port") {
		config.Serve.Port = servePort
	}
	if cmd.Flags().Changed("rate-limit") {
		config.Serve.RateLimit = rateLimit
	}
	if cmd.Flags().Changed("burst") {
		config.Serve.Burst = burst
	}
	config.Verbose = verbose
	config.Debug = debug

	return config, nil
}

func runScan(cmd *cobra.Command, args []string) error {
	config, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	s, err := scanner.New(scanner.WithConfig(config))
	if err != nil {
		return fmt.Errorf("failed to create scanner: %w", err)
	}

	h := shutdown.New(30 * time.Second)
	go h.Wait()

	startTime := time.Now()
	result, rep, err := s.ScanAndPersist(h.Context())
	duration := time.Since(startTime)

	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	printSummary(result.RootDir, rep, len(result.Warnings), duration)

	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	config, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	srv := server.New(server.Config{
		Addr:              fmt.Sprintf(":%d", config.Serve.Port),
		RootDir:           config.Root,
		RequestsPerSecond: config.Serve.RateLimit,
		Burst:             config.Serve.Burst,
	}, nil)

	h := shutdown.New(30 * time.Second)
	h.Register("http server", func(ctx context.Context) error {
		return srv.Shutdown(ctx)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.ListenAndServe()
	}()

	go h.Wait()

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-h.Done():
	}

	return nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	root := args[0]

	store, err := snapshot.OpenHistory(snapshot.HistoryPath(root))
	if err != nil {
		return fmt.Errorf("failed to open history store: %w", err)
	}
	defer store.Close()

	if showKey != "" {
		result, err := store.Get(showKey)
		if err != nil {
			return fmt.Errorf("failed to read snapshot: %w", err)
		}
		if result == nil {
			return fmt.Errorf("no snapshot archived under %q", showKey)
		}

		fmt.Printf("Scanned At: %s\n", result.ScannedAt.Format(time.RFC3339))
		fmt.Printf("Root:       %s\n", result.RootDir)
		fmt.Printf("Endpoints:  %d\n", len(result.Endpoints))
		for _, ep := range result.Endpoints {
			fmt.Printf("  [%s] %s\n", ep.Method, ep.Path)
		}
		return nil
	}

	entries, err := store.List()
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("No archived snapshots")
		return nil
	}

	for _, e := range entries {
		fmt.Printf("%s  endpoints=%d warnings=%d\n", e.Key, e.Endpoints, e.Warnings)
	}

	return nil
}

func printSummary(root string, rep *snapshot.Report, warnings int, duration time.Duration) {
	fmt.Println()
	fmt.Println("Scan Summary")
	fmt.Println("------------")
	fmt.Printf("Root:                %s\n", root)
	fmt.Printf("Duration:            %v\n", duration.Round(time.Millisecond))
	fmt.Printf("Endpoints Written:   %d\n", rep.EndpointsWritten)
	if rep.EndpointsUnchanged > 0 {
		fmt.Printf("Endpoints Unchanged: %d\n", rep.EndpointsUnchanged)
	}
	fmt.Printf("Warnings:            %d\n", warnings)
	fmt.Printf("Snapshot:            %s\n", rep.OutputPath)
	fmt.Println()
}
