package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/a1s/gridview/internal/aws"
	"github.com/a1s/gridview/internal/config"
	"github.com/a1s/gridview/internal/config/data"
	"github.com/a1s/gridview/internal/dao"
	"github.com/a1s/gridview/internal/view"
)

const (
	appName    = "gridview"
	appVersion = "0.1.0"
)

var (
	gvFlags *data.Flags
	rootCmd = &cobra.Command{
		Use:   appName + " [source]",
		Short: "A terminal data grid with sorting, selection and persistent filters",
		Long: `gridview loads rows from a JSON, YAML or CSV file or an s3://bucket/key
object and browses them in a k9s style grid.`,
		Args: cobra.MaximumNArgs(1),
		RunE: run,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", appName, appVersion)
		},
	}
)

func init() {
	gvFlags = config.NewFlags()
	initGridviewFlags()
	rootCmd.AddCommand(versionCmd, renderCmd, filtersCmd)
}

func initGridviewFlags() {
	pf := rootCmd.PersistentFlags()
	pf.Float32VarP(gvFlags.RefreshRate, "refresh", "r", config.DefaultRefreshRate, "Refresh rate in seconds")
	pf.StringVarP(gvFlags.LogLevel, "logLevel", "l", config.DefaultLogLevel, "Log level (debug, info, warn, error)")
	pf.StringVar(gvFlags.LogFile, "logFile", "", "Log file path")
	pf.StringVarP(gvFlags.IdentityField, "id", "i", config.DefaultIdentityField, "Row field holding the row key")
	pf.BoolVar(gvFlags.SingleSelect, "single", false, "Allow a single marked row")
	pf.BoolVar(gvFlags.PersistFilters, "persist", true, "Persist filters to the store")
	pf.StringVar(gvFlags.StorageKey, "storageKey", "", "Store key for the filter list")
	pf.StringVar(gvFlags.StoreBackend, "store", config.DefaultStoreBackend, "Filter store (memory, file, sqlite, redis, s3)")
	pf.StringVar(gvFlags.StorePath, "storePath", "", "Filter store file or database path")

	// AWS-specific flags
	pf.StringVar(gvFlags.Profile, "profile", "", "AWS profile to use")
	pf.StringVar(gvFlags.Region, "region", "", "AWS region to use")
	pf.StringVar(gvFlags.Endpoint, "endpoint", "", "S3 endpoint override")

	rootCmd.Flags().BoolVar(gvFlags.Headless, "headless", false, "Print the grid instead of starting the UI")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

// changedFlags keeps the flags given on the command line; the others are nil
// so the config file and environment are not overridden by flag defaults.
func changedFlags(cmd *cobra.Command, args []string) *data.Flags {
	out := &data.Flags{}
	fs := cmd.Flags()
	for name, bind := range map[string]func(){
		"refresh":    func() { out.RefreshRate = gvFlags.RefreshRate },
		"logLevel":   func() { out.LogLevel = gvFlags.LogLevel },
		"logFile":    func() { out.LogFile = gvFlags.LogFile },
		"id":         func() { out.IdentityField = gvFlags.IdentityField },
		"single":     func() { out.SingleSelect = gvFlags.SingleSelect },
		"persist":    func() { out.PersistFilters = gvFlags.PersistFilters },
		"storageKey": func() { out.StorageKey = gvFlags.StorageKey },
		"store":      func() { out.StoreBackend = gvFlags.StoreBackend },
		"storePath":  func() { out.StorePath = gvFlags.StorePath },
		"profile":    func() { out.Profile = gvFlags.Profile },
		"region":     func() { out.Region = gvFlags.Region },
		"endpoint":   func() { out.Endpoint = gvFlags.Endpoint },
		"headless":   func() { out.Headless = gvFlags.Headless },
	} {
		if fs.Lookup(name) != nil && fs.Changed(name) {
			bind()
		}
	}
	if len(args) > 0 {
		out.Source = &args[0]
	}

	return out
}

// session holds what every command needs: the refined config, the logger,
// the AWS factory and the filter store.
type session struct {
	cfg     *config.Config
	log     *slog.Logger
	factory *dao.AWSFactory
	store   dao.Store
	closeFn func()
}

func newSession(cmd *cobra.Command, args []string) (*session, error) {
	if err := config.InitLocs(); err != nil {
		return nil, fmt.Errorf("failed to initialize locations: %w", err)
	}
	if err := config.InitLogLoc(); err != nil {
		return nil, fmt.Errorf("failed to initialize log location: %w", err)
	}

	flags := changedFlags(cmd, args)
	logger, closeLog, err := newLogger(flags, cmd.HasParent() || config.IsBoolSet(flags.Headless))
	if err != nil {
		return nil, err
	}

	cfg := config.NewConfig()
	if err := cfg.Load(config.AppConfigFile, false); err != nil {
		closeLog()
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Refine(flags, config.NewEnv()); err != nil {
		closeLog()
		return nil, fmt.Errorf("failed to refine configuration: %w", err)
	}

	factory := dao.NewFactory(func() (aws.Connection, error) {
		cc, err := cfg.Gridview.ClientConfig()
		if err != nil {
			return nil, err
		}
		// Custom endpoints usually have no STS to verify against.
		if cc.Endpoint != "" {
			return aws.NewAPIClient(aws.NewCredentialDiscovery(), cc)
		}
		return aws.InitConnection(aws.NewCredentialDiscovery(), cc)
	}, logger)

	spec, err := cfg.Gridview.StoreSpec()
	if err != nil {
		closeLog()
		return nil, err
	}
	store, err := dao.NewStore(factory, spec)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("failed to open %s store: %w", spec.Backend, err)
	}
	logger.Debug("session ready",
		"source", cfg.Gridview.Source,
		"store", spec.Backend,
		"storageKey", cfg.Gridview.FilterStorageKey(),
	)

	return &session{
		cfg:     cfg,
		log:     logger,
		factory: factory,
		store:   store,
		closeFn: func() {
			if err := dao.CloseStore(store); err != nil {
				logger.Warn("store close failed", "error", err)
			}
			closeLog()
		},
	}, nil
}

func (s *session) Close() {
	s.closeFn()
}

func run(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, args)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()
	if s.cfg.Gridview.UI.Headless {
		return renderGrid(ctx, s, os.Stdout, nil)
	}

	hk := config.NewHotKeys()
	if err := hk.Load(); err != nil {
		s.log.Warn("hotkeys not loaded", "file", config.AppHotkeysFile, "error", err)
	}

	app := view.NewApp(s.cfg, appVersion, s.log)
	app.SetFactory(s.factory)
	app.SetStore(s.store)
	app.SetHotKeys(hk)
	if err := app.Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run()
}
