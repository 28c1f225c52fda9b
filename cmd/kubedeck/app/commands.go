// Package app wires the kubedeck command line.
package app

import (
	"fmt"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/odvcencio/kubedeck/internal/config"
	"github.com/odvcencio/kubedeck/internal/kube"
	"github.com/odvcencio/kubedeck/internal/logging"
	"github.com/odvcencio/kubedeck/internal/view"
)

var rootCmd = &cobra.Command{
	Use:   "kubedeck",
	Short: "Terminal dashboard for Kubernetes clusters",
	Long: `kubedeck shows cluster nodes, workloads, pods, and secrets in the
terminal, refreshed on a single shared timer. Polling pauses while the
terminal is unfocused and resumes when focus returns.`,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	RunE:              runDashboard,
}

var setupOnce sync.Once

// NewRootCmd builds the kubedeck command tree.
func NewRootCmd() *cobra.Command {
	setupOnce.Do(setupRootCmd)
	return rootCmd
}

func setupRootCmd() {
	flags := rootCmd.Flags()
	flags.String("config", "", "Path to a YAML config file")
	flags.Duration("interval", config.DefaultInterval, "Automatic refresh interval")
	flags.String("namespace", "", "Namespace filter (empty for all)")
	flags.String("kubeconfig", "", "Path to the kubeconfig file")
	flags.String("log-file", "", "Write structured logs to this file")
	flags.Bool("debug", false, "Enable debug logging")

	for _, name := range []string{"interval", "namespace", "kubeconfig", "log-file", "debug"} {
		if err := viper.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", name, err))
		}
	}
	viper.SetEnvPrefix("KUBEDECK")
	viper.AutomaticEnv()

	rootCmd.AddCommand(versionCmd)
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogFile, cfg.Debug)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	client, err := kube.NewClient(cfg.Kubeconfig)
	if err != nil {
		return fmt.Errorf("connect to cluster: %w", err)
	}

	dash := view.NewApp(client, view.Options{
		Interval:  cfg.Interval.Std(),
		Namespace: cfg.Namespace,
		Logger:    logger,
	})
	return dash.Run()
}

// loadConfig reads the optional config file and layers flag and
// environment overrides on top.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	var opts []config.Option
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		opts = append(opts, config.WithPath(path))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		return config.Config{}, err
	}

	// viper returns the flag or KUBEDECK_INTERVAL value; only the
	// untouched default leaves a config-file interval in place.
	if v := viper.GetDuration("interval"); cmd.Flags().Changed("interval") || v != config.DefaultInterval {
		cfg.Interval = config.Duration(v)
	}
	if v := viper.GetString("namespace"); v != "" || cmd.Flags().Changed("namespace") {
		cfg.Namespace = v
	}
	if v := viper.GetString("kubeconfig"); v != "" {
		cfg.Kubeconfig = v
	}
	if v := viper.GetString("log-file"); v != "" {
		cfg.LogFile = v
	}
	if viper.GetBool("debug") {
		cfg.Debug = true
	}

	if cfg.Interval.Std() < time.Second {
		return config.Config{}, fmt.Errorf("interval %s is below the 1s minimum", cfg.Interval.Std())
	}
	return cfg, nil
}
