package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/san-kum/handspin/internal/logging"
	"github.com/san-kum/handspin/internal/session"
	"github.com/san-kum/handspin/internal/storage"
	"github.com/san-kum/handspin/internal/viz"
)

var (
	dataDir  string
	logLevel string
	pf       paramFlags

	theme       string
	snapshotDir string
	matchRPM    float64
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "handspin",
		Short: "rotating hands and the curves they trace",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logging.Configure(os.Stderr, logLevel)
		},
		RunE: runLive,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".handspin", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "off", "log level (debug, info, warn, error, off)")
	pf.register(rootCmd.PersistentFlags())

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive terminal view",
		RunE:  runLive,
	}
	for _, c := range []*cobra.Command{rootCmd, liveCmd} {
		c.Flags().StringVar(&theme, "theme", "classic", "color theme")
		c.Flags().StringVar(&snapshotDir, "snapshots", ".", "directory for PNG snapshots")
		c.Flags().Float64Var(&matchRPM, "rpm", viz.DefaultMatchRPM, "target rounds per minute for the match key")
	}

	rootCmd.AddCommand(
		liveCmd,
		newEncodeCmd(),
		newDecodeCmd(),
		newPresetsCmd(),
		newMatchCmd(),
		newFrameCmd(),
		newTraceCmd(),
		newAnalyzeCmd(),
		newRecordCmd(),
		newListCmd(),
		newPlotCmd(),
		newExportCSVCmd(),
		newExportJSONCmd(),
		newDeleteCmd(),
		newTourCmd(),
		newSweepCmd(),
	)
	return rootCmd
}

func runLive(cmd *cobra.Command, args []string) error {
	p, err := pf.resolve(cmd.Flags())
	if err != nil {
		return err
	}

	sess := session.New(p)
	defer sess.Close()

	return viz.Run(sess,
		viz.WithTheme(theme),
		viz.WithSnapshotDir(snapshotDir),
		viz.WithMatchRPM(matchRPM),
	)
}

func openStore() (*storage.Store, error) {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return nil, fmt.Errorf("failed to open data directory: %w", err)
	}
	return st, nil
}
