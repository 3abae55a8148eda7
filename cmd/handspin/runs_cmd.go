package main

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/handspin/internal/automation"
	"github.com/san-kum/handspin/internal/metrics"
	"github.com/san-kum/handspin/internal/session"
	"github.com/san-kum/handspin/internal/storage"
)

func newRecordCmd() *cobra.Command {
	var (
		duration    float64
		fps         int
		name        string
		startRounds float64
	)
	cmd := &cobra.Command{
		Use:   "record",
		Short: "record the corners over time and save the run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pf.resolve(cmd.Flags())
			if err != nil {
				return err
			}
			st, err := openStore()
			if err != nil {
				return err
			}

			sess := session.New(p)
			defer sess.Close()
			if err := sess.Clock().Set(startRounds); err != nil {
				return err
			}
			for _, m := range metrics.Default() {
				sess.AddMetric(m)
			}

			cfg := session.RecordConfig{
				Duration: time.Duration(duration * float64(time.Second)),
				FPS:      fps,
			}
			start := time.Now()
			rec, err := sess.Record(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			runID, err := st.Save(name, rec)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "recorded in %v\n", time.Since(start))
			fmt.Fprintf(w, "run id: %s\n", runID)
			fmt.Fprintf(w, "frames: %d\n", len(rec.Samples))
			printMetrics(w, rec.Metrics)
			return nil
		},
	}
	cmd.Flags().Float64Var(&duration, "duration", 30, "recorded time in seconds")
	cmd.Flags().IntVar(&fps, "fps", 30, "frames per second")
	cmd.Flags().StringVar(&name, "name", "run", "run name")
	cmd.Flags().Float64Var(&startRounds, "start-rounds", 0, "rounds at the first frame")
	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			runs, err := st.List()
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no runs")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tDURATION\tFPS\tFRAMES\tCONFIG\tTIME")
			for _, r := range runs {
				fmt.Fprintf(w, "%s\t%s\t%.1fs\t%d\t%d\t%s\t%s\n",
					r.ID, r.Name, r.Duration, r.FPS, r.Frames, r.Config,
					r.Timestamp.Format("2006-01-02 15:04:05"))
			}
			return w.Flush()
		},
	}
}

func newPlotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the primary corner of a run, the latest by default",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, runID, err := resolveRun(args)
			if err != nil {
				return err
			}
			meta, err := st.Load(runID)
			if err != nil {
				return err
			}
			samples, err := st.LoadSamples(runID)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "run: %s\n", meta.ID)
			fmt.Fprintf(w, "config: %s\n", meta.Config)
			fmt.Fprintf(w, "samples: %d\n\n", len(samples))

			rec := session.Recording{Samples: samples}
			path := rec.PrimaryPath()
			if len(path) < 2 {
				fmt.Fprintln(w, "nothing to plot")
				return nil
			}
			for _, axis := range []struct {
				caption string
				data    []float64
			}{
				{"primary corner x", path.Xs()},
				{"primary corner y", path.Ys()},
			} {
				fmt.Fprintln(w, asciigraph.Plot(axis.data,
					asciigraph.Height(10),
					asciigraph.Width(80),
					asciigraph.Caption(axis.caption),
				))
				fmt.Fprintln(w)
			}
			printMetrics(w, meta.Metrics)
			return nil
		},
	}
}

func newExportCSVCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export the samples of a run as csv",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, runID, err := resolveRun(args)
			if err != nil {
				return err
			}
			return withOutput(cmd, out, func(w io.Writer) error {
				return st.ExportCSV(w, runID)
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "-", "output file, - for stdout")
	return cmd
}

func newExportJSONCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run as one json document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, runID, err := resolveRun(args)
			if err != nil {
				return err
			}
			return withOutput(cmd, out, func(w io.Writer) error {
				return st.ExportJSON(w, runID)
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "-", "output file, - for stdout")
	return cmd
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [run_id]",
		Short: "delete a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			if err := st.Delete(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}

func newTourCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tour [scenario.yaml]",
		Short: "record every step of a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := automation.LoadScenario(args[0])
			if err != nil {
				return err
			}
			st, err := openStore()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "scenario: %s\n", scenario.Name)
			if scenario.Description != "" {
				fmt.Fprintf(w, "%s\n", scenario.Description)
			}
			results, err := automation.RunScenario(cmd.Context(), scenario, st)
			for _, r := range results {
				fmt.Fprintf(w, "\nstep %d: %s\n", r.Step, r.Config)
				fmt.Fprintf(w, "frames: %d\n", r.Frames)
				if r.RunID != "" {
					fmt.Fprintf(w, "run id: %s\n", r.RunID)
				}
				printMetrics(w, r.Metrics)
			}
			return err
		},
	}
}

func newSweepCmd() *cobra.Command {
	var (
		code     string
		lo, hi   float64
		steps    int
		duration float64
		fps      int
	)
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "record one run per value of a numeric parameter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pf.resolve(cmd.Flags())
			if err != nil {
				return err
			}
			results, err := automation.RunSweep(cmd.Context(), &automation.ParameterSweep{
				Base:     p,
				Code:     code,
				Min:      lo,
				Max:      hi,
				NumSteps: steps,
				Record: session.RecordConfig{
					Duration: time.Duration(duration * float64(time.Second)),
					FPS:      fps,
				},
			})
			if err != nil {
				return err
			}

			var names []string
			if len(results) > 0 {
				names = sortedKeys(results[0].Metrics)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprint(w, code)
			for _, n := range names {
				fmt.Fprintf(w, "\t%s", n)
			}
			fmt.Fprintln(w, "\tCONFIG")
			for _, r := range results {
				fmt.Fprintf(w, "%g", r.Value)
				for _, n := range names {
					fmt.Fprintf(w, "\t%.4f", r.Metrics[n])
				}
				fmt.Fprintf(w, "\t%s\n", r.Config)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&code, "code", "pA", "numeric field code (cA, cB, pA, bS, sA, sB)")
	cmd.Flags().Float64Var(&lo, "min", 10, "first value")
	cmd.Flags().Float64Var(&hi, "max", 90, "last value")
	cmd.Flags().IntVar(&steps, "steps", 5, "number of values")
	cmd.Flags().Float64Var(&duration, "duration", 10, "recorded time per value in seconds")
	cmd.Flags().IntVar(&fps, "fps", 30, "frames per second")
	return cmd
}

// resolveRun opens the store and picks the named run, or the latest one.
func resolveRun(args []string) (*storage.Store, string, error) {
	st, err := openStore()
	if err != nil {
		return nil, "", err
	}
	if len(args) == 1 {
		return st, args[0], nil
	}
	runID, err := st.Latest()
	if err != nil {
		return nil, "", err
	}
	return st, runID, nil
}

func printMetrics(w io.Writer, m map[string]float64) {
	if len(m) == 0 {
		return
	}
	fmt.Fprintln(w, "metrics:")
	for _, name := range sortedKeys(m) {
		fmt.Fprintf(w, "  %s: %.6f\n", name, m[name])
	}
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
