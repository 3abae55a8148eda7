package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/handspin/internal/analysis"
	"github.com/san-kum/handspin/internal/config"
	"github.com/san-kum/handspin/internal/geom"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		steps      int
		components int
		sweep      int
		graph      bool
	)
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "measure the traced curve",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pf.resolve(cmd.Flags())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if sweep > 0 {
				printSweep(w, analysis.SweepCorners(p, sweep, sweep, steps))
				return nil
			}
			analyze(w, p, steps, components, graph)
			return nil
		},
	}
	cmd.Flags().IntVar(&steps, "steps", 1024, "trace samples")
	cmd.Flags().IntVar(&components, "components", 5, "spectrum components to show")
	cmd.Flags().IntVar(&sweep, "sweep", 0, "tabulate every corner pair up to this count instead")
	cmd.Flags().BoolVar(&graph, "graph", true, "plot the x and y coordinates")
	return cmd
}

func analyze(w io.Writer, p config.Params, steps, components int, graph bool) {
	d := geom.Resolve(p)
	curve := geom.TraceFor(d, steps)
	s := analysis.Summarize(curve)

	fmt.Fprintf(w, "config: %s\n", config.Encode(p))
	fmt.Fprintf(w, "speedups: A %g, B %g\n", d.SpeedupA, d.SpeedupB)
	if n := analysis.SymmetryOrder(d); n > 0 {
		fmt.Fprintf(w, "symmetry: %d-fold\n", n)
	} else {
		fmt.Fprintln(w, "symmetry: none")
	}
	fmt.Fprintf(w, "closed: %v (gap %.6f)\n", analysis.IsClosed(d), s.ClosureGap)

	fmt.Fprintln(w, "\ncurve:")
	fmt.Fprintf(w, "  samples: %d\n", s.Samples)
	fmt.Fprintf(w, "  length: %.6f\n", s.Length)
	fmt.Fprintf(w, "  radius: min %.6f, max %.6f, mean %.6f, stddev %.6f\n",
		s.MinRadius, s.MaxRadius, s.MeanRadius, s.RadiusStdDev)
	fmt.Fprintf(w, "  centroid: (%.6f, %.6f)\n", s.Centroid.X, s.Centroid.Y)

	comps := analysis.Spectrum(curve)
	if components < len(comps) {
		comps = comps[:components]
	}
	fmt.Fprintln(w, "\nspectrum:")
	for _, c := range comps {
		fmt.Fprintf(w, "  %+4d turns/round  amplitude %.6f\n", c.Frequency, c.Amplitude)
	}

	if graph && len(curve) > 1 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, asciigraph.PlotMany([][]float64{curve.Xs(), curve.Ys()},
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red),
			asciigraph.Caption("x (blue) and y (red) over one round"),
		))
	}
}

func printSweep(w io.Writer, points []analysis.SweepPoint) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CA\tCB\tSYMMETRY\tCLOSED\tLENGTH\tMIN R\tMAX R")
	for _, pt := range points {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%v\t%.4f\t%.4f\t%.4f\n",
			pt.CornersA, pt.CornersB, pt.Symmetry, pt.Closed,
			pt.Summary.Length, pt.Summary.MinRadius, pt.Summary.MaxRadius)
	}
	tw.Flush()
}
