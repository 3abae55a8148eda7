package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/san-kum/handspin/internal/analysis"
	"github.com/san-kum/handspin/internal/config"
	"github.com/san-kum/handspin/internal/geom"
	"github.com/san-kum/handspin/internal/render"
	"github.com/san-kum/handspin/internal/session"
)

func newFrameCmd() *cobra.Command {
	var (
		rounds float64
		format string
		out    string
		size   int
	)
	cmd := &cobra.Command{
		Use:   "frame",
		Short: "render a single frame as svg or png",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pf.resolve(cmd.Flags())
			if err != nil {
				return err
			}
			sess := session.New(p)
			defer sess.Close()

			scene := render.Build(sess.FrameAt(rounds), sess.Trace())
			return writeScene(cmd, scene, format, out, size)
		},
	}
	cmd.Flags().Float64Var(&rounds, "rounds", 0, "rounds completed by the base rotation")
	cmd.Flags().StringVar(&format, "format", "svg", "output format (svg, png)")
	cmd.Flags().StringVarP(&out, "out", "o", "-", "output file, - for stdout")
	cmd.Flags().IntVar(&size, "size", 600, "image size in pixels")
	return cmd
}

func newTraceCmd() *cobra.Command {
	var (
		steps  int
		format string
		out    string
		size   int
	)
	cmd := &cobra.Command{
		Use:   "trace",
		Short: "sample the curve traced by the primary corner",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pf.resolve(cmd.Flags())
			if err != nil {
				return err
			}
			d := geom.Resolve(p)
			curve := geom.TraceFor(d, steps)

			switch format {
			case "csv":
				return withOutput(cmd, out, func(w io.Writer) error {
					return writeCurveCSV(w, curve)
				})
			case "ascii":
				fmt.Fprintln(cmd.OutOrStdout(), analysis.CurveToASCII(curve, 72, 36))
				return nil
			default:
				p.Flags = config.Flags{Trace: true}
				sess := session.New(p)
				defer sess.Close()
				return writeScene(cmd, render.Build(sess.Frame(), curve), format, out, size)
			}
		},
	}
	cmd.Flags().IntVar(&steps, "steps", geom.DefaultTraceSteps, "number of samples")
	cmd.Flags().StringVar(&format, "format", "csv", "output format (csv, ascii, svg, png)")
	cmd.Flags().StringVarP(&out, "out", "o", "-", "output file, - for stdout")
	cmd.Flags().IntVar(&size, "size", 600, "image size in pixels")
	return cmd
}

func writeScene(cmd *cobra.Command, scene render.Scene, format, out string, size int) error {
	switch format {
	case "svg":
		return withOutput(cmd, out, func(w io.Writer) error {
			return render.WriteSVG(w, scene, size)
		})
	case "png":
		return withOutput(cmd, out, func(w io.Writer) error {
			return render.WritePNG(w, scene, size)
		})
	}
	return fmt.Errorf("unknown format: %s", format)
}

func writeCurveCSV(w io.Writer, c geom.Curve) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"step", "x", "y"}); err != nil {
		return err
	}
	for i, pt := range c {
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(pt.X, 'f', 6, 64),
			strconv.FormatFloat(pt.Y, 'f', 6, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// withOutput runs fn against stdout for "-" and against a new file otherwise.
func withOutput(cmd *cobra.Command, out string, fn func(io.Writer) error) error {
	if out == "" || out == "-" {
		return fn(cmd.OutOrStdout())
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", out)
	return nil
}
