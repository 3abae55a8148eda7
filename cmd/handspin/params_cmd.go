package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/handspin/internal/config"
	"github.com/san-kum/handspin/internal/geom"
	"github.com/san-kum/handspin/internal/viz"
)

func newEncodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode",
		Short: "print the configuration string of the resolved parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pf.resolve(cmd.Flags())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), config.Encode(p))
			return nil
		},
	}
}

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode [string]",
		Short: "decode a configuration string and print it as yaml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := config.Decode(args[0]).YAML()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tCONFIG")
			for _, name := range config.ListPresets() {
				p, _ := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\n", name, config.Encode(p))
			}
			w.Flush()
		},
	}
}

func newMatchCmd() *cobra.Command {
	var rpm float64
	cmd := &cobra.Command{
		Use:   "match",
		Short: "set the base speed so the fastest hand turns at --rpm",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pf.resolve(cmd.Flags())
			if err != nil {
				return err
			}
			matched, err := geom.MatchRotationSpeed(p, rpm)
			if errors.Is(err, geom.ErrNoRotation) {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
				fmt.Fprintln(cmd.OutOrStdout(), config.Encode(p))
				return nil
			}
			if err != nil {
				return err
			}
			a, b := geom.HandSpeeds(matched)
			fmt.Fprintln(cmd.OutOrStdout(), config.Encode(matched))
			fmt.Fprintf(cmd.ErrOrStderr(), "hand speeds: A %.4g, B %.4g rounds/min\n", a, b)
			return nil
		},
	}
	cmd.Flags().Float64Var(&rpm, "rpm", viz.DefaultMatchRPM, "target rounds per minute of the fastest hand")
	return cmd
}
