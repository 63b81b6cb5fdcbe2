package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newUnitsCmd(a *app) *cobra.Command {
	var country string

	cmd := &cobra.Command{
		Use:       "units <weight|length> <value>",
		Short:     "Format grams or centimeters in the unit system of a country",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"weight", "length"},
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid value %q", args[1])
			}

			f := a.config.UnitFormatter(country)
			switch args[0] {
			case "weight":
				fmt.Fprintln(cmd.OutOrStdout(), f.FormatWeight(value))
			case "length":
				fmt.Fprintln(cmd.OutOrStdout(), f.FormatLength(value))
			default:
				return fmt.Errorf("unknown measurement %q (want weight or length)", args[0])
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&country, "country", "", "ISO 3166 country code (default from settings)")
	return cmd
}
