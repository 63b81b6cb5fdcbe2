package main

import (
	"fmt"

	"github.com/spf13/cobra"

	i18n "github.com/wecelebrate/go-i18n"
)

func newConvertCmd(a *app) *cobra.Command {
	var format bool

	cmd := &cobra.Command{
		Use:   "convert <amount> <from> <to>",
		Short: "Convert an amount between currencies",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := i18n.ParseCurrencyDecimal(args[0])
			if err != nil {
				return err
			}

			converted := a.config.Converter().ConvertDecimal(amount, args[1], args[2])
			if format {
				fmt.Fprintln(cmd.OutOrStdout(), a.config.CurrencyFormatter().Format(converted.InexactFloat64(), args[2]))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), converted.String())
			return nil
		},
	}
	cmd.Flags().BoolVar(&format, "format", false, "print the result formatted in the target currency")
	return cmd
}
