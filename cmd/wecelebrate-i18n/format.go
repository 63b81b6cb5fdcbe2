package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	i18n "github.com/wecelebrate/go-i18n"
)

func newFormatCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "format",
		Short: "Format a value the way the storefront renders it",
	}
	cmd.AddCommand(
		newFormatCurrencyCmd(a),
		newFormatNumberCmd(a),
		newFormatDateCmd(a),
		newFormatPhoneCmd(a),
	)
	return cmd
}

func newFormatCurrencyCmd(a *app) *cobra.Command {
	var showCode, compact bool
	var display string

	cmd := &cobra.Command{
		Use:   "currency <amount> <code>",
		Short: "Format an amount in a currency",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := i18n.ParseCurrencyAmount(args[0])
			if err != nil {
				return err
			}

			var opts []i18n.FormatOption
			if showCode {
				opts = append(opts, i18n.WithCode())
			}
			if compact {
				opts = append(opts, i18n.WithCompact())
			}
			if display != "" {
				d := i18n.CurrencyDisplay(display)
				if !d.Valid() {
					return fmt.Errorf("unknown display %q (want symbol, code or name)", display)
				}
				opts = append(opts, i18n.WithDisplay(d))
			}

			fmt.Fprintln(cmd.OutOrStdout(), a.config.CurrencyFormatter().Format(amount, args[1], opts...))
			return nil
		},
	}
	cmd.Flags().BoolVar(&showCode, "show-code", false, "append the ISO code")
	cmd.Flags().BoolVar(&compact, "compact", false, "abbreviate large amounts")
	cmd.Flags().StringVar(&display, "display", "", "label style: symbol, code or name")
	return cmd
}

func newFormatNumberCmd(a *app) *cobra.Command {
	var locale, style string
	var decimals int

	cmd := &cobra.Command{
		Use:   "number <value>",
		Short: "Format a number for a locale",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid number %q", args[0])
			}

			f := a.config.NumberFormatter(locale)
			var out string
			switch style {
			case "number":
				out = f.FormatNumber(value)
			case "integer":
				out = f.FormatInteger(value)
			case "decimal":
				out = f.FormatDecimal(value, decimals)
			case "percent":
				out = f.FormatPercent(value)
			case "compact":
				out = f.FormatCompact(value)
			default:
				return fmt.Errorf("unknown style %q", style)
			}

			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&locale, "locale", "l", "", "BCP 47 locale (default from settings)")
	cmd.Flags().StringVarP(&style, "style", "s", "number", "number, integer, decimal, percent or compact")
	cmd.Flags().IntVar(&decimals, "decimals", 2, "fraction digits for the decimal style")
	return cmd
}

func newFormatDateCmd(a *app) *cobra.Command {
	var locale, timezone, order string

	cmd := &cobra.Command{
		Use:   "date <rfc3339>",
		Short: "Format a timestamp for a locale",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := time.Parse(time.RFC3339, args[0])
			if err != nil {
				return err
			}

			partial := &i18n.PartialI18nConfig{}
			if timezone != "" {
				partial.Timezone = &timezone
			}
			if order != "" {
				format := i18n.DateFormat(order)
				partial.DateFormat = &format
			}

			f := a.config.DateFormatter(locale, a.config.ResolveI18n(partial))
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, f.FormatDateTime(t))
			fmt.Fprintln(out, f.FormatNumericDate(t))
			return nil
		},
	}
	cmd.Flags().StringVarP(&locale, "locale", "l", "", "BCP 47 locale (default from settings)")
	cmd.Flags().StringVar(&timezone, "timezone", "", "IANA timezone")
	cmd.Flags().StringVar(&order, "order", "", "numeric date order: MDY, DMY or YMD")
	return cmd
}

func newFormatPhoneCmd(a *app) *cobra.Command {
	var country string
	var international bool

	cmd := &cobra.Command{
		Use:   "phone <number>",
		Short: "Format a phone number for a country",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if country == "" {
				country = a.config.DefaultCountry
			}
			if international {
				fmt.Fprintln(cmd.OutOrStdout(), i18n.FormatInternationalPhoneNumber(args[0], country))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.FormatPhoneNumber(args[0], country))
			return nil
		},
	}
	cmd.Flags().StringVar(&country, "country", "", "ISO 3166 country code (default from settings)")
	cmd.Flags().BoolVar(&international, "international", false, "include the country calling code")
	return cmd
}
