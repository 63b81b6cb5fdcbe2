package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	i18n "github.com/wecelebrate/go-i18n"
	"github.com/wecelebrate/go-i18n/site"
)

func newSiteCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "site",
		Short: "Resolve and fetch site configuration",
	}
	cmd.AddCommand(newSiteDetectCmd(a), newSiteFetchCmd(a))
	return cmd
}

func newSiteDetectCmd(a *app) *cobra.Command {
	var stored string

	cmd := &cobra.Command{
		Use:   "detect <url>",
		Short: "Print the site id a visitor at url would get",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver := site.NewResolverFromSettings(a.settings.Site)

			values := map[string]string{}
			if stored != "" {
				values[resolver.StorageKey()] = stored
			}
			bc, err := site.ContextFromURL(args[0], site.NewMemoryStorage(values))
			if err != nil {
				return err
			}

			id, ok := resolver.Detect(bc)
			if !ok {
				return fmt.Errorf("no site id for %s", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
	cmd.Flags().StringVar(&stored, "stored", "", "site id remembered from a previous visit")
	return cmd
}

func newSiteFetchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch <site-id>",
		Short: "Fetch a site and print its resolved formatting settings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, err := site.NewLoaderFromSettings(a.settings.Site, a.logger, nil)
			if err != nil {
				return err
			}

			cfg, err := loader.Load(context.Background(), args[0])
			if err != nil {
				return err
			}

			var publicURL string
			if cfg.Domain != "" {
				publicURL = site.PublicSiteURL(site.BrowserContext{Hostname: cfg.Domain}, cfg.SiteURL, cfg.ID)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Site      *site.Config    `json:"site"`
				I18n      i18n.I18nConfig `json:"i18n"`
				PublicURL string          `json:"public_url,omitempty"`
			}{
				Site:      cfg,
				I18n:      site.I18n(cfg),
				PublicURL: publicURL,
			})
		},
	}
}
