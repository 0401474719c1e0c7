package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/amaumene/gomovies/internal/config"
	"github.com/amaumene/gomovies/internal/constants"
)

func newRootCmd() *cobra.Command {
	var configPath string

	loadConfig := func() (*config.Config, error) {
		return config.Load(configPath)
	}

	rootCmd := &cobra.Command{
		Use:   constants.AppName,
		Short: constants.AppDescription,
		Long: `gomovies - find movies you will enjoy without the hassle
  - type to search TMDB, results refresh as you pause
  - the most searched terms show up as trending`,
		Version:       constants.AppVersion,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runTUI(cmd.Context(), cfg)
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (JSON, YAML or TOML); defaults to $CONFIG_FILE or config.json")

	rootCmd.AddCommand(
		newTUICmd(loadConfig),
		newServeCmd(loadConfig),
		newSearchCmd(loadConfig),
		newTrendingCmd(loadConfig),
	)
	return rootCmd
}

func newTUICmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive movie search in the terminal (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runTUI(cmd.Context(), cfg)
		},
	}
}

func newServeCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON and websocket API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}
			return runServe(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides PORT)")
	return cmd
}

func newSearchCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "search [TERM...]",
		Short: "Search once and print the results; no term lists popular movies",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			deps := initialize(cfg, newCLILogger(cfg))
			defer deps.Close()

			query := strings.Join(args, " ")
			movies, err := deps.finder.Find(cmd.Context(), query)
			deps.finder.Wait()
			if err != nil {
				deps.logger.Errorf("[App] fetch for %q failed: %v", query, err)
				return errors.New(constants.FetchErrorMessage)
			}

			out := cmd.OutOrStdout()
			if len(movies) == 0 {
				fmt.Fprintln(out, "No movies found.")
				return nil
			}
			for i, m := range movies {
				year := "----"
				if y := m.Year(); y > 0 {
					year = fmt.Sprint(y)
				}
				fmt.Fprintf(out, "%3d. %s (%s)  ★ %.1f  %s votes\n",
					i+1, m.Title, year, m.VoteAverage, humanize.Comma(int64(m.VoteCount)))
			}
			return nil
		},
	}
}

func newTrendingCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "trending",
		Short: "Print the most searched terms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if limit <= 0 {
				limit = cfg.TrendingLimit
			}

			deps := initialize(cfg, newCLILogger(cfg))
			defer deps.Close()

			records, err := deps.finder.Trending(cmd.Context(), limit)
			if err != nil {
				deps.logger.Warnf("[App] failed to list trending searches: %v", err)
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No trending searches yet.")
				return nil
			}
			for i, rec := range records {
				fmt.Fprintf(out, "%3d. %-24s %s searches  %s\n",
					i+1, rec.SearchTerm, humanize.Comma(rec.Count), rec.Title)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "number of terms to show (defaults to TRENDING_LIMIT)")
	return cmd
}
