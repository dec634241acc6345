package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/whattocook/internal/app"
	"github.com/five82/whattocook/internal/config"
	"github.com/five82/whattocook/internal/logtail"
	"github.com/five82/whattocook/internal/meals"
)

const defaultLogLines = 50

// newRootCmd builds the command tree. Without a subcommand it starts the TUI.
func newRootCmd() *cobra.Command {
	var opts app.Options

	root := &cobra.Command{
		Use:           "whattocook",
		Short:         "Find something to cook from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "override config path (default ~/.config/whattocook/config.toml)")
	root.PersistentFlags().StringVar(&opts.PrefsPath, "prefs", "", "override preferences path (default ~/.config/whattocook/prefs.toml)")

	root.AddCommand(
		newRandomCmd(&opts),
		newSavedCmd(&opts),
		newSearchCmd(&opts),
		newLogsCmd(&opts),
	)
	return root
}

func newRandomCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "random",
		Short: "Print a random meal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			meal, err := app.RandomMeal(cmd.Context(), *opts)
			if err != nil {
				return err
			}
			printMeal(cmd.OutOrStdout(), meal)
			return nil
		},
	}
}

func newSavedCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "saved",
		Short: "List saved meals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := app.SavedMeals(cmd.Context(), *opts)
			if err != nil {
				return err
			}
			printMeals(cmd.OutOrStdout(), list, "No saved meals yet.")
			return nil
		},
	}
}

func newSearchCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "search INGREDIENT...",
		Short: "Search recipes by ingredients",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := app.SearchMeals(cmd.Context(), *opts, args)
			if err != nil {
				return err
			}
			printMeals(cmd.OutOrStdout(), list, "No recipes found.")
			return nil
		},
	}
}

func newLogsCmd(opts *app.Options) *cobra.Command {
	var lines int
	var raw bool

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the end of the log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.ConfigPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			out, err := logtail.Read(cfg.LogFile, lines)
			if err != nil {
				return fmt.Errorf("read log: %w", err)
			}
			if !raw {
				out = logtail.FormatLines(out)
			}
			for _, line := range out {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", defaultLogLines, "number of lines to show (0 shows all)")
	cmd.Flags().BoolVar(&raw, "raw", false, "print JSON lines as written")
	return cmd
}

func printMeal(w io.Writer, m meals.Meal) {
	fmt.Fprintln(w, m.Name)
	if info := joinNonEmpty(" · ", m.Category, m.Area); info != "" {
		fmt.Fprintln(w, info)
	}
	if link := m.Link(); link != "" {
		fmt.Fprintln(w, link)
	}
	if text := strings.TrimSpace(m.Instructions); text != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, text)
	}
}

func printMeals(w io.Writer, list []meals.Meal, empty string) {
	if len(list) == 0 {
		fmt.Fprintln(w, empty)
		return
	}
	for _, m := range list {
		if link := m.Link(); link != "" {
			fmt.Fprintf(w, "%s  %s\n", m.Name, link)
			continue
		}
		fmt.Fprintln(w, m.Name)
	}
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
