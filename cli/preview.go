package main

import (
	"errors"
	"fmt"

	"PrettyHelp/config"
	"PrettyHelp/help"

	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview [category|command] [subcommand...]",
	Short: "Render help pages in the terminal",
	Long: `Builds the pages the help command would send for the given query and
renders them as boxes. Disabled commands are not known here, so every
command is shown.`,
	RunE: runPreview,
}

var (
	previewPage  int
	previewWidth int
)

func init() {
	previewCmd.Flags().IntVarP(&previewPage, "page", "p", 0, "Render only this page, 1-based")
	previewCmd.Flags().IntVarP(&previewWidth, "width", "w", 72, "Box width")
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	h, err := newHelp(cfg)
	if err != nil {
		return err
	}
	defer h.Close()

	inv := help.Invocation{Prefix: cfg.Prefix, InvokedWith: "help"}
	pages, err := h.Pages(cmd.Context(), inv, args)
	if errors.Is(err, help.ErrNotFound) || errors.Is(err, help.ErrDisabled) {
		fmt.Fprintln(cmd.OutOrStdout(), err)
		return nil
	}
	if err != nil {
		return err
	}

	if previewPage != 0 {
		if previewPage < 1 || previewPage > len(pages) {
			return fmt.Errorf("page %d out of range, there are %d pages", previewPage, len(pages))
		}
		pages = pages[previewPage-1 : previewPage]
	}

	for _, page := range pages {
		fmt.Fprintln(cmd.OutOrStdout(), renderEmbed(page, previewWidth))
	}
	return nil
}
