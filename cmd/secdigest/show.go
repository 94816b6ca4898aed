// ABOUTME: Show command for previewing the recent window in the terminal
// ABOUTME: Renders the same grouping as the HTML pages through glamour

package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/secdigest/internal/aggregate"
	"github.com/harper/secdigest/internal/render"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Preview recent articles in the terminal",
	Long:  "Render the recent window (or the full archive with --all) as markdown in the terminal.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		days, _ := cmd.Flags().GetInt("days")
		style, _ := cmd.Flags().GetString("style")
		plain, _ := cmd.Flags().GetBool("plain")

		articles, err := store.LoadAll()
		if err != nil {
			return fmt.Errorf("failed to load archive: %w", err)
		}

		if len(articles) == 0 {
			fmt.Println("Archive is empty. Run 'secdigest run' first.")
			return nil
		}

		if days <= 0 {
			days = cfg.GetRecentDays()
		}

		now := time.Now()
		view := render.ArchiveView(articles, now)
		if !all {
			view = render.RecentView(aggregate.RecentView(articles, now, days), days, now)
		}

		if plain {
			fmt.Print(render.Markdown(view))
			return nil
		}

		out, err := render.Terminal(view, style)
		if err != nil {
			faint := color.New(color.Faint).SprintFunc()
			fmt.Printf("%s\n", faint("(markdown rendering unavailable, showing plain text)"))
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().Bool("all", false, "show the full archive instead of the recent window")
	showCmd.Flags().Int("days", 0, "recent window in days (default from config)")
	showCmd.Flags().String("style", "dark", "glamour style (dark, light, notty, ...)")
	showCmd.Flags().Bool("plain", false, "print raw markdown")
}
