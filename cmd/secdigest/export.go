// ABOUTME: Export command for writing the configured RSS sources as OPML
// ABOUTME: Outputs a subscription list for import into a regular feed reader

package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/harper/secdigest/internal/config"
	"github.com/harper/secdigest/internal/opml"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export RSS sources as OPML",
	Long:  "Export the configured RSS sources in OPML format to standard output, or to a file with --output",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

		doc, err := sourcesOPML(cfg)
		if err != nil {
			return err
		}
		if output == "" {
			return doc.Write(os.Stdout)
		}
		if err := doc.WriteFile(output); err != nil {
			return err
		}
		log.WithField("feeds", doc.Len()).Infof("exported sources to %s", output)
		return nil
	},
}

func sourcesOPML(c *config.Config) (*opml.Document, error) {
	doc := opml.NewDocument("secdigest sources")
	for _, s := range c.Sources {
		if s.Kind != config.KindRSS {
			continue
		}
		if err := doc.AddFeed(s.URL, s.Name, "Security"); err != nil {
			return nil, fmt.Errorf("source %q: %w", s.Name, err)
		}
	}
	return doc, nil
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "write OPML to this file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}
