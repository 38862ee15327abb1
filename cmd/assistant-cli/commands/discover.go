package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/storefront-ai/assistant-service/cmd/assistant-cli/ui"
	"github.com/storefront-ai/assistant-service/internal/services/discovery"
	"github.com/storefront-ai/assistant-service/internal/services/orchestrator"
)

var themeFallbackFirst bool

var discoverCmd = &cobra.Command{
	Use:   "discover <message>",
	Short: "Run product discovery against the catalog file",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDiscover,
}

func init() {
	discoverCmd.Flags().BoolVar(&themeFallbackFirst, "theme-fallback-first", false, "try catalog tags before fixed theme keywords")
	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(cmd *cobra.Command, args []string) error {
	message := strings.Join(args, " ")
	out := cmd.OutOrStdout()

	st, err := newStack()
	if err != nil {
		return err
	}
	defer st.Close()

	snap, err := st.catalog.GetSnapshot(context.Background(), shopDomain)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	engine := discovery.NewEngine(discovery.Config{ThemeTagFallbackFirst: themeFallbackFirst})
	res := engine.Discover(snap, discovery.Request{
		Message: message,
		Lang:    orchestrator.ResolveLanguage(language, message),
	})

	filter, _ := json.Marshal(res.Filter)
	ui.Field(out, "filter", string(filter))
	if !res.Searched {
		ui.Dim(out, "no search criteria in message")
		return nil
	}
	if len(res.Items) == 0 {
		ui.Warn(out, "no matching products")
		return nil
	}

	rows := make([][]string, 0, len(res.Items))
	for _, it := range res.Items {
		rows = append(rows, []string{
			it.Title,
			discovery.FormatPrice(it.Price, it.Currency),
			fmt.Sprintf("%d", it.Score),
			it.URL,
		})
	}
	ui.Table(out, []string{"TITLE", "PRICE", "SCORE", "URL"}, rows)
	return nil
}
