package commands

import (
	"bufio"
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/storefront-ai/assistant-service/cmd/assistant-cli/ui"
	"github.com/storefront-ai/assistant-service/internal/services/orchestrator"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Hold an interactive conversation with the assistant",
	Long:  "Reads customer messages from stdin, one per line. Type exit or quit to stop.",
	Args:  cobra.NoArgs,
	RunE:  runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	st, err := newStack()
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	sessionID := ""
	scanner := bufio.NewScanner(cmd.InOrStdin())

	for {
		ui.Prompt(out)
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		reply, err := st.assistant.Handle(ctx, orchestrator.Request{
			Message:    line,
			SessionID:  sessionID,
			Language:   language,
			ShopDomain: shopDomain,
		})
		if err != nil {
			ui.Warn(out, "%v", err)
			continue
		}
		sessionID = reply.SessionID

		ui.Assistant(out, reply.Reply)
		for i, p := range reply.Products {
			ui.Dim(out, "  %d. %s  %s", i+1, p.Title, p.URL)
		}
		if verbose {
			ui.Dim(out, "  [%s/%s intent=%s %.2f]", reply.Mode, reply.Handler, reply.Intent, reply.Confidence)
		}
		if reply.Escalated && reply.Escalation != nil {
			ui.Warn(out, "escalated to %s (%s)", reply.Escalation.Channel, reply.Escalation.Contact)
		}
	}
	return scanner.Err()
}
