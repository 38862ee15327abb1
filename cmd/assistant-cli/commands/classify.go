package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/storefront-ai/assistant-service/cmd/assistant-cli/ui"
	"github.com/storefront-ai/assistant-service/internal/services/escalation"
	"github.com/storefront-ai/assistant-service/internal/services/intent"
)

var classifyAttempts int

var classifyCmd = &cobra.Command{
	Use:   "classify <message>",
	Short: "Classify a message and evaluate the escalation policy",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runClassify,
}

func init() {
	classifyCmd.Flags().IntVar(&classifyAttempts, "attempts", 0, "failed attempts already recorded for the session")
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	message := strings.Join(args, " ")
	out := cmd.OutOrStdout()

	classifier := intent.NewClassifier(intent.Config{})
	result := classifier.Classify(context.Background(), message, "")

	ui.Field(out, "intent", result.Intent)
	ui.Field(out, "confidence", fmt.Sprintf("%.2f", result.Confidence))
	ui.Field(out, "handler", result.Handler)
	ui.Field(out, "reason", result.Reason)
	if number := intent.FindTrackingNumber(message); number != "" {
		ui.Field(out, "tracking", number)
	}

	decision := escalation.Policy{}.Evaluate(message, result.Intent, result.Confidence, classifyAttempts)
	if !decision.ShouldEscalate {
		ui.Dim(out, "no escalation (complexity %.2f, sentiment %.2f)", decision.Metrics.Complexity, decision.Metrics.SentimentRatio)
		return nil
	}
	ui.Warn(out, "escalate: %s via %s (%s priority)", decision.Reason, decision.RecommendedChannel, decision.Priority)
	return nil
}
