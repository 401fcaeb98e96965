package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zhubert/scribe/internal/config"
	"github.com/zhubert/scribe/internal/monitor"
	"github.com/zhubert/scribe/internal/ollama"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the models installed on the Ollama server",
	Long: `Probes the configured Ollama server the same way the editor does and
prints the installed models, marking the one scribe is configured to use.`,
	Args: cobra.NoArgs,
	RunE: runModels,
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}

func runModels(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := ollama.NewClient(cfg.GetBaseURL(), nil)
	if err != nil {
		return err
	}
	return listModels(cmd.Context(), cmd.OutOrStdout(), cfg, client)
}

// listModels writes one model per line. The configured model is starred,
// and an empty server gets the same advisory the editor shows.
func listModels(ctx context.Context, out io.Writer, cfg *config.Config, p monitor.Prober) error {
	if ctx == nil {
		ctx = context.Background()
	}
	res := monitor.Probe(ctx, p, cfg.ProbeTimeout())
	if res.Err != nil {
		return fmt.Errorf("ollama is not reachable at %s: %w", cfg.GetBaseURL(), res.Err)
	}

	if len(res.Models) == 0 {
		fmt.Fprintln(out, monitor.Advisory(cfg.GetModel()))
		return nil
	}

	configured := false
	for _, name := range res.Models {
		marker := "  "
		if name == cfg.GetModel() {
			marker = "* "
			configured = true
		}
		fmt.Fprintf(out, "%s%s\n", marker, name)
	}
	if !configured {
		fmt.Fprintf(out, "\nConfigured model %s is not installed. Run: ollama pull %s\n", cfg.GetModel(), cfg.GetModel())
	}
	return nil
}
