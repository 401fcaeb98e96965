package cmd

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/zhubert/scribe/internal/app"
	"github.com/zhubert/scribe/internal/clipboard"
	"github.com/zhubert/scribe/internal/config"
	"github.com/zhubert/scribe/internal/logger"
	"github.com/zhubert/scribe/internal/ollama"
)

var (
	debugMode             bool
	quietMode             bool
	journalMode           bool
	configPath            string
	modelFlag             string
	ollamaURLFlag         string
	noAutostart           bool
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "scribe [files...]",
	Short: "Tabbed terminal editor with local AI assistance",
	Long: `Scribe is a terminal text editor. Each file opens in its own tab, and a
locally running Ollama server can generate code into the buffer, debug it, or
explain a selection. Without Ollama, scribe works as a plain editor.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to warnings only")
	rootCmd.PersistentFlags().BoolVar(&journalMode, "journal", false, "Also send logs to the systemd journal")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.scribe/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&modelFlag, "model", "", "Ollama model to use")
	rootCmd.PersistentFlags().StringVar(&ollamaURLFlag, "ollama-url", "", "Ollama server address")
	rootCmd.Flags().BoolVar(&noAutostart, "no-autostart", false, "Do not start ollama serve when it is not running")
}

func initConfig() {
	switch {
	case quietMode:
		logger.SetLevel(logger.LevelWarn)
	case debugMode:
		logger.SetDebug(true)
	}
	logger.EnableJournal(journalMode)
}

// Execute runs the root command
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("scribe %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("scribe %s\n", version)
}

// loadConfig reads the config file and applies flag overrides. Overrides
// are not written back unless the user saves settings.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	if modelFlag != "" {
		cfg.SetModel(modelFlag)
	}
	if ollamaURLFlag != "" {
		cfg.SetBaseURL(ollamaURLFlag)
	}
	if noAutostart {
		cfg.SetAutostart(false)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newInferenceClient(baseURL string) (app.Inference, error) {
	return ollama.NewClient(baseURL, nil)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	defer logger.Close()
	log := logger.WithComponent("cmd")
	log.Info("starting scribe", "version", version, "files", len(args), "baseURL", cfg.GetBaseURL(), "model", cfg.GetModel())

	client, err := ollama.NewClient(cfg.GetBaseURL(), nil)
	if err != nil {
		return err
	}
	if err := clipboard.Init(); err != nil {
		log.Warn("clipboard unavailable", "error", err)
	}

	m := app.New(app.Options{
		Config:    cfg,
		Version:   version,
		Client:    client,
		NewClient: newInferenceClient,
		Server:    ollama.NewServer(cfg.GetBinary()),
		Files:     args,
	})
	defer m.Shutdown()

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
