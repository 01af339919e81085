package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/trozzelle/perplexity-shell/internal/config"
	"github.com/trozzelle/perplexity-shell/internal/inspect"
	"github.com/trozzelle/perplexity-shell/internal/perplexity"
	"github.com/trozzelle/perplexity-shell/internal/prompt"
	"github.com/trozzelle/perplexity-shell/internal/render"
	"github.com/trozzelle/perplexity-shell/internal/ui"

	"github.com/spf13/cobra"
)

var (
	// version is set by goreleaser at build time
	version = "dev"
	commit  = "none"
	date    = "unknown"

	// CLI flags
	debug      bool
	rawOutput  bool
	copyAnswer bool
	structured bool
	noColor    bool
	modelFlag  string
	maxTokens  int
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		ui.ShowError(err.Error())
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "px [query...]",
		Short:   "Ask Perplexity from your terminal",
		Long:    "px forwards a natural-language query to the Perplexity search API and renders the answer and citations as terminal text",
		Version: version,
		Args:    cobra.MinimumNArgs(1),
		RunE:    runQuery,
	}

	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&rawOutput, "raw", false, "Print the raw JSON response body")
	rootCmd.PersistentFlags().BoolVarP(&copyAnswer, "copy", "c", false, "Copy the answer text to the clipboard")
	rootCmd.PersistentFlags().BoolVar(&structured, "structured", false, "Request a structured explanation/examples answer")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&modelFlag, "model", "", "Override the configured model")
	rootCmd.PersistentFlags().IntVar(&maxTokens, "max-tokens", 0, "Override the configured completion token bound")

	contextCmd := &cobra.Command{
		Use:   "context <path> [question...]",
		Short: "Ask about a file, using its metadata as context",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runContext,
	}

	helpCmd := &cobra.Command{
		Use:   "help <command> [question...]",
		Short: "Ask about a shell command, using its local resolution as context",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runHelp,
	}

	configureCmd := &cobra.Command{
		Use:   "configure",
		Short: "Configure the default model and token bound",
		RunE:  runConfigure,
	}

	rootCmd.AddCommand(contextCmd)
	rootCmd.AddCommand(configureCmd)
	rootCmd.SetHelpCommand(helpCmd)

	// main prints the error itself, in red, via ui.ShowError
	rootCmd.SilenceErrors = true

	return rootCmd
}

func runQuery(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	if debug {
		fmt.Fprintf(os.Stderr, "[DEBUG] Main: general query: %q\n", query)
	}

	return executeQuery(prompt.Input{
		Mode:     prompt.ModeGeneral,
		Question: query,
	})
}

func runContext(cmd *cobra.Command, args []string) error {
	path := args[0]
	question := strings.Join(args[1:], " ")

	fc, err := inspect.FileWithDebug(path, debug)
	if err != nil {
		return err
	}

	return executeQuery(prompt.Input{
		Mode:     prompt.ModeFileInfo,
		Question: question,
		File:     fc,
	})
}

func runHelp(cmd *cobra.Command, args []string) error {
	name := args[0]
	question := strings.Join(args[1:], " ")

	cc := inspect.CommandWithDebug(name, debug)

	return executeQuery(prompt.Input{
		Mode:     prompt.ModeCmdHelp,
		Question: question,
		Command:  cc,
	})
}

// executeQuery runs the shared pipeline: build the request, send it once,
// spool the body through a scratch file, and print the rendered answer.
func executeQuery(in prompt.Input) error {
	interactive := term.IsTerminal(int(os.Stdout.Fd()))
	if noColor || !interactive {
		color.NoColor = true
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	model := cfg.Model
	if modelFlag != "" {
		model = modelFlag
	}
	tokens := cfg.MaxTokens
	if maxTokens > 0 {
		tokens = maxTokens
	}

	// The key check happens before any network activity
	apiKey, err := config.APIKey()
	if err != nil {
		ui.ShowInfo("Get a key at https://www.perplexity.ai/settings/api and export " + config.APIKeyEnvVar)
		return err
	}

	if debug {
		fmt.Fprintf(os.Stderr, "[DEBUG] Main: mode=%s model=%s max_tokens=%d structured=%v\n",
			in.Mode, model, tokens, structured)
	}

	req := prompt.NewChatRequest(model, tokens, structured, in)

	client := perplexity.NewClient(apiKey, cfg.BaseURL)
	client.SetDebug(debug)

	if interactive && !rawOutput {
		ui.ShowInfo("Thinking...")
	}

	body, err := client.Complete(context.Background(), req)
	if err != nil {
		return err
	}

	spooled, err := spool(body)
	if err != nil {
		return err
	}

	if rawOutput {
		fmt.Println(string(spooled))
		return nil
	}

	resp, err := perplexity.ParseResponse(spooled)
	if err != nil {
		return err
	}

	fmt.Print(render.Answer(resp, render.Options{
		Structured:    structured,
		CitationLimit: cfg.CitationLimit,
	}))

	if copyAnswer {
		if err := clipboard.WriteAll(resp.Answer()); err != nil {
			ui.ShowWarning(fmt.Sprintf("Failed to copy to clipboard: %v", err))
		} else {
			ui.ShowSuccess("Answer copied to clipboard")
		}
	}

	return nil
}

// spool writes the response body to a transient scratch file and reads it
// back for parsing. The file is removed unconditionally, whether or not the
// formatting that follows succeeds.
func spool(body []byte) ([]byte, error) {
	tmp, err := os.CreateTemp("", "px-response-*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if debug {
		fmt.Fprintf(os.Stderr, "[DEBUG] Main: spooling response to %s\n", tmp.Name())
	}

	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("failed to write scratch file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to close scratch file: %w", err)
	}

	return os.ReadFile(tmp.Name())
}

func runConfigure(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	model, err := ui.PromptModel(cfg.Model)
	if err != nil {
		return err
	}
	cfg.Model = model

	tokens, err := ui.PromptMaxTokens(cfg.MaxTokens)
	if err != nil {
		return err
	}
	cfg.MaxTokens = tokens

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	configPath, _ := config.GetConfigPath()
	ui.ShowSuccess(fmt.Sprintf("Configuration saved to %s", configPath))
	return nil
}
