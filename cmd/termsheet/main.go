// Command termsheet drafts a startup financing term sheet from a
// natural-language prompt, either for a single prompt or in an interactive
// loop.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"termsheet-backend/config"
	"termsheet-backend/export"
	"termsheet-backend/llm"
	"termsheet-backend/service"
	"termsheet-backend/storage"
	"termsheet-backend/templates"
)

func main() {
	model := flag.String("model", "", "language model to use")
	noExport := flag.Bool("no-export", false, "skip document export")
	noValidation := flag.Bool("no-validation", false, "skip validation")
	interactive := flag.Bool("interactive", false, "run in interactive mode")
	flag.Parse()

	cfg := config.Load()
	if *model != "" {
		cfg.LLMModel = *model
	}

	artifactStorage, err := storage.New(cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	llmClient, err := initLLM(cfg)
	if err != nil {
		log.Fatal("Failed to initialize LLM client:", err)
	}

	store := templates.NewStore()
	if err := store.LoadDir(cfg.TemplatesDir); err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}

	pipeline := service.NewPipelineService(
		service.WithIntentService(service.NewIntentService(llmClient)),
		service.WithTemplateService(service.NewTemplateService(store)),
		service.WithRefinementService(service.NewRefinementService(llmClient)),
		service.WithValidationService(service.NewValidationService(llmClient)),
		service.WithArtifactStorage(artifactStorage),
		service.WithExporter(export.NewHTMLExporter()),
	)

	if *interactive {
		runInteractive(pipeline, os.Stdin, os.Stdout, *noExport, *noValidation)
		return
	}

	prompt := strings.Join(flag.Args(), " ")
	if prompt == "" {
		fmt.Fprintln(os.Stderr, "Usage: termsheet [flags] <prompt>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	fmt.Println("=== Term Sheet Drafting Assistant ===")
	if err := runOnce(pipeline, os.Stdout, prompt, *noExport, *noValidation); err != nil {
		fmt.Fprintf(os.Stderr, "Error processing prompt: %v\n", err)
		os.Exit(1)
	}
}

// runInteractive loops over prompts; a failed prompt is reported and the
// session continues
func runInteractive(pipeline *service.PipelineService, in io.Reader, out io.Writer, noExport, noValidation bool) {
	fmt.Fprintln(out, "=== Term Sheet Drafting Assistant (Interactive Mode) ===")
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, "\nEnter your prompt (or 'exit' to quit): ")
		if !scanner.Scan() {
			return
		}
		prompt := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(prompt) {
		case "exit", "quit", "q":
			return
		case "":
			continue
		}

		if err := runOnce(pipeline, out, prompt, noExport, noValidation); err != nil {
			fmt.Fprintf(out, "Error processing prompt: %v\n", err)
		}
	}
}

func runOnce(pipeline *service.PipelineService, out io.Writer, prompt string, noExport, noValidation bool) error {
	run, err := pipeline.Run(context.Background(), service.RunRequest{
		Prompt:         prompt,
		SkipValidation: noValidation,
		SkipExport:     noExport,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "\n"+run.TermSheet)
	if run.ValidationReport != "" {
		fmt.Fprintln(out, "\n"+run.ValidationReport)
	}
	for _, artifact := range run.Artifacts {
		fmt.Fprintf(out, "Saved %s (%s)\n", artifact.Name, artifact.StoragePath)
	}

	return nil
}

func initLLM(cfg *config.Config) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "openai":
		return llm.NewOpenAIClient(llm.Settings{
			Model:   cfg.LLMModel,
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBase,
		})
	default:
		return llm.NewGeminiClient(context.Background(), llm.Settings{
			Model:  cfg.LLMModel,
			APIKey: cfg.GeminiAPIKey,
		})
	}
}
