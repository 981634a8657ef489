package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"quickcap/internal/aidetect"
	"quickcap/internal/api"
	"quickcap/internal/classify"
	"quickcap/internal/compose"
	"quickcap/internal/config"
	"quickcap/internal/domain"
	"quickcap/internal/fetcher"
	"quickcap/internal/generator"
	"quickcap/internal/learning"
	"quickcap/internal/store"
	"quickcap/internal/taskparse"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "quickcap",
		Short: "Quick capture with adaptive copywriting",
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "config file path")

	rootCmd.AddCommand(captureCmd())
	rootCmd.AddCommand(tasksCmd())
	rootCmd.AddCommand(scoreCmd())
	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(rateCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func getConfig() (config.Config, error) {
	return config.Load(configPath)
}

func getStore(cfg config.Config) (*store.Store, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	return store.New(cfg.DBPath)
}

func captureCmd() *cobra.Command {
	var typeOverride string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "capture [text]",
		Short: "Capture a task, idea, income, or expense",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content := strings.Join(args, " ")

			cfg, err := getConfig()
			if err != nil {
				return err
			}

			sourceURL := ""
			if fetcher.IsURL(content) {
				sourceURL = strings.TrimSpace(content)
				fmt.Print("Fetching link... ")
				if text, err := fetcher.Fetch(sourceURL, cfg.Capture.MaxFetchChars); err == nil {
					fmt.Println("done")
					content = text
				} else {
					fmt.Printf("failed: %v\n", err)
				}
			}

			opts := classify.DefaultOptions()
			if cfg.Capture.AmbiguousCurrency == "income" {
				opts.AmbiguousCurrency = domain.CaptureIncome
			}
			detection := classify.ClassifyWith(content, opts)
			if typeOverride != "" {
				detection = domain.DetectionResult{
					SuggestedType: domain.CaptureType(typeOverride),
					Confidence:    domain.ConfidenceHigh,
					Reason:        "user override",
				}
			}

			fmt.Printf("Type: %s (%s): %s\n", detection.SuggestedType, detection.Confidence, detection.Reason)

			if dryRun {
				if detection.SuggestedType == domain.CaptureTask {
					printParsed(taskparse.Parse(content, time.Now()))
				}
				fmt.Println("(dry run, nothing saved)")
				return nil
			}

			s, err := getStore(cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			switch detection.SuggestedType {
			case domain.CaptureTask:
				parsed := taskparse.Parse(content, time.Now())
				task, err := s.AddTask(parsed)
				if err != nil {
					return err
				}
				fmt.Printf("Added task: %s\n", task.ID[:8])
				printParsed(parsed)
			case domain.CaptureIncome, domain.CaptureExpense:
				cents, _ := classify.ParseAmount(content)
				capture, err := s.AddCapture(detection.SuggestedType, content, cents, sourceURL)
				if err != nil {
					return err
				}
				fmt.Printf("Added %s: %s", capture.Type, capture.ID[:8])
				if cents > 0 {
					fmt.Printf(" ($%d.%02d)", cents/100, cents%100)
				}
				fmt.Println()
			default:
				capture, err := s.AddCapture(detection.SuggestedType, content, 0, sourceURL)
				if err != nil {
					return err
				}
				fmt.Printf("Added %s: %s\n", capture.Type, capture.ID[:8])
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&typeOverride, "type", "", "skip classification and force a type")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "classify and parse without saving")
	return cmd
}

func printParsed(p domain.ParsedTask) {
	fmt.Printf("  Title: %s\n", p.Text)
	if p.Date != nil {
		fmt.Printf("  Date: %s\n", p.Date.Format("2006-01-02"))
	}
	if p.Time != "" {
		fmt.Printf("  Time: %s\n", p.Time)
	}
	if p.Duration > 0 {
		fmt.Printf("  Duration: %dm\n", p.Duration)
	}
	if p.Priority != "" {
		fmt.Printf("  Priority: %s\n", p.Priority)
	}
	if len(p.Tags) > 0 {
		fmt.Printf("  Tags: %s\n", strings.Join(p.Tags, ", "))
	}
}

func tasksCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List recent tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := getConfig()
			if err != nil {
				return err
			}
			s, err := getStore(cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			tasks, err := s.ListTasks(limit, 0)
			if err != nil {
				return err
			}

			if len(tasks) == 0 {
				fmt.Println("No tasks yet. Use 'quickcap capture' to create one.")
				return nil
			}

			for _, t := range tasks {
				line := fmt.Sprintf("%s  %s", t.ID[:8], truncate(t.Text, 50))
				if t.Date != nil {
					line += "  " + t.Date.Format("Mon Jan 2")
				}
				if t.Time != "" {
					line += " " + t.Time
				}
				if t.Priority != "" {
					line += "  !" + string(t.Priority)
				}
				fmt.Println(line)
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of tasks to show")
	return cmd
}

func scoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score [text]",
		Short: "Score copy for AI-sounding patterns (reads stdin without args)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var text string
			if len(args) > 0 {
				text = strings.Join(args, " ")
			} else {
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				text = string(data)
			}

			result := aidetect.Check(text)
			fmt.Printf("Score: %d/10 (%s)\n", result.Score, aidetect.Assessment(result.Score))
			for i, warning := range result.Warnings {
				fmt.Printf("  - %s\n", warning)
				if i < len(result.Suggestions) {
					fmt.Printf("    fix: %s\n", result.Suggestions[i])
				}
			}
			return nil
		},
	}
}

func generateCmd() *cobra.Command {
	var contentType, topic, userID string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate copy with adaptive parameters",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := getConfig()
			if err != nil {
				return err
			}
			s, err := getStore(cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			gen, err := generator.New(cfg.Model.Name, cfg.Model.MaxTokens)
			if err != nil {
				return err
			}

			engine := learning.NewEngine(s)
			ctx := context.Background()

			pattern := engine.AnalyzeFeedback(ctx, userID, contentType)
			adaptive := engine.AdaptiveParamsFor(pattern)
			if pattern != nil {
				fmt.Printf("Learned from %d rated generations (avg %.1f)\n", pattern.TotalGenerations, pattern.AvgRating)
			}

			prompt := compose.Compose(compose.Request{
				ContentType: contentType,
				Topic:       topic,
				Voice: domain.VoiceProfile{
					Name:        cfg.Voice.Name,
					Description: cfg.Voice.Description,
					Traits:      cfg.Voice.Traits,
					Audience:    cfg.Voice.Audience,
				},
				Adaptive: adaptive,
			})

			fmt.Print("Generating... ")
			output, err := gen.Generate(ctx, prompt, compose.Temperature(cfg.Model.BaseTemperature, adaptive))
			if err != nil {
				fmt.Println("failed")
				return err
			}
			fmt.Println("done")

			detection := aidetect.Check(output)
			record, err := s.AddGeneration(userID, contentType, topic, prompt, output, detection.Score)
			if err != nil {
				return err
			}

			fmt.Printf("\n%s\n\n", output)
			fmt.Printf("AI-pattern score: %d/10 (%s)\n", detection.Score, aidetect.Assessment(detection.Score))
			for _, warning := range detection.Warnings {
				fmt.Printf("  - %s\n", warning)
			}
			fmt.Printf("\nSaved as %s. Rate it with 'quickcap rate %s <0-10> [tags...]'\n", record.ID[:8], record.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&contentType, "type", "social_post", "content type to generate")
	cmd.Flags().StringVar(&topic, "topic", "", "topic for the copy")
	cmd.Flags().StringVar(&userID, "user", "local", "user id for the ratings history")
	_ = cmd.MarkFlagRequired("topic")
	return cmd
}

func rateCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "rate [id] [rating] [tags...]",
		Short: "Rate a generation 0-10, optionally with feedback tags",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rating, err := strconv.ParseFloat(args[1], 64)
			if err != nil || rating < 0 || rating > 10 {
				return fmt.Errorf("rating must be a number between 0 and 10")
			}

			cfg, err := getConfig()
			if err != nil {
				return err
			}
			s, err := getStore(cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			// Resolve id prefix against recent generations.
			gens, err := s.ListGenerations(userID, 100)
			if err != nil {
				return err
			}
			var fullID string
			for _, g := range gens {
				if strings.HasPrefix(g.ID, args[0]) {
					fullID = g.ID
					break
				}
			}
			if fullID == "" {
				return fmt.Errorf("generation not found: %s", args[0])
			}

			if err := s.RateGeneration(fullID, rating, args[2:]); err != nil {
				return err
			}

			fmt.Printf("Rated %s: %.0f/10", fullID[:8], rating)
			if len(args) > 2 {
				fmt.Printf(" [%s]", strings.Join(args[2:], ", "))
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "local", "user id for the ratings history")
	return cmd
}

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := getConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}

			s, err := getStore(cfg)
			if err != nil {
				return err
			}
			// Note: don't defer s.Close() as server runs indefinitely

			var gen generator.Generator
			if g, err := generator.New(cfg.Model.Name, cfg.Model.MaxTokens); err == nil {
				gen = g
			}

			server := api.New(s, gen, cfg)
			return server.Run()
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "server address (overrides config)")
	return cmd
}

func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
