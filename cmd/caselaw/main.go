package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/coolbeans/caselaw/pkg/anchor"
	"github.com/coolbeans/caselaw/pkg/cap"
	"github.com/coolbeans/caselaw/pkg/citation"
	"github.com/coolbeans/caselaw/pkg/config"
	"github.com/coolbeans/caselaw/pkg/courtlistener"
	"github.com/coolbeans/caselaw/pkg/decision"
)

var version = "0.1.0"

var configFile string

func main() {
	rootCmd := &cobra.Command{
		Use:   "caselaw",
		Short: "Court decision fetcher and opinion text anchor",
		Long: `Caselaw downloads court decisions by citation or id, normalizes
citation text, and anchors quoted passages to exact positions within
opinion text.

Decisions come from the Caselaw Access Project or CourtListener APIs.
Passages are selected by literal offsets or by quotes with optional
prefix and suffix context, and render with ellipses marking the
omitted text.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default: $HOME/.caselaw/config.yaml)")

	rootCmd.AddCommand(fetchCmd())
	rootCmd.AddCommand(citeCmd())
	rootCmd.AddCommand(locateCmd())
	rootCmd.AddCommand(excerptCmd())
	rootCmd.AddCommand(configCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if configFile != "" {
		return config.LoadFile(configFile)
	}
	return config.Load()
}

// readDecision fetches from the configured source, preferring the
// --source flag when given.
func readDecision(cfg *config.Config, source, query string, fullCase bool) (*decision.Decision, error) {
	if source == "" {
		source = cfg.DefaultSource
	}
	switch source {
	case config.SourceCAP:
		client := cap.NewClient(cfg.CAPConfig())
		return client.Read(query, fullCase)
	case config.SourceCourtListener:
		client := courtlistener.NewClient(cfg.CourtListenerConfig())
		return client.Read(query)
	}
	return nil, fmt.Errorf("unknown source %q: must be %q or %q",
		source, config.SourceCAP, config.SourceCourtListener)
}

func fetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch [id or citation]",
		Short: "Fetch a decision by id or citation",
		Long: `Fetch a decision from the configured API and print it as JSON.

The argument is either a numeric case id or a citation; citation text
is normalized before the request, so "3 US 100" and "3 U.S. 100" name
the same case.

Example:
  caselaw fetch 4066790
  caselaw fetch "49 F.3d 807" --full-case
  caselaw fetch "49 F.3d 807" --source courtlistener`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fullCase, _ := cmd.Flags().GetBool("full-case")
			source, _ := cmd.Flags().GetString("source")
			summary, _ := cmd.Flags().GetBool("summary")

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			fetched, err := readDecision(cfg, source, args[0], fullCase)
			if err != nil {
				return err
			}

			if summary {
				fmt.Println(fetched)
				return nil
			}
			encoded, err := json.MarshalIndent(fetched, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding decision: %w", err)
			}
			fmt.Println(string(encoded))
			return nil
		},
	}
	cmd.Flags().Bool("full-case", false, "request full opinion text (CAP requires an API token)")
	cmd.Flags().String("source", "", "API source: cap or courtlistener (default from config)")
	cmd.Flags().Bool("summary", false, "print a one-line summary instead of JSON")
	return cmd
}

func citeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cite [text]",
		Short: "Normalize a citation found in text",
		Long: `Extract and normalize the case citation in the given text.

Fails when the text contains no case citation, or more than one
distinct citation.

Example:
  caselaw cite "3 US 100"
  caselaw cite "The court quoted Feist, 499 U.S. 340, approvingly."`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cite, err := citation.Normalize(args[0])
			if err != nil {
				return err
			}
			fmt.Println(cite)
			return nil
		},
	}
}

// readBuffer loads the text to anchor against, from --file or stdin.
func readBuffer(cmd *cobra.Command) (string, error) {
	file, _ := cmd.Flags().GetString("file")
	if file == "" {
		content, err := os.ReadFile("/dev/stdin")
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(content), nil
	}
	content, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("reading text file: %w", err)
	}
	return string(content), nil
}

func locateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locate",
		Short: "Locate a quoted passage within text",
		Long: `Find every match of a quote within a text file and print the
matched positions as JSON. Prefix and suffix narrow the match to one
occurrence without selecting the context itself.

Example:
  caselaw locate --file opinion.txt --quote "method of operation"
  caselaw locate --file opinion.txt --quote "procedure" --prefix "or "`,
		RunE: func(cmd *cobra.Command, args []string) error {
			quote, _ := cmd.Flags().GetString("quote")
			prefix, _ := cmd.Flags().GetString("prefix")
			suffix, _ := cmd.Flags().GetString("suffix")

			buffer, err := readBuffer(cmd)
			if err != nil {
				return err
			}

			selector := anchor.TextQuoteSelector{Exact: quote, Prefix: prefix, Suffix: suffix}
			positions, err := selector.FindAll(buffer)
			if err != nil {
				return err
			}

			encoded, err := json.MarshalIndent(positions, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding positions: %w", err)
			}
			fmt.Println(string(encoded))
			return nil
		},
	}
	cmd.Flags().String("file", "", "text file to search (default: stdin)")
	cmd.Flags().String("quote", "", "exact text to locate")
	cmd.Flags().String("prefix", "", "context immediately before the quote")
	cmd.Flags().String("suffix", "", "context immediately after the quote")
	_ = cmd.MarkFlagRequired("quote")
	return cmd
}

func excerptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "excerpt",
		Short: "Render selected passages with ellipses for omitted text",
		Long: `Select passages of a text file by offset span or quote and render
them in order, with "` + anchor.Ellipsis + `" marking omitted text.

Spans are half-open byte ranges start:end. Overlapping or adjacent
selections merge into one passage.

Selections may also be given as a JSON expression: a quoted string, a
two-number position, an object with exact/prefix/suffix keys, or an
array mixing these.

Example:
  caselaw excerpt --file opinion.txt --span 0:25 --span 100:140
  caselaw excerpt --file opinion.txt --quote "method of operation" --quote "procedure"
  caselaw excerpt --file opinion.txt --selection '[[0,25],{"exact":"procedure","prefix":"or "}]'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			spans, _ := cmd.Flags().GetStringSlice("span")
			quotes, _ := cmd.Flags().GetStringSlice("quote")
			selectionJSON, _ := cmd.Flags().GetString("selection")
			if len(spans) == 0 && len(quotes) == 0 && selectionJSON == "" {
				return fmt.Errorf("at least one --span, --quote, or --selection is required")
			}

			buffer, err := readBuffer(cmd)
			if err != nil {
				return err
			}

			selections := make([]anchor.Selection, 0, len(spans)+len(quotes))
			for _, span := range spans {
				position, err := parseSpan(span)
				if err != nil {
					return err
				}
				selections = append(selections, position)
			}
			for _, quote := range quotes {
				selections = append(selections, anchor.Quote(quote))
			}
			if selectionJSON != "" {
				var raw any
				if err := json.Unmarshal([]byte(selectionJSON), &raw); err != nil {
					return fmt.Errorf("parsing --selection: %w", err)
				}
				selection, err := anchor.NewSelection(raw)
				if err != nil {
					return err
				}
				selections = append(selections, selection)
			}

			selected, err := anchor.FromSelection(buffer, anchor.SelectionSequence(selections))
			if err != nil {
				return err
			}
			fmt.Println(selected.AsTextSequence(buffer))
			return nil
		},
	}
	cmd.Flags().String("file", "", "text file to excerpt (default: stdin)")
	cmd.Flags().StringSlice("span", nil, "byte span start:end (repeatable)")
	cmd.Flags().StringSlice("quote", nil, "exact text to select (repeatable)")
	cmd.Flags().String("selection", "", "selection expression as JSON")
	return cmd
}

// parseSpan converts "start:end" to a TextPosition.
func parseSpan(span string) (anchor.TextPosition, error) {
	startText, endText, ok := strings.Cut(span, ":")
	if !ok {
		return anchor.TextPosition{}, fmt.Errorf("span %q must have the form start:end", span)
	}
	start, err := strconv.Atoi(startText)
	if err != nil {
		return anchor.TextPosition{}, fmt.Errorf("span %q has a bad start offset", span)
	}
	end, err := strconv.Atoi(endText)
	if err != nil {
		return anchor.TextPosition{}, fmt.Errorf("span %q has a bad end offset", span)
	}
	return anchor.NewTextPosition(start, end)
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage caselaw configuration",
		Long: `Manage the caselaw configuration file and settings.

Configuration hierarchy (highest to lowest priority):
1. Environment variables (CASELAW_*)
2. Config file (~/.caselaw/config.yaml)
3. Defaults`,
	}
	cmd.AddCommand(configShowCmd())
	cmd.AddCommand(configInitCmd())
	return cmd
}

func configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			encoded, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("encoding config: %w", err)
			}
			fmt.Print(string(encoded))
			return nil
		},
	}
}

func configInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := config.Path()
			if err != nil {
				return err
			}
			if _, err := os.Stat(configPath); err == nil {
				return fmt.Errorf("config file already exists: %s", configPath)
			}
			if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
				return fmt.Errorf("creating config directory: %w", err)
			}

			encoded, err := yaml.Marshal(config.Default())
			if err != nil {
				return fmt.Errorf("encoding config: %w", err)
			}
			header := "# Caselaw configuration file\n" +
				"# Set api_token to fetch full opinion text from the CAP API.\n" +
				"# Environment variables (CASELAW_*) override these values.\n"
			if err := os.WriteFile(configPath, append([]byte(header), encoded...), 0600); err != nil {
				return fmt.Errorf("writing config file: %w", err)
			}

			fmt.Printf("Created default configuration: %s\n", configPath)
			return nil
		},
	}
}
