package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"phishshield/internal/urlrisk"
	"phishshield/internal/urlrisk/service"
)

type analyzeOptions struct {
	registryPath string
	json         bool
}

// result is the machine-readable line emitted with --json.
type result struct {
	URL        string            `json:"url"`
	Score      float64           `json:"score"`
	RiskLevel  urlrisk.RiskLevel `json:"risk_level"`
	IsPhishing bool              `json:"is_phishing"`
	Factors    []string          `json:"factors"`
	Analysis   *urlrisk.Analysis `json:"analysis"`
}

func newAnalyzeCmd() *cobra.Command {
	opts := &analyzeOptions{}
	cmd := &cobra.Command{
		Use:   "analyze [url...]",
		Short: "Analyze URLs given as arguments or one per line on stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			urls := args
			if len(urls) == 0 {
				var err error
				if urls, err = readURLs(cmd.InOrStdin()); err != nil {
					return err
				}
			}
			if len(urls) == 0 {
				return fmt.Errorf("no URLs given")
			}
			return runAnalyze(cmd.OutOrStdout(), opts, urls)
		},
	}
	cmd.Flags().StringVar(&opts.registryPath, "registry", "", "registry file (.json, .yaml) replacing the built-in one")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print one JSON object per URL")
	return cmd
}

func runAnalyze(out io.Writer, opts *analyzeOptions, urls []string) error {
	reg, err := loadRegistry(opts.registryPath)
	if err != nil {
		return err
	}
	engine := urlrisk.New(reg)
	enc := json.NewEncoder(out)
	styles := newStyles(out)

	for _, raw := range urls {
		if err := service.ValidateURL(raw); err != nil {
			return fmt.Errorf("%q: %w", raw, err)
		}
		a := engine.AnalyzeURL(raw)
		r := result{
			URL:        raw,
			Score:      a.Assessment.Score,
			RiskLevel:  urlrisk.LevelFor(a.Assessment.Score),
			IsPhishing: urlrisk.IsPhishing(a.Assessment.Score),
			Factors:    a.Assessment.Factors,
			Analysis:   a,
		}
		if opts.json {
			if err := enc.Encode(r); err != nil {
				return err
			}
			continue
		}
		fmt.Fprintln(out, styles.render(r))
	}
	return nil
}

func readURLs(in io.Reader) ([]string, error) {
	var urls []string
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, sc.Err()
}
