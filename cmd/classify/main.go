package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/taperedworks/enquiry-tracker/internal/catalog"
	"github.com/taperedworks/enquiry-tracker/internal/classify"
	"github.com/taperedworks/enquiry-tracker/internal/common"
	"github.com/taperedworks/enquiry-tracker/internal/export"
	"github.com/taperedworks/enquiry-tracker/internal/extract"
	"github.com/taperedworks/enquiry-tracker/internal/llm/gemini"
	"github.com/taperedworks/enquiry-tracker/internal/match"
	"github.com/taperedworks/enquiry-tracker/internal/params"
)

// One-shot classification from the command line. Given a project name it prints the
// ranked candidates; given a selection it resolves the enquiry type and prints the
// reconciled parameters. A text file can be analyzed instead for the new-enquiry path.
func main() {
	var (
		name      = flag.String("name", "", "project name to classify")
		selection = flag.Int("select", -1, "index into the ranked matches; -1 means none of the above")
		textFile  = flag.String("file", "", "path to extracted enquiry text to analyze")
		mode      = flag.String("mode", "text", "analysis mode: text or json")
		outPath   = flag.String("out", "", "write the parameters as XLSX to this path")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	if *name == "" && *textFile == "" {
		fmt.Fprintln(os.Stderr, "usage: classify -name <project name> [-select N] | -file <text file> [-mode json] [-out params.xlsx]")
		os.Exit(2)
	}

	cfg := common.LoadConfig()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	set := params.New()
	enquiryType := classify.NewEnquiry
	fullResponse := ""

	if *name != "" {
		if cfg.Catalog.APIToken == "" {
			fatal("MONDAY_API_TOKEN env var is required")
		}
		client := catalog.NewClient(cfg.Catalog, logger)
		matcher := match.NewMatcher(client, cfg.Catalog.Threshold, cfg.Catalog.SinceDate, logger)
		classifier := classify.NewClassifier(matcher, client, logger)

		result, warning := classifier.Classify(ctx, *name)
		if warning != "" {
			fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
		}
		if len(result.Matches) == 0 {
			fmt.Println("no matches; treat as New Enquiry")
		}
		for i, cand := range result.Matches {
			fmt.Printf("[%d] %.3f  %s\n", i, cand.Similarity, cand.Title)
		}

		res, err := classifier.Resolve(ctx, result, *selection)
		if err != nil {
			fatal(err.Error())
		}
		if res.Warning != "" {
			fmt.Fprintf(os.Stderr, "warning: %s\n", res.Warning)
		}
		enquiryType = res.Type
		fmt.Printf("enquiry type: %s\n", res.Type)
		if res.Type == classify.Amendment {
			set = params.FromCatalogItem(res.Item, time.Now())
		}
	}

	if *textFile != "" {
		if cfg.LLM.APIKey == "" {
			fatal("GOOGLE_API_KEY env var is required")
		}
		text, err := os.ReadFile(*textFile)
		if err != nil {
			fatal(err.Error())
		}
		oracle, err := gemini.NewClient(ctx, cfg.LLM, logger)
		if err != nil {
			fatal(err.Error())
		}
		extractor := extract.NewService(oracle, oracle.Model(), logger)

		if *mode == "json" {
			var raw []byte
			set, raw, err = extractor.AnalyzeJSON(ctx, string(text), string(enquiryType))
			fullResponse = string(raw)
		} else {
			set, fullResponse, err = extractor.AnalyzeText(ctx, string(text), string(enquiryType))
		}
		if err != nil {
			fatal(err.Error())
		}
	}

	for _, entry := range set.Ordered() {
		fmt.Printf("%-22s %s\n", entry.Name+":", entry.Value)
	}

	if *outPath != "" {
		blob, err := export.NewService(logger).ParametersXLSX(set, fullResponse)
		if err != nil {
			fatal(err.Error())
		}
		if err := os.WriteFile(*outPath, blob, 0o644); err != nil {
			fatal(err.Error())
		}
		fmt.Printf("wrote %s (%d bytes)\n", *outPath, len(blob))
	}
}

func fatal(msg string) {
	fmt.Fprintln(os.Stderr, "ERROR: "+msg)
	os.Exit(1)
}
