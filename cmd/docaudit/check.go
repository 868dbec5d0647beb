package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/docaudit/internal/api"
	"github.com/jackzampolin/docaudit/internal/config"
	"github.com/jackzampolin/docaudit/internal/home"
	"github.com/jackzampolin/docaudit/internal/ingest"
	"github.com/jackzampolin/docaudit/internal/layout"
	"github.com/jackzampolin/docaudit/internal/pipeline"
	"github.com/jackzampolin/docaudit/internal/report"
)

var (
	pagesPath  string
	pdfPath    string
	labelsPath string
	withModel  bool
	saveReport bool
)

// checkOutput is the printed result: the aggregated report plus,
// optionally, the derived document model.
type checkOutput struct {
	Report report.Aggregated `json:"report" yaml:"report"`
	Model  any               `json:"document_model,omitempty" yaml:"document_model,omitempty"`
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run all structural quality checks over extracted page content",
	Long: `Check loads pre-extracted page content (--pages), optionally cross-checks
it against the source PDF (--pdf) and attaches ML layout labels
(--labels), then runs the full analysis pipeline.

Exit codes: 0 all checks passed, 1 checks failed, 2 configuration or
input error.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cm, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}
		cfg := cm.Get()

		var classifier layout.Classifier
		if labelsPath != "" {
			fs, err := layout.NewFileSource(labelsPath)
			if err != nil {
				return err
			}
			classifier = fs
		}

		p, err := pipeline.New(pipeline.Options{
			Config:     cfg,
			Classifier: classifier,
			Logger:     slog.Default(),
		})
		if err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		pages, err := ingest.LoadPages(pagesPath)
		if err != nil {
			return err
		}

		var extra []report.CheckReport
		if pdfPath != "" {
			urls, err := ingest.AnnotationURLs(pdfPath)
			if err != nil {
				return err
			}
			pages = ingest.MergeAnnotationURLs(pages, urls)

			extRep, err := ingest.VerifyPageCount(pdfPath, pages, report.SeverityError)
			if err != nil {
				return err
			}
			extra = append(extra, extRep)
		}

		run, err := p.Execute(cmd.Context(), pages, extra...)
		if err != nil {
			return err
		}

		out := checkOutput{Report: run.Report}
		if withModel {
			out.Model = run.Model
		}
		if err := api.Output(out); err != nil {
			return err
		}

		if saveReport {
			path, err := writeReport(run.Report)
			if err != nil {
				return err
			}
			slog.Info("saved run report", "path", path)
		}

		if !run.Report.AllOK {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().StringVar(&pagesPath, "pages", "", "extracted page content JSON file (required)")
	checkCmd.Flags().StringVar(&pdfPath, "pdf", "", "source PDF for cross-checks and annotation links")
	checkCmd.Flags().StringVar(&labelsPath, "labels", "", "ML layout label JSON file")
	checkCmd.Flags().BoolVar(&withModel, "with-model", false, "include the derived document model in output")
	checkCmd.Flags().BoolVar(&saveReport, "save", false, "save the report under ~/.docaudit/reports")
	_ = checkCmd.MarkFlagRequired("pages")
}

// writeReport persists the aggregated report under the docaudit home.
func writeReport(agg report.Aggregated) (string, error) {
	dir, err := home.New("")
	if err != nil {
		return "", err
	}
	if err := dir.EnsureExists(); err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(agg, "", "  ")
	if err != nil {
		return "", err
	}
	path := dir.ReportPath(agg.RunID)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to save report: %w", err)
	}
	return path, nil
}
