package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/nvr-ai/go-eval/boxes"
	"github.com/nvr-ai/go-eval/dataset"
	"github.com/nvr-ai/go-eval/metrics"
	"github.com/nvr-ai/go-eval/report"
)

func main() {
	var (
		input     = flag.String("input", "", "Path to a detection dump (.json) or a directory of dumps")
		outputDir = flag.String("output", "./eval_results", "Output directory for plots and the summary")
		iouThresh = flag.Float64("iou", 0.25, "IoU threshold for matching predictions to ground truth")
		use07     = flag.Bool("use-07", false, "Use the VOC07 11-point AP metric")
		workers   = flag.Int("workers", 1, "Number of classes to evaluate concurrently")
		plots     = flag.Bool("plots", true, "Render one PR-curve PNG per class")
	)
	flag.Parse()

	if *input == "" {
		log.Fatal("Input path is required (-input)")
	}

	set, err := load(*input)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	reporters := report.MultiReporter{&report.LogReporter{}}

	var plotter *report.CurvePlotter
	if *plots {
		plotter = &report.CurvePlotter{OutputDir: filepath.Join(*outputDir, "ap_curves")}
		reporters = append(reporters, plotter)
	}

	opts := metrics.Options{
		IoU:          boxes.IoU,
		IoUThreshold: *iouThresh,
		Use11Point:   *use07,
		Workers:      *workers,
		Reporter:     reporters,
	}

	results, err := metrics.EvalDetection(set.Predictions(), set.GroundTruth(), opts)
	if err != nil {
		log.Fatalf("Evaluation failed: %v", err)
	}

	if plotter != nil && plotter.Err != nil {
		log.Fatalf("Failed to render PR curves: %v", plotter.Err)
	}

	summary := report.NewSummary(results, opts)
	if err := report.WriteSummary(filepath.Join(*outputDir, "summary.json"), summary); err != nil {
		log.Fatalf("Failed to write summary: %v", err)
	}
}

func load(path string) (*dataset.Set, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return dataset.LoadDir(path)
	}
	return dataset.Load(path)
}
