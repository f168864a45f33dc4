package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/nvr-ai/go-eval/metrics"
)

// CurvePlotter renders one precision/recall curve PNG per evaluated
// class into OutputDir.
type CurvePlotter struct {
	OutputDir string

	// Err holds the first plotting failure. The Reporter interface
	// carries no error channel, so callers inspect Err after the run.
	Err error
}

// ClassEvaluated writes <class>.png under OutputDir.
func (p *CurvePlotter) ClassEvaluated(class string, result metrics.ClassResult) {
	if err := p.plot(class, result); err != nil && p.Err == nil {
		p.Err = err
	}
}

// EvaluationDone implements metrics.Reporter; there is nothing to
// render for the summary.
func (p *CurvePlotter) EvaluationDone(meanAP float64) {}

func (p *CurvePlotter) plot(class string, result metrics.ClassResult) error {
	if err := os.MkdirAll(p.OutputDir, 0o755); err != nil {
		return errors.Wrap(err, "create plot directory")
	}

	pl := plot.New()
	pl.Title.Text = fmt.Sprintf("%s (AP %.3f)", class, result.AP)
	pl.X.Label.Text = "Recall"
	pl.Y.Label.Text = "Precision"
	pl.X.Min, pl.X.Max = 0.0, 1.0
	pl.Y.Min, pl.Y.Max = 0.0, 1.05

	pts := make(plotter.XYs, len(result.Recall))
	for i := range result.Recall {
		pts[i] = plotter.XY{X: result.Recall[i], Y: result.Precision[i]}
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return errors.Wrapf(err, "build PR curve for class %q", class)
	}
	line.Width = vg.Points(3)
	pl.Add(line)

	file := filepath.Join(p.OutputDir, class+".png")
	if err := pl.Save(6*vg.Inch, 6*vg.Inch, file); err != nil {
		return errors.Wrapf(err, "save %s", file)
	}
	return nil
}
