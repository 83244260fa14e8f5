// Package viz renders the comparison artifacts: ROC curves, the
// coefficient magnitude plot and the sentiment word clouds. Everything is
// drawn with gonum/plot and saved as PNG files.
package viz

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/dominguezus/imdbsentiment/pkg/eval"
)

// palette cycles through the per-model line colors.
var palette = []color.RGBA{
	{R: 31, G: 119, B: 180, A: 255},
	{R: 255, G: 127, B: 14, A: 255},
	{R: 44, G: 160, B: 44, A: 255},
	{R: 214, G: 39, B: 40, A: 255},
	{R: 148, G: 103, B: 189, A: 255},
}

// PlotROC draws one line per curve plus the chance diagonal and saves the
// chart to path. Legend entries carry each model's AUC.
func PlotROC(curves []eval.Curve, path string) error {
	if len(curves) == 0 {
		return fmt.Errorf("viz: no curves to plot")
	}

	p := plot.New()
	p.Title.Text = "ROC comparison"
	p.X.Label.Text = "False positive rate"
	p.Y.Label.Text = "True positive rate"
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1

	// Chance diagonal.
	diag, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: 1, Y: 1}})
	if err != nil {
		return fmt.Errorf("viz: build diagonal: %w", err)
	}
	diag.Color = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	diag.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(diag)

	for i, c := range curves {
		pts := make(plotter.XYs, len(c.FPR))
		for j := range c.FPR {
			pts[j].X = c.FPR[j]
			pts[j].Y = c.TPR[j]
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("viz: build curve %s: %w", c.Model, err)
		}
		line.Color = palette[i%len(palette)]
		line.Width = vg.Points(2)
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("%s (AUC %.3f)", c.Model, c.AUC), line)
	}

	if err := p.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("viz: save roc plot: %w", err)
	}
	return nil
}
