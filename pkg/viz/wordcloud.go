package viz

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/dominguezus/imdbsentiment/pkg/eval"
)

var (
	positiveColor = color.RGBA{R: 20, G: 120, B: 40, A: 255}
	negativeColor = color.RGBA{R: 180, G: 30, B: 30, A: 255}
)

const (
	minFontPt = 9
	maxFontPt = 30
	cloudCols = 5
)

// WordCloud lays the coefficient terms out on a grid with font size
// proportional to |weight| and color by sentiment, then saves the plot to
// path. Coefficients are expected in the order TopCoefficients returns,
// so the biggest words come first.
func WordCloud(coeffs []eval.Coefficient, title, path string) error {
	if len(coeffs) == 0 {
		return fmt.Errorf("viz: no coefficients to plot")
	}

	minW, maxW := math.Abs(coeffs[0].Weight), math.Abs(coeffs[0].Weight)
	for _, c := range coeffs {
		w := math.Abs(c.Weight)
		if w < minW {
			minW = w
		}
		if w > maxW {
			maxW = w
		}
	}

	xys := make(plotter.XYs, len(coeffs))
	labels := make([]string, len(coeffs))
	for i, c := range coeffs {
		xys[i].X = float64(i % cloudCols)
		xys[i].Y = -float64(i / cloudCols)
		labels[i] = c.Feature
	}

	l, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return fmt.Errorf("viz: build labels: %w", err)
	}
	for i, c := range coeffs {
		size := vg.Length(maxFontPt)
		if maxW > minW {
			frac := (math.Abs(c.Weight) - minW) / (maxW - minW)
			size = vg.Points(minFontPt + frac*(maxFontPt-minFontPt))
		}
		l.TextStyle[i].Font.Size = size
		if c.Sentiment == "positive" {
			l.TextStyle[i].Color = positiveColor
		} else {
			l.TextStyle[i].Color = negativeColor
		}
	}

	p := plot.New()
	p.Title.Text = title
	p.HideAxes()
	p.X.Min, p.X.Max = -1, cloudCols
	p.Y.Min, p.Y.Max = -float64(len(coeffs)/cloudCols) - 1, 1
	p.Add(l)

	if err := p.Save(8*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("viz: save word cloud: %w", err)
	}
	return nil
}

// PlotCoefficients draws the weights by rank as a scatter, positive terms
// above zero and negative below, and saves it to path.
func PlotCoefficients(coeffs []eval.Coefficient, path string) error {
	if len(coeffs) == 0 {
		return fmt.Errorf("viz: no coefficients to plot")
	}

	var pos, neg plotter.XYs
	for i, c := range coeffs {
		pt := plotter.XY{X: float64(i), Y: c.Weight}
		if c.Sentiment == "positive" {
			pos = append(pos, pt)
		} else {
			neg = append(neg, pt)
		}
	}

	p := plot.New()
	p.Title.Text = "Linear model coefficients by rank"
	p.X.Label.Text = "Rank by |weight|"
	p.Y.Label.Text = "Weight"

	if len(pos) > 0 {
		s, err := plotter.NewScatter(pos)
		if err != nil {
			return fmt.Errorf("viz: build scatter: %w", err)
		}
		s.Color = positiveColor
		p.Add(s)
		p.Legend.Add("positive", s)
	}
	if len(neg) > 0 {
		s, err := plotter.NewScatter(neg)
		if err != nil {
			return fmt.Errorf("viz: build scatter: %w", err)
		}
		s.Color = negativeColor
		p.Add(s)
		p.Legend.Add("negative", s)
	}

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("viz: save coefficient plot: %w", err)
	}
	return nil
}
