package dea_runner

import (
	"fmt"
	"image/color"
	"math"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgpdf"
)

// WriteSummaryPDF renders the DEA statistical summary: one volcano plot
// per contrast, then a pooled p-value histogram. A flat histogram with
// a spike near zero is the shape a healthy experiment produces; anything
// else is worth a second look before trusting the significance calls.
func WriteSummaryPDF(path string, r *Results, fdrCutoff, minLog2FC float64) error {
	var pages []*plot.Plot

	for k, c := range r.Contrasts {
		p, err := volcanoPage(r, k, c.String(), fdrCutoff, minLog2FC)
		if err != nil {
			return fmt.Errorf("failed to plot volcano for %s: %w", c, err)
		}
		pages = append(pages, p)
	}

	hist, err := pValuePage(r)
	if err != nil {
		return fmt.Errorf("failed to plot p-value histogram: %w", err)
	}
	if hist != nil {
		pages = append(pages, hist)
	}
	if len(pages) == 0 {
		// No contrasts and no p-values: nothing to draw, skip the file.
		return nil
	}

	c := vgpdf.New(10*vg.Inch, 6*vg.Inch)
	for i, p := range pages {
		if i > 0 {
			c.NextPage()
		}
		p.Draw(draw.New(c))
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := c.WriteTo(f); err != nil {
		return err
	}
	return nil
}

func volcanoPage(r *Results, k int, name string, fdrCutoff, minLog2FC float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Volcano: %s (FDR <= %g, |log2FC| >= %g)", name, fdrCutoff, minLog2FC)
	p.X.Label.Text = "log2 fold change"
	p.Y.Label.Text = "-log10 FDR"
	p.Add(plotter.NewGrid())

	var insig, sig plotter.XYs
	for i := range r.Stats {
		st := r.Stats[i][k]
		if !st.Tested || math.IsNaN(st.Log2FC) || math.IsNaN(st.FDR) {
			continue
		}
		y := -math.Log10(math.Max(st.FDR, 1e-300))
		pt := plotter.XY{X: st.Log2FC, Y: y}
		if st.Significant {
			sig = append(sig, pt)
		} else {
			insig = append(insig, pt)
		}
	}

	if len(insig) > 0 {
		s, err := plotter.NewScatter(insig)
		if err != nil {
			return nil, err
		}
		s.GlyphStyle.Color = color.RGBA{R: 150, G: 150, B: 150, A: 255}
		s.GlyphStyle.Radius = vg.Points(1.5)
		p.Add(s)
	}
	if len(sig) > 0 {
		s, err := plotter.NewScatter(sig)
		if err != nil {
			return nil, err
		}
		s.GlyphStyle.Color = color.RGBA{R: 220, G: 50, B: 50, A: 255}
		s.GlyphStyle.Radius = vg.Points(2)
		p.Add(s)
		p.Legend.Add("significant", s)
		p.Legend.Top = true
	}
	return p, nil
}

func pValuePage(r *Results) (*plot.Plot, error) {
	var ps plotter.Values
	for i := range r.Stats {
		for k := range r.Contrasts {
			if v := r.Stats[i][k].PValue; !math.IsNaN(v) {
				ps = append(ps, v)
			}
		}
	}
	if len(ps) == 0 {
		return nil, nil
	}

	p := plot.New()
	p.Title.Text = "P-value distribution (all contrasts)"
	p.X.Label.Text = "p-value"
	p.Y.Label.Text = "Feature count"

	h, err := plotter.NewHist(ps, 20)
	if err != nil {
		return nil, err
	}
	h.FillColor = color.RGBA{R: 100, G: 140, B: 220, A: 255}
	p.Add(h)
	return p, nil
}
