package norm_compare

import (
	"fmt"
	"image/color"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgpdf"

	"prot_norm_go/experiment"
)

// WriteComparisonPDF renders the normalization comparison report: one
// page of per-sample box plots for each method, then a closing page
// comparing pooled intra-group CV across methods. The PDF is the
// artifact the human inspects at the manual selection gate.
func WriteComparisonPDF(path string, methods []string, variants map[string]*experiment.Matrix, samples []experiment.Sample, cv map[string]float64) error {
	var pages []*plot.Plot

	labels := make([]string, len(samples))
	for i, s := range samples {
		labels[i] = s.Label
	}

	for _, method := range methods {
		m := variants[method]
		p, err := boxPlotPage(method, m, labels)
		if err != nil {
			return fmt.Errorf("failed to plot %s distributions: %w", method, err)
		}
		pages = append(pages, p)
	}

	cvPage, err := cvBarPage(methods, cv)
	if err != nil {
		return fmt.Errorf("failed to plot CV comparison: %w", err)
	}
	pages = append(pages, cvPage)

	return writePDF(path, pages)
}

func boxPlotPage(method string, m *experiment.Matrix, labels []string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Sample distributions (%s)", method)
	p.Y.Label.Text = "log2 abundance"

	for j := range m.SampleNames {
		vals := plotter.Values(validColumn(m, j))
		if len(vals) == 0 {
			continue
		}
		box, err := plotter.NewBoxPlot(vg.Points(18), float64(j), vals)
		if err != nil {
			return nil, err
		}
		p.Add(box)
	}
	p.NominalX(labels...)
	return p, nil
}

func cvBarPage(methods []string, cv map[string]float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Pooled intra-group CV by method"
	p.Y.Label.Text = "Mean CV (%)"

	vals := make(plotter.Values, len(methods))
	for i, m := range methods {
		vals[i] = cv[m]
	}
	bars, err := plotter.NewBarChart(vals, vg.Points(30))
	if err != nil {
		return nil, err
	}
	bars.Color = color.RGBA{R: 50, G: 100, B: 200, A: 255}
	p.Add(bars)
	p.NominalX(methods...)
	return p, nil
}

// writePDF draws each plot on its own page of one PDF file.
func writePDF(path string, pages []*plot.Plot) error {
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
