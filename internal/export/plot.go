package export

import (
	"fmt"
	"image/color"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// PlotSpectrum renders the electron spectrum as a log-log PNG plot.
// Points with non-positive density are skipped since they cannot be
// placed on a logarithmic axis.
func PlotSpectrum(path, title string, gamma, spectrum []float64) error {
	if len(gamma) != len(spectrum) {
		return fmt.Errorf("gamma and spectrum lengths differ: %d vs %d", len(gamma), len(spectrum))
	}

	pts := make(plotter.XYs, 0, len(gamma))
	for i := range gamma {
		if gamma[i] <= 0 || spectrum[i] <= 0 {
			continue
		}
		pts = append(pts, plotter.XY{X: gamma[i], Y: spectrum[i]})
	}
	if len(pts) < 2 {
		return fmt.Errorf("not enough positive points to plot (%d)", len(pts))
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Lorentz factor"
	p.Y.Label.Text = "electron density [cm^-3]"
	p.X.Scale = plot.LogScale{}
	p.Y.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	p.Add(line)

	return savePNG(p, 8, 6, path)
}

func savePNG(p *plot.Plot, widthIn, heightIn float64, path string) error {
	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(widthIn)*vg.Inch, vg.Length(heightIn)*vg.Inch),
		vgimg.UseDPI(150),
	)
	p.Draw(draw.New(c))

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: c}
	if _, err := png.WriteTo(f); err != nil {
		return err
	}
	return nil
}
