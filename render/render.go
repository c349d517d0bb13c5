// Package render rasterizes spectrogram views onto a pixel surface: power
// values are color-mapped through a selectable palette, drawn as a
// frequency-by-time cell grid with axis labels, and, for combined views,
// dashed segment dividers. Every call is a full redraw from the given view;
// the renderer holds no state between calls, and failures are contained to
// the call that raised them.
package render

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/neuroviz/eegview/logging"
	"github.com/neuroviz/eegview/spectrogram"
)

// Layout margins, in pixels.
const (
	marginLeft   = 48
	marginRight  = 8
	marginTop    = 18
	marginBottom = 24
)

var (
	background = color.RGBA{R: 12, G: 12, B: 16, A: 255}
	axisColor  = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	labelColor = color.RGBA{R: 220, G: 220, B: 220, A: 255}
	errorColor = color.RGBA{R: 235, G: 80, B: 80, A: 255}
)

// Options are the immutable per-call render settings. No package or renderer
// state backs them.
type Options struct {
	// ColorMap names one of the fixed palettes; unknown names fall back to
	// viridis.
	ColorMap string `json:"color_map"`
	// TimeRangePercent selects a contiguous sub-window of the view's time
	// axis by percentage of the sample count, not by absolute time.
	TimeRangePercent [2]float64 `json:"time_range_percent"`
	// Zoom scales drawn cell width/height. It does not change which samples
	// are drawn; cells may overlap or leave gaps at zoom != 1.
	Zoom float64 `json:"zoom"`
}

// DefaultOptions returns the full-window viridis view at zoom 1.
func DefaultOptions() Options {
	return Options{
		ColorMap:         Viridis.Name,
		TimeRangePercent: [2]float64{0, 100},
		Zoom:             1,
	}
}

// Renderer rasterizes views. It is stateless apart from its logger and safe
// for reuse across targets.
type Renderer struct {
	logger logging.Logger
}

// NewRenderer creates a renderer.
func NewRenderer() *Renderer {
	return &Renderer{
		logger: logging.WithFields(logging.Fields{
			"component": "raster_renderer",
		}),
	}
}

// Render draws a single-channel view onto target.
func (r *Renderer) Render(view *spectrogram.View, target Surface, opts Options) {
	if view == nil {
		r.RenderMessage(target, "no data available")
		return
	}
	r.render(view, nil, 0, target, opts)
}

// RenderCombined draws a combined multi-segment view onto target, with a
// dashed divider at every segment boundary inside the visible window.
func (r *Renderer) RenderCombined(view *spectrogram.CombinedView, target Surface, opts Options) {
	if view == nil {
		r.RenderMessage(target, "no data available")
		return
	}
	r.render(&view.View, view.SegmentBoundaries, view.Segments, target, opts)
}

// RenderMessage clears the target and draws a status message. Used for the
// degraded "no data" states and by the renderer's own failure containment.
func (r *Renderer) RenderMessage(target Surface, msg string) {
	target.Fill(background)
	_, h := target.Size()
	target.DrawText(10, h/2, msg, errorColor)
}

func (r *Renderer) render(view *spectrogram.View, boundaries []float64, segments int, target Surface, opts Options) {
	// One bad view must not crash a page of many visualizations: anything
	// thrown during rasterization is converted to an on-surface message.
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error(fmt.Errorf("%v", rec), "render failed", logging.Fields{
				"channel": string(view.Channel),
			})
			r.RenderMessage(target, "render error: "+fmt.Sprint(rec))
		}
	}()

	target.Fill(background)

	if msg, ok := validateView(view); !ok {
		r.logger.Warn("malformed view", logging.Fields{
			"channel": string(view.Channel),
			"reason":  msg,
		})
		r.RenderMessage(target, msg)
		return
	}

	if len(view.Frequencies) == 0 || len(view.Times) == 0 {
		r.RenderMessage(target, "no data for channel "+string(view.Channel))
		return
	}

	width, height := target.Size()
	plotW := width - marginLeft - marginRight
	plotH := height - marginTop - marginBottom
	if plotW < 1 || plotH < 1 {
		r.RenderMessage(target, "surface too small")
		return
	}

	start, end := visibleRange(len(view.Times), opts.TimeRangePercent)
	if end <= start {
		r.RenderMessage(target, "empty time window")
		return
	}

	times := view.Times[start:end]
	numT := end - start
	numF := len(view.Frequencies)

	// Color scaling is local to the visible window, not global to the
	// recording.
	minPower, maxPower := visibleExtent(view.Power, start, end)
	span := maxPower - minPower

	palette, ok := PaletteByName(opts.ColorMap)
	if !ok {
		palette = Viridis
	}

	zoom := opts.Zoom
	if zoom <= 0 {
		zoom = 1
	}

	baseW := float64(plotW) / float64(numT)
	baseH := float64(plotH) / float64(numF)
	cellW := max(1, int(baseW*zoom+0.5))
	cellH := max(1, int(baseH*zoom+0.5))

	// Row 0 is the lowest frequency and draws at the bottom.
	for f := 0; f < numF; f++ {
		y := marginTop + plotH - int(float64(f+1)*baseH+0.5)
		row := view.Power[f]
		for t := 0; t < numT; t++ {
			v := row[start+t]
			norm := 0.0
			if span != 0 {
				norm = (v - minPower) / span
			}
			x := marginLeft + int(float64(t)*baseW+0.5)
			target.FillRect(x, y, cellW, cellH, palette.At(norm))
		}
	}

	r.drawAxes(target, plotW, plotH)
	r.drawTimeTicks(target, times, baseW, plotH)
	r.drawFreqTicks(target, view.Frequencies, baseH, plotH)

	if segments > 0 {
		r.drawBoundaries(target, boundaries, times, baseW, plotH)
		target.DrawText(marginLeft+4, marginTop-5,
			fmt.Sprintf("combined view: %d segments", segments), labelColor)
	}
}

func validateView(view *spectrogram.View) (string, bool) {
	if len(view.Power) != len(view.Frequencies) {
		return "malformed view: power rows do not match frequency bins", false
	}
	for _, row := range view.Power {
		if len(row) != len(view.Times) {
			return "malformed view: ragged power rows", false
		}
	}
	return "", true
}

// visibleRange maps a [lo, hi] percent pair onto [floor(n*lo/100),
// ceil(n*hi/100)) sample indexes.
func visibleRange(n int, rangePercent [2]float64) (int, int) {
	lo := clampPercent(rangePercent[0])
	hi := clampPercent(rangePercent[1])
	if hi < lo {
		lo, hi = hi, lo
	}
	start := int(math.Floor(float64(n) * lo / 100))
	end := int(math.Ceil(float64(n) * hi / 100))
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	return start, end
}

func clampPercent(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func visibleExtent(power [][]float64, start, end int) (float64, float64) {
	minPower := math.Inf(1)
	maxPower := math.Inf(-1)
	for _, row := range power {
		window := row[start:end]
		if len(window) == 0 {
			continue
		}
		minPower = math.Min(minPower, floats.Min(window))
		maxPower = math.Max(maxPower, floats.Max(window))
	}
	if math.IsInf(minPower, 1) {
		return 0, 0
	}
	return minPower, maxPower
}

func (r *Renderer) drawAxes(target Surface, plotW, plotH int) {
	target.FillRect(marginLeft, marginTop+plotH, plotW, 1, axisColor)
	target.FillRect(marginLeft-1, marginTop, 1, plotH+1, axisColor)
}

// drawTimeTicks labels the visible time axis at an adaptive stride, values
// taken directly from the sliced axis.
func (r *Renderer) drawTimeTicks(target Surface, times []float64, baseW float64, plotH int) {
	stride := len(times) / 7
	if stride < 1 {
		stride = 1
	}
	_, height := target.Size()
	for t := 0; t < len(times); t += stride {
		x := marginLeft + int(float64(t)*baseW+0.5)
		target.FillRect(x, marginTop+plotH, 1, 4, axisColor)
		target.DrawText(x, height-8, formatTick(times[t]), labelColor)
	}
}

func (r *Renderer) drawFreqTicks(target Surface, freqs []float64, baseH float64, plotH int) {
	stride := len(freqs) / 5
	if stride < 1 {
		stride = 1
	}
	for f := 0; f < len(freqs); f += stride {
		y := marginTop + plotH - int(float64(f+1)*baseH+0.5)
		target.FillRect(marginLeft-4, y, 4, 1, axisColor)
		target.DrawText(2, y+4, formatTick(freqs[f]), labelColor)
	}
}

// drawBoundaries draws a dashed vertical divider at each segment boundary
// coordinate that falls inside the visible window.
func (r *Renderer) drawBoundaries(target Surface, boundaries, times []float64, baseW float64, plotH int) {
	if len(times) == 0 {
		return
	}
	first, last := times[0], times[len(times)-1]
	for _, b := range boundaries {
		if b < first || b > last {
			continue
		}
		idx := 0
		for idx < len(times) && times[idx] < b {
			idx++
		}
		x := marginLeft + int(float64(idx)*baseW+0.5)
		for y := marginTop; y < marginTop+plotH; y += 8 {
			target.FillRect(x, y, 1, 4, axisColor)
		}
	}
}

func formatTick(v float64) string {
	return fmt.Sprintf("%.4g", v)
}
