// Package viewer orchestrates one viewing session: it loads a recording
// buffer (the pipeline's only suspend point), builds the immutable parsed
// recording, and drives synchronous project/combine/render passes against a
// target surface. A session owns no UI; channel, palette, zoom and offset
// selection arrive as per-call view requests.
package viewer

import (
	"context"
	"fmt"
	"sync"

	"github.com/neuroviz/eegview/logging"
	"github.com/neuroviz/eegview/recording"
	"github.com/neuroviz/eegview/render"
	"github.com/neuroviz/eegview/spectrogram"
)

// Fetcher retrieves a recording buffer from wherever it lives (file, remote
// object store, upload).
type Fetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// FetchFunc adapts a function to the Fetcher interface.
type FetchFunc func(ctx context.Context) ([]byte, error)

func (f FetchFunc) Fetch(ctx context.Context) ([]byte, error) {
	return f(ctx)
}

// ViewRequest selects what to draw. More than one offset renders the
// combined multi-segment view.
type ViewRequest struct {
	Channel          recording.ChannelID
	ColorMap         string
	TimeRangePercent [2]float64
	Zoom             float64
	Offsets          []float64
}

// Session holds one loaded recording and renders views of it. The parsed
// recording is read-only after construction, so concurrent views may share
// it by reference; renders themselves run to completion on the calling
// goroutine.
type Session struct {
	cfg      *Config
	builder  *recording.Builder
	renderer *render.Renderer
	logger   logging.Logger

	mu         sync.Mutex
	generation uint64
	rec        *recording.ParsedRecording
}

// NewSession creates a session. A nil config uses DefaultConfig.
func NewSession(cfg *Config) *Session {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Session{
		cfg:      cfg,
		builder:  recording.NewBuilder(cfg.ChannelIDs()...),
		renderer: render.NewRenderer(),
		logger: logging.WithFields(logging.Fields{
			"component": "viewer_session",
		}),
	}
}

// Load fetches, decodes and builds a recording. The fetch is the only
// suspend point; when a newer Load has started before this one's fetch
// returns, the stale result is discarded by generation identity, not by any
// assumption about fetch ordering. Fetch and decode failures leave any
// previously loaded recording untouched.
func (s *Session) Load(ctx context.Context, fetcher Fetcher) error {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	data, err := fetcher.Fetch(ctx)
	if err != nil {
		s.logger.Warn("recording fetch failed; view degrades to no data", logging.Fields{
			"error": err.Error(),
		})
		return fmt.Errorf("fetch recording: %w", err)
	}

	table, err := recording.Decode(data)
	if err != nil {
		return fmt.Errorf("load recording: %w", err)
	}
	rec, err := s.builder.Build(table)
	if err != nil {
		return fmt.Errorf("load recording: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		s.logger.Debug("discarding stale fetch result", logging.Fields{
			"generation": gen,
			"current":    s.generation,
		})
		return nil
	}
	s.rec = rec
	s.logger.Info("recording loaded", logging.Fields{
		"patient_id": rec.Metadata.PatientID,
		"record_id":  rec.Metadata.RecordID,
		"frames":     rec.Metadata.TotalFrames,
	})
	return nil
}

// Recording returns the currently loaded recording, or nil before the first
// successful load.
func (s *Session) Recording() *recording.ParsedRecording {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec
}

// Render draws the requested view onto target. Every call is a full redraw;
// failures degrade to an on-surface message and never escape this call.
func (s *Session) Render(target render.Surface, req ViewRequest) {
	rec := s.Recording()
	if rec == nil {
		s.renderer.RenderMessage(target, "no data available")
		return
	}

	opts := s.options(req)

	if len(req.Offsets) > 1 {
		combined, err := spectrogram.Combine(rec, req.Channel, req.Offsets, nil)
		if err != nil {
			s.logger.Warn("combine failed", logging.Fields{
				"channel": string(req.Channel),
				"error":   err.Error(),
			})
			s.renderer.RenderMessage(target, "no data for channel "+string(req.Channel))
			return
		}
		s.renderer.RenderCombined(combined, target, opts)
		return
	}

	view, err := spectrogram.Project(rec, req.Channel)
	if err != nil {
		s.logger.Warn("projection failed", logging.Fields{
			"channel": string(req.Channel),
			"error":   err.Error(),
		})
		s.renderer.RenderMessage(target, "no data for channel "+string(req.Channel))
		return
	}
	s.renderer.Render(view, target, opts)
}

func (s *Session) options(req ViewRequest) render.Options {
	opts := render.DefaultOptions()
	opts.ColorMap = s.cfg.DefaultColorMap
	if req.ColorMap != "" {
		opts.ColorMap = req.ColorMap
	}
	if req.TimeRangePercent != [2]float64{} {
		opts.TimeRangePercent = req.TimeRangePercent
	}
	if req.Zoom > 0 {
		opts.Zoom = req.Zoom
	}
	return opts
}
