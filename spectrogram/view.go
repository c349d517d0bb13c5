// Package spectrogram derives renderable time-frequency views from a parsed
// recording: single-channel projections, average-power reductions and
// multi-segment combined views. Views are cheap transients recomputed per
// render; they share nothing mutable with the source recording.
package spectrogram

import "github.com/neuroviz/eegview/recording"

// View is a single channel's spectrogram in rasterization layout:
// Power[f][t], transposed relative to the recording's [t][f] storage.
// Frequencies ascend.
type View struct {
	Times       []float64           `json:"times"`
	Frequencies []float64           `json:"frequencies"`
	Power       [][]float64         `json:"power"`
	Metadata    recording.Metadata  `json:"metadata"`
	Channel     recording.ChannelID `json:"channel"`
}

// CombinedView concatenates several time-offset segments of one channel on a
// shared extended time axis. SegmentBoundaries holds the combined-axis start
// coordinate of every segment after the first, for divider rendering.
type CombinedView struct {
	View
	SegmentBoundaries []float64 `json:"segment_boundaries"`
	Segments          int       `json:"segments"`
}
