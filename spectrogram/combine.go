package spectrogram

import (
	"fmt"
	"slices"

	"github.com/neuroviz/eegview/logging"
	"github.com/neuroviz/eegview/recording"
)

// SegmentSource supplies the spectrogram view backing one segment of a
// combined view, keyed by channel and start-time offset. It is the seam that
// lets a loader-backed per-segment source replace the default reuse policy
// without touching Combine's contract.
type SegmentSource interface {
	Segment(id recording.ChannelID, offset float64) (*View, error)
}

// RecordingSource returns the default segment source: every offset is served
// from the one loaded recording, with a small offset-derived scale applied so
// segments stay visually distinguishable. This is a placeholder policy until
// per-segment backing data is available from the upstream recording loader.
func RecordingSource(rec *recording.ParsedRecording) SegmentSource {
	return &reuseSource{rec: rec}
}

type reuseSource struct {
	rec *recording.ParsedRecording
}

func (s *reuseSource) Segment(id recording.ChannelID, offset float64) (*View, error) {
	view, err := Project(s.rec, id)
	if err != nil {
		return nil, err
	}
	if offset != 0 {
		scale := 1 + offset/1000
		for _, row := range view.Power {
			for t := range row {
				row[t] *= scale
			}
		}
	}
	return view, nil
}

// Combine concatenates the channel's segments at the given offsets onto one
// extended time axis. Offsets are sorted ascending; each segment's local
// axis is appended shifted by the running cumulative offset, which then
// advances by the segment's last local time plus a fixed 1-unit gap. The gap
// keeps segment boundaries visually distinct on the shared axis; it is not a
// reconstruction of absolute recording time.
//
// A nil src uses RecordingSource(rec). Empty offsets yield ErrEmptyOffsets.
func Combine(rec *recording.ParsedRecording, id recording.ChannelID, offsets []float64, src SegmentSource) (*CombinedView, error) {
	if len(offsets) == 0 {
		return nil, ErrEmptyOffsets
	}
	if src == nil {
		src = RecordingSource(rec)
	}

	sorted := slices.Clone(offsets)
	slices.Sort(sorted)

	combined := &CombinedView{Segments: len(sorted)}
	cumulative := 0.0

	for i, offset := range sorted {
		seg, err := src.Segment(id, offset)
		if err != nil {
			return nil, err
		}

		if i == 0 {
			combined.Channel = seg.Channel
			combined.Metadata = seg.Metadata
			combined.Frequencies = seg.Frequencies
			combined.Power = make([][]float64, len(seg.Frequencies))
		} else {
			if len(seg.Frequencies) != len(combined.Frequencies) {
				return nil, fmt.Errorf("segment at offset %v has %d frequency bins, want %d",
					offset, len(seg.Frequencies), len(combined.Frequencies))
			}
			if len(seg.Times) > 0 {
				combined.SegmentBoundaries = append(combined.SegmentBoundaries, cumulative+seg.Times[0])
			}
		}

		for _, t := range seg.Times {
			combined.Times = append(combined.Times, t+cumulative)
		}
		for f := range combined.Power {
			combined.Power[f] = append(combined.Power[f], seg.Power[f]...)
		}

		if len(seg.Times) > 0 {
			cumulative += seg.Times[len(seg.Times)-1] + 1
		} else {
			cumulative += 1
		}
	}

	logging.Debug("combined segments", logging.Fields{
		"channel":  string(id),
		"segments": combined.Segments,
		"frames":   len(combined.Times),
	})

	return combined, nil
}
