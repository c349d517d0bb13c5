package spectrogram

import (
	"gonum.org/v1/gonum/stat"

	"github.com/neuroviz/eegview/recording"
)

// Project transposes one channel's [time][frequency] matrix into the
// [frequency][time] layout the renderer consumes. Returns
// *InvalidChannelError when the channel is not in the recording. An empty
// channel projects to an empty view, not an error.
func Project(rec *recording.ParsedRecording, id recording.ChannelID) (*View, error) {
	series, ok := rec.Channel(id)
	if !ok {
		return nil, &InvalidChannelError{Channel: id}
	}

	n := len(rec.Times)
	f := len(series.Frequencies)

	view := &View{
		Times:       make([]float64, n),
		Frequencies: make([]float64, f),
		Power:       make([][]float64, f),
		Metadata:    rec.Metadata,
		Channel:     id,
	}
	copy(view.Times, rec.Times)
	copy(view.Frequencies, series.Frequencies)

	for fi := 0; fi < f; fi++ {
		view.Power[fi] = make([]float64, n)
	}
	for t, row := range series.Power {
		for fi, v := range row {
			view.Power[fi][t] = v
		}
	}

	return view, nil
}

// AveragePower computes, per frequency bin, the arithmetic mean of the
// channel's power over t in [start, end] inclusive. Bounds outside
// [0, frames) or an inverted range yield a *RangeError.
func AveragePower(rec *recording.ParsedRecording, id recording.ChannelID, start, end int) ([]float64, error) {
	series, ok := rec.Channel(id)
	if !ok {
		return nil, &InvalidChannelError{Channel: id}
	}

	n := len(series.Power)
	if start < 0 || end >= n || start > end {
		return nil, &RangeError{Start: start, End: end, Frames: n}
	}

	f := len(series.Frequencies)
	means := make([]float64, f)
	window := make([]float64, 0, end-start+1)
	for fi := 0; fi < f; fi++ {
		window = window[:0]
		for t := start; t <= end; t++ {
			window = append(window, series.Power[t][fi])
		}
		means[fi] = stat.Mean(window, nil)
	}
	return means, nil
}
