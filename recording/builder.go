package recording

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/neuroviz/eegview/logging"
)

const (
	timeColumn      = "time"
	defaultDuration = 10.0
)

// Builder reorganizes a decoded columnar table into a ParsedRecording. The
// known channel set drives column classification; columns whose prefix does
// not match a known channel are ignored.
type Builder struct {
	channels []ChannelID
	logger   logging.Logger
}

// NewBuilder creates a builder for the given channel set. With no arguments
// the standard quadrant leads are used.
func NewBuilder(channels ...ChannelID) *Builder {
	if len(channels) == 0 {
		channels = DefaultChannels()
	}
	return &Builder{
		channels: channels,
		logger: logging.WithFields(logging.Fields{
			"component": "tensor_builder",
		}),
	}
}

type freqColumn struct {
	freq float64
	col  int
}

// Build constructs the time/frequency/channel tensor from a columnar table.
//
// Power columns are discovered by a two-pass scan: column names are
// classified once against the "<channel>_<frequency>" convention, building a
// per-channel index before any row access. Each channel's columns are then
// sorted ascending by frequency; that ordering defines both the Frequencies
// slice and the column order of Power. A channel with zero matched columns
// yields an empty series, never an error.
func (b *Builder) Build(table *ColumnarTable) (*ParsedRecording, error) {
	if table == nil {
		return nil, fmt.Errorf("nil table")
	}

	n := table.NumRows()
	times := b.timeAxis(table, n)

	// First pass: classify columns by name.
	matched := make(map[ChannelID][]freqColumn, len(b.channels))
	for colIdx, col := range table.Columns() {
		if col.Name == timeColumn {
			continue
		}
		for _, id := range b.channels {
			prefix := string(id) + "_"
			if !strings.HasPrefix(col.Name, prefix) {
				continue
			}
			freq, err := strconv.ParseFloat(col.Name[len(prefix):], 64)
			if err != nil {
				// Unparseable frequency suffix: silently skipped.
				break
			}
			matched[id] = append(matched[id], freqColumn{freq: freq, col: colIdx})
			break
		}
	}

	// Second pass: order by frequency and fill the per-channel tensors.
	channels := make(map[ChannelID]*ChannelSeries, len(b.channels))
	columns := table.Columns()
	for _, id := range b.channels {
		cols := matched[id]
		sort.SliceStable(cols, func(i, j int) bool { return cols[i].freq < cols[j].freq })
		cols = dedupeFrequencies(b.logger, id, cols)

		series := &ChannelSeries{
			Frequencies: make([]float64, len(cols)),
			Power:       make([][]float64, n),
		}
		for f, fc := range cols {
			series.Frequencies[f] = fc.freq
		}
		for t := 0; t < n; t++ {
			series.Power[t] = make([]float64, len(cols))
			for f, fc := range cols {
				series.Power[t][f] = columns[fc.col].Values[t]
			}
		}
		channels[id] = series
	}

	rec := &ParsedRecording{
		Times:    times,
		Channels: channels,
		Metadata: b.metadata(table, times),
	}

	b.logger.Debug("built recording tensor", logging.Fields{
		"frames":     n,
		"channels":   len(channels),
		"patient_id": rec.Metadata.PatientID,
		"record_id":  rec.Metadata.RecordID,
	})

	return rec, nil
}

// timeAxis reads the time column, or synthesizes an evenly spaced axis from 0
// to the declared duration (10s default) when the column is absent.
func (b *Builder) timeAxis(table *ColumnarTable, n int) []float64 {
	if col, ok := table.Column(timeColumn); ok {
		times := make([]float64, len(col.Values))
		copy(times, col.Values)
		return times
	}

	duration := defaultDuration
	if v, ok := table.Lookup("duration"); ok {
		if d, err := strconv.ParseFloat(v, 64); err == nil {
			duration = d
		}
	}

	times := make([]float64, n)
	if n > 1 {
		for i := range times {
			times[i] = duration * float64(i) / float64(n-1)
		}
	}
	b.logger.Debug("no time column; synthesized axis", logging.Fields{
		"frames":   n,
		"duration": duration,
	})
	return times
}

func (b *Builder) metadata(table *ColumnarTable, times []float64) Metadata {
	md := Metadata{TotalFrames: len(times)}
	md.PatientID, _ = table.Lookup("patient_id")
	md.RecordID, _ = table.Lookup("record_id")

	// Consecutive samples are assumed to be spaced in milliseconds.
	if len(times) > 1 && times[1] != times[0] {
		md.SamplingRate = 1000 / (times[1] - times[0])
	} else if v, ok := table.Lookup("sampling_rate"); ok {
		if sr, err := strconv.ParseFloat(v, 64); err == nil {
			md.SamplingRate = sr
		}
	}

	// Degenerate axes (0 or 1 frames) leave duration at 0; defined, not an error.
	if len(times) > 1 {
		md.Duration = times[len(times)-1] - times[0]
	}
	return md
}

func dedupeFrequencies(logger logging.Logger, id ChannelID, cols []freqColumn) []freqColumn {
	if len(cols) < 2 {
		return cols
	}
	out := cols[:1]
	for _, fc := range cols[1:] {
		if fc.freq == out[len(out)-1].freq {
			logger.Warn("duplicate frequency column skipped", logging.Fields{
				"channel":   string(id),
				"frequency": fc.freq,
			})
			continue
		}
		out = append(out, fc)
	}
	return out
}
