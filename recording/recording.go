package recording

// ChannelID identifies one EEG lead/quadrant for which a power series exists.
type ChannelID string

// The four quadrant leads of the standard montage.
const (
	LL ChannelID = "LL"
	RL ChannelID = "RL"
	LP ChannelID = "LP"
	RP ChannelID = "RP"
)

// DefaultChannels returns the standard channel set.
func DefaultChannels() []ChannelID {
	return []ChannelID{LL, RL, LP, RP}
}

// ChannelSeries holds one channel's power-over-time-and-frequency matrix.
// Frequencies are ascending and unique; Power[t][f] is the power at time
// index t, frequency index f. Power values are non-negative by convention
// but not enforced.
type ChannelSeries struct {
	Frequencies []float64   `json:"frequencies"`
	Power       [][]float64 `json:"power"`
}

// Empty reports whether no columns matched this channel.
func (s *ChannelSeries) Empty() bool {
	return len(s.Frequencies) == 0
}

// Metadata carries recording-level metadata derived at build time.
type Metadata struct {
	PatientID    string  `json:"patient_id"`
	RecordID     string  `json:"record_id"`
	SamplingRate float64 `json:"sampling_rate"`
	Duration     float64 `json:"duration"`
	TotalFrames  int     `json:"total_frames"`
}

// ParsedRecording is the structured time/frequency/channel tensor built from
// one columnar buffer. It is immutable after construction and therefore safe
// to share by reference across simultaneous views. Every channel's Power has
// exactly len(Times) rows.
type ParsedRecording struct {
	Times    []float64                    `json:"times"`
	Channels map[ChannelID]*ChannelSeries `json:"channels"`
	Metadata Metadata                     `json:"metadata"`
}

// Channel looks up a channel series by id.
func (r *ParsedRecording) Channel(id ChannelID) (*ChannelSeries, bool) {
	s, ok := r.Channels[id]
	return s, ok
}
