package spectrogram_test

import (
	"errors"
	"testing"

	"github.com/neuroviz/eegview/recording"
	"github.com/neuroviz/eegview/spectrogram"
)

func testRecording() *recording.ParsedRecording {
	return &recording.ParsedRecording{
		Times: []float64{0, 2, 4},
		Channels: map[recording.ChannelID]*recording.ChannelSeries{
			recording.LL: {
				Frequencies: []float64{0.5, 3.0},
				Power: [][]float64{
					{1, 2},
					{3, 4},
					{5, 6},
				},
			},
			recording.RP: {},
		},
		Metadata: recording.Metadata{
			PatientID:    "p1",
			RecordID:     "r1",
			SamplingRate: 500,
			Duration:     4,
			TotalFrames:  3,
		},
	}
}

func TestProjectTranspose(t *testing.T) {
	rec := testRecording()
	view, err := spectrogram.Project(rec, recording.LL)
	if err != nil {
		t.Fatalf("project: %v", err)
	}

	series := rec.Channels[recording.LL]
	for ti := range rec.Times {
		for fi := range series.Frequencies {
			if view.Power[fi][ti] != series.Power[ti][fi] {
				t.Errorf("power[%d][%d] = %v, want %v", fi, ti, view.Power[fi][ti], series.Power[ti][fi])
			}
		}
	}

	if view.Metadata != rec.Metadata {
		t.Errorf("metadata = %+v, want %+v", view.Metadata, rec.Metadata)
	}
	if view.Channel != recording.LL {
		t.Errorf("channel = %q, want LL", view.Channel)
	}
}

func TestProjectCopiesAxes(t *testing.T) {
	rec := testRecording()
	view, err := spectrogram.Project(rec, recording.LL)
	if err != nil {
		t.Fatalf("project: %v", err)
	}

	view.Times[0] = -999
	view.Frequencies[0] = -999
	if rec.Times[0] == -999 || rec.Channels[recording.LL].Frequencies[0] == -999 {
		t.Error("view shares axis storage with the recording")
	}
}

func TestProjectInvalidChannel(t *testing.T) {
	var invalid *spectrogram.InvalidChannelError
	_, err := spectrogram.Project(testRecording(), recording.ChannelID("ZZ"))
	if !errors.As(err, &invalid) {
		t.Fatalf("error %v is not an *InvalidChannelError", err)
	}
	if invalid.Channel != "ZZ" {
		t.Errorf("error channel = %q, want ZZ", invalid.Channel)
	}
}

func TestProjectEmptyChannel(t *testing.T) {
	view, err := spectrogram.Project(testRecording(), recording.RP)
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	if len(view.Frequencies) != 0 || len(view.Power) != 0 {
		t.Errorf("empty channel projected to %d freqs, %d rows", len(view.Frequencies), len(view.Power))
	}
}

func TestAveragePower(t *testing.T) {
	means, err := spectrogram.AveragePower(testRecording(), recording.LL, 0, 2)
	if err != nil {
		t.Fatalf("average power: %v", err)
	}
	want := []float64{3, 4}
	if len(means) != len(want) {
		t.Fatalf("got %d means, want %d", len(means), len(want))
	}
	for i, w := range want {
		if means[i] != w {
			t.Errorf("means[%d] = %v, want %v", i, means[i], w)
		}
	}
}

func TestAveragePowerSingleFrame(t *testing.T) {
	means, err := spectrogram.AveragePower(testRecording(), recording.LL, 1, 1)
	if err != nil {
		t.Fatalf("average power: %v", err)
	}
	if means[0] != 3 || means[1] != 4 {
		t.Errorf("means = %v, want [3 4]", means)
	}
}

func TestAveragePowerRangeRejection(t *testing.T) {
	cases := []struct {
		name       string
		start, end int
	}{
		{"inverted", 2, 1},
		{"negative start", -1, 1},
		{"end past frames", 0, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var rangeErr *spectrogram.RangeError
			_, err := spectrogram.AveragePower(testRecording(), recording.LL, tc.start, tc.end)
			if !errors.As(err, &rangeErr) {
				t.Fatalf("error %v is not a *RangeError", err)
			}
		})
	}
}
