// Package spectral computes power spectrograms from raw EEG sample streams,
// for records that arrive without precomputed spectrogram columns. Output is
// shaped to the recording package's conventions: a ChannelSeries plus a
// millisecond time axis, ready for projection and rendering.
package spectral

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/neuroviz/eegview/logging"
	"github.com/neuroviz/eegview/recording"
)

// Analyzer computes Hann-windowed STFT power spectrograms.
type Analyzer struct {
	sampleRate int
	windowSize int
	hopSize    int
	window     []float64
	logger     logging.Logger
}

// NewAnalyzer creates an analyzer. All three parameters must be positive.
func NewAnalyzer(sampleRate, windowSize, hopSize int) (*Analyzer, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}
	if windowSize <= 0 {
		return nil, fmt.Errorf("window size must be positive, got %d", windowSize)
	}
	if hopSize <= 0 {
		return nil, fmt.Errorf("hop size must be positive, got %d", hopSize)
	}
	return &Analyzer{
		sampleRate: sampleRate,
		windowSize: windowSize,
		hopSize:    hopSize,
		window:     hannWindow(windowSize),
		logger: logging.WithFields(logging.Fields{
			"component":   "spectral_analyzer",
			"sample_rate": sampleRate,
		}),
	}, nil
}

// hannWindow generates periodic Hann coefficients.
func hannWindow(size int) []float64 {
	coeffs := make([]float64, size)
	for i := 0; i < size; i++ {
		coeffs[i] = 0.5 * (1.0 - math.Cos(2*math.Pi*float64(i)/float64(size)))
	}
	return coeffs
}

// FrequencyBins returns the frequency value of each positive-frequency bin.
func (a *Analyzer) FrequencyBins() []float64 {
	bins := a.windowSize/2 + 1
	freqs := make([]float64, bins)
	for k := 0; k < bins; k++ {
		freqs[k] = float64(k) * float64(a.sampleRate) / float64(a.windowSize)
	}
	return freqs
}

// ChannelSeries computes the power spectrogram of a raw sample stream,
// returning the series and a matching millisecond time axis (one entry per
// frame, at the frame's start).
func (a *Analyzer) ChannelSeries(samples []float64) (*recording.ChannelSeries, []float64, error) {
	if len(samples) == 0 {
		return nil, nil, fmt.Errorf("empty signal")
	}
	if len(samples) < a.windowSize {
		return nil, nil, fmt.Errorf("signal length %d shorter than window size %d", len(samples), a.windowSize)
	}

	numFrames := (len(samples)-a.windowSize)/a.hopSize + 1
	bins := a.windowSize/2 + 1

	series := &recording.ChannelSeries{
		Frequencies: a.FrequencyBins(),
		Power:       make([][]float64, numFrames),
	}
	times := make([]float64, numFrames)

	frame := make([]float64, a.windowSize)
	for t := 0; t < numFrames; t++ {
		startIdx := t * a.hopSize
		copy(frame, samples[startIdx:startIdx+a.windowSize])
		for i := range frame {
			frame[i] *= a.window[i]
		}

		spectrum := fft.FFTReal(frame)
		series.Power[t] = make([]float64, bins)
		for k := 0; k < bins; k++ {
			mag := cmplx.Abs(spectrum[k])
			series.Power[t][k] = mag * mag
		}
		times[t] = float64(startIdx) / float64(a.sampleRate) * 1000
	}

	a.logger.Debug("computed power spectrogram", logging.Fields{
		"frames":    numFrames,
		"freq_bins": bins,
		"samples":   len(samples),
	})

	return series, times, nil
}
