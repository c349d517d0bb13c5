package spectrogram

import (
	"errors"
	"fmt"

	"github.com/neuroviz/eegview/recording"
)

// ErrEmptyOffsets is returned by Combine when there are no segments to combine.
var ErrEmptyOffsets = errors.New("no segment offsets to combine")

// InvalidChannelError reports a channel id not present in the recording.
// Callers surface it to the UI as "no data", not as a failure.
type InvalidChannelError struct {
	Channel recording.ChannelID
}

func (e *InvalidChannelError) Error() string {
	return fmt.Sprintf("channel %q not present in recording", string(e.Channel))
}

// RangeError reports out-of-bounds time indexes passed to AveragePower.
// Callers are expected to clamp, but bad bounds are rejected rather than read
// out of bounds.
type RangeError struct {
	Start, End, Frames int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("time index range [%d, %d] invalid for %d frames", e.Start, e.End, e.Frames)
}
