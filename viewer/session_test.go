package viewer_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	parquet "github.com/parquet-go/parquet-go"

	"github.com/neuroviz/eegview/recording"
	"github.com/neuroviz/eegview/render"
	"github.com/neuroviz/eegview/viewer"
)

type sessionRow struct {
	Time float64 `parquet:"time"`
	LL05 float64 `parquet:"LL_0.5"`
	LL30 float64 `parquet:"LL_3.0"`
}

func recordingBytes(t *testing.T, patientID string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := parquet.NewGenericWriter[sessionRow](&buf,
		parquet.KeyValueMetadata("patient_id", patientID))
	rows := []sessionRow{
		{Time: 0, LL05: 1, LL30: 2},
		{Time: 2, LL05: 3, LL30: 4},
		{Time: 4, LL05: 5, LL30: 6},
	}
	if _, err := w.Write(rows); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close fixture: %v", err)
	}
	return buf.Bytes()
}

func bytesFetcher(data []byte) viewer.Fetcher {
	return viewer.FetchFunc(func(ctx context.Context) ([]byte, error) {
		return data, nil
	})
}

func TestSessionLoadAndRender(t *testing.T) {
	session := viewer.NewSession(nil)
	if err := session.Load(context.Background(), bytesFetcher(recordingBytes(t, "p1"))); err != nil {
		t.Fatalf("load: %v", err)
	}

	rec := session.Recording()
	if rec == nil {
		t.Fatal("no recording after load")
	}
	if rec.Metadata.PatientID != "p1" {
		t.Errorf("patient id = %q, want p1", rec.Metadata.PatientID)
	}

	surface := render.NewImageSurface(200, 120)
	session.Render(surface, viewer.ViewRequest{Channel: recording.LL})
	session.Render(surface, viewer.ViewRequest{Channel: recording.LL, Offsets: []float64{0, 30}})
	session.Render(surface, viewer.ViewRequest{Channel: recording.ChannelID("ZZ")})
}

func TestSessionRenderBeforeLoad(t *testing.T) {
	session := viewer.NewSession(nil)
	surface := render.NewImageSurface(100, 60)
	// Degrades to an on-surface message; must not panic.
	session.Render(surface, viewer.ViewRequest{Channel: recording.LL})
}

func TestSessionFetchFailureKeepsRecording(t *testing.T) {
	session := viewer.NewSession(nil)
	if err := session.Load(context.Background(), bytesFetcher(recordingBytes(t, "p1"))); err != nil {
		t.Fatalf("load: %v", err)
	}

	failing := viewer.FetchFunc(func(ctx context.Context) ([]byte, error) {
		return nil, errors.New("network down")
	})
	if err := session.Load(context.Background(), failing); err == nil {
		t.Fatal("want error from failing fetch")
	}

	if rec := session.Recording(); rec == nil || rec.Metadata.PatientID != "p1" {
		t.Error("failed fetch clobbered the loaded recording")
	}
}

func TestSessionDecodeFailureIsolated(t *testing.T) {
	session := viewer.NewSession(nil)
	if err := session.Load(context.Background(), bytesFetcher(recordingBytes(t, "p1"))); err != nil {
		t.Fatalf("load: %v", err)
	}

	var decodeErr *recording.DecodeError
	err := session.Load(context.Background(), bytesFetcher([]byte("ten random")))
	if !errors.As(err, &decodeErr) {
		t.Fatalf("error %v is not a *DecodeError", err)
	}

	// The previously loaded recording still renders.
	if rec := session.Recording(); rec == nil || rec.Metadata.PatientID != "p1" {
		t.Fatal("decode failure clobbered the loaded recording")
	}
	surface := render.NewImageSurface(200, 120)
	session.Render(surface, viewer.ViewRequest{Channel: recording.LL})
}

func TestSessionStaleFetchDiscarded(t *testing.T) {
	session := viewer.NewSession(nil)

	oldData := recordingBytes(t, "old")
	newData := recordingBytes(t, "new")

	started := make(chan struct{})
	release := make(chan struct{})
	slow := viewer.FetchFunc(func(ctx context.Context) ([]byte, error) {
		close(started)
		<-release
		return oldData, nil
	})

	done := make(chan error, 1)
	go func() {
		done <- session.Load(context.Background(), slow)
	}()

	<-started
	// A newer load completes while the first fetch is still in flight.
	if err := session.Load(context.Background(), bytesFetcher(newData)); err != nil {
		t.Fatalf("second load: %v", err)
	}

	close(release)
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("first load: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("first load did not finish")
	}

	rec := session.Recording()
	if rec == nil || rec.Metadata.PatientID != "new" {
		got := "<nil>"
		if rec != nil {
			got = rec.Metadata.PatientID
		}
		t.Fatalf("recording = %s, want the newer load to win", got)
	}
}
