// Command eegview renders an EEG spectrogram recording (a Parquet file of
// time and <channel>_<frequency> power columns) to a PNG, or serves rendered
// views over HTTP for browser-based use.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/neuroviz/eegview/logging"
	"github.com/neuroviz/eegview/recording"
	"github.com/neuroviz/eegview/render"
	"github.com/neuroviz/eegview/viewer"
)

func main() {
	input := flag.String("input", "", "path to a Parquet spectrogram recording")
	out := flag.String("out", "spectrogram.png", "output PNG path")
	channel := flag.String("channel", "LL", "channel to render")
	colorMap := flag.String("colormap", "", "color map: viridis, jet, hot or grayscale")
	zoom := flag.Float64("zoom", 1, "cell zoom factor")
	timeRange := flag.String("range", "0,100", "visible time window as lo,hi percent")
	offsets := flag.String("offsets", "", "comma-separated segment offsets; more than one renders the combined view")
	configPath := flag.String("config", "", "optional YAML config path")
	serve := flag.String("serve", "", "listen address; serve rendered PNGs over HTTP instead of writing a file")
	flag.Parse()

	cfg := viewer.DefaultConfig()
	if *configPath != "" {
		loaded, err := viewer.LoadConfig(*configPath)
		if err != nil {
			logging.Fatal(err, "load config")
		}
		cfg = loaded
	}
	logging.SetLevel(logging.ParseLevel(cfg.LogLevel))

	if *input == "" {
		fmt.Fprintln(os.Stderr, "usage: eegview -input recording.parquet [-out spectrogram.png] [flags]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	session := viewer.NewSession(cfg)
	err := session.Load(context.Background(), viewer.FetchFunc(func(ctx context.Context) ([]byte, error) {
		return os.ReadFile(*input)
	}))
	if err != nil {
		logging.Fatal(err, "load recording", logging.Fields{"input": *input})
	}

	if *serve != "" {
		serveHTTP(session, cfg, *serve)
		return
	}

	req := viewer.ViewRequest{
		Channel:          recording.ChannelID(*channel),
		ColorMap:         *colorMap,
		TimeRangePercent: parseRange(*timeRange),
		Zoom:             *zoom,
		Offsets:          parseOffsets(*offsets),
	}

	surface := render.NewImageSurface(cfg.Width, cfg.Height)
	session.Render(surface, req)

	f, err := os.Create(*out)
	if err != nil {
		logging.Fatal(err, "create output file", logging.Fields{"path": *out})
	}
	defer f.Close()
	if err := surface.EncodePNG(f); err != nil {
		logging.Fatal(err, "encode png", logging.Fields{"path": *out})
	}
	logging.Info("wrote spectrogram", logging.Fields{"path": *out})
}

// serveHTTP exposes GET /render?channel=&colormap=&zoom=&range=&offsets=
// returning a PNG of the requested view.
func serveHTTP(session *viewer.Session, cfg *viewer.Config, addr string) {
	http.HandleFunc("/render", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		req := viewer.ViewRequest{
			Channel:          recording.ChannelID(valueOr(q.Get("channel"), "LL")),
			ColorMap:         q.Get("colormap"),
			TimeRangePercent: parseRange(valueOr(q.Get("range"), "0,100")),
			Offsets:          parseOffsets(q.Get("offsets")),
		}
		req.Zoom, _ = strconv.ParseFloat(q.Get("zoom"), 64)

		surface := render.NewImageSurface(cfg.Width, cfg.Height)
		session.Render(surface, req)

		w.Header().Set("Content-Type", "image/png")
		if err := surface.EncodePNG(w); err != nil {
			logging.Error(err, "encode png response")
		}
	})

	logging.Info("serving rendered views", logging.Fields{"addr": addr})
	if err := http.ListenAndServe(addr, nil); err != nil {
		logging.Fatal(err, "http server")
	}
}

func parseRange(s string) [2]float64 {
	parts := strings.SplitN(s, ",", 2)
	r := [2]float64{0, 100}
	if len(parts) == 2 {
		if lo, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64); err == nil {
			r[0] = lo
		}
		if hi, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64); err == nil {
			r[1] = hi
		}
	}
	return r
}

func parseOffsets(s string) []float64 {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var offsets []float64
	for _, part := range strings.Split(s, ",") {
		if v, err := strconv.ParseFloat(strings.TrimSpace(part), 64); err == nil {
			offsets = append(offsets, v)
		}
	}
	return offsets
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
