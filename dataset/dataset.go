// Package dataset reads the tabular EEG metadata that accompanies a session's
// recordings. The spectrogram pipeline needs exactly two things from it: a
// patient id and a list of segment offsets per logical record; everything
// else rides along for the surrounding UI.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Row is one labeled EEG segment from the metadata table.
type Row struct {
	EEGID              string         `json:"eeg_id"`
	SpectrogramID      string         `json:"spectrogram_id"`
	PatientID          string         `json:"patient_id"`
	LabelOffsetSeconds float64        `json:"eeg_label_offset_seconds"`
	ExpertConsensus    string         `json:"expert_consensus"`
	Votes              map[string]int `json:"votes,omitempty"`
}

// ReadRows parses header-driven CSV metadata. Column order is free; every
// column named "*_vote" lands in Votes keyed by its prefix. Numeric cells
// that fail to parse coerce to 0, the same leniency the recording builder
// applies to cell data.
func ReadRows(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	index := make(map[string]int, len(header))
	var voteColumns []int
	for i, name := range header {
		name = strings.TrimSpace(name)
		index[name] = i
		if strings.HasSuffix(name, "_vote") {
			voteColumns = append(voteColumns, i)
		}
	}

	cell := func(record []string, name string) string {
		if i, ok := index[name]; ok && i < len(record) {
			return record[i]
		}
		return ""
	}

	var rows []Row
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", len(rows)+2, err)
		}

		row := Row{
			EEGID:           cell(record, "eeg_id"),
			SpectrogramID:   cell(record, "spectrogram_id"),
			PatientID:       cell(record, "patient_id"),
			ExpertConsensus: cell(record, "expert_consensus"),
		}
		row.LabelOffsetSeconds, _ = strconv.ParseFloat(cell(record, "eeg_label_offset_seconds"), 64)

		if len(voteColumns) > 0 {
			row.Votes = make(map[string]int, len(voteColumns))
			for _, vi := range voteColumns {
				if vi >= len(record) {
					continue
				}
				n, _ := strconv.Atoi(record[vi])
				row.Votes[strings.TrimSuffix(header[vi], "_vote")] = n
			}
		}

		rows = append(rows, row)
	}
	return rows, nil
}

// OffsetsByRecord groups label offsets per eeg record id, sorted ascending
// with duplicates removed. The result drives combined-view rendering.
func OffsetsByRecord(rows []Row) map[string][]float64 {
	grouped := make(map[string][]float64)
	for _, row := range rows {
		grouped[row.EEGID] = append(grouped[row.EEGID], row.LabelOffsetSeconds)
	}
	for id, offsets := range grouped {
		sort.Float64s(offsets)
		deduped := offsets[:1]
		for _, v := range offsets[1:] {
			if v != deduped[len(deduped)-1] {
				deduped = append(deduped, v)
			}
		}
		grouped[id] = deduped
	}
	return grouped
}

// RecordsByPatient maps each patient id to its eeg record ids, in order of
// first appearance.
func RecordsByPatient(rows []Row) map[string][]string {
	grouped := make(map[string][]string)
	seen := make(map[string]map[string]bool)
	for _, row := range rows {
		if seen[row.PatientID] == nil {
			seen[row.PatientID] = make(map[string]bool)
		}
		if seen[row.PatientID][row.EEGID] {
			continue
		}
		seen[row.PatientID][row.EEGID] = true
		grouped[row.PatientID] = append(grouped[row.PatientID], row.EEGID)
	}
	return grouped
}
