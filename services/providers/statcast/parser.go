package statcast

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// pitchRow is one pitch from a Savant CSV export. HasDelta distinguishes a
// missing delta_run_exp from a genuine zero.
type pitchRow struct {
	PitchType    string
	GameDate     string
	ReleaseSpeed float64
	ReleaseSpin  float64
	Description  string
	GamePk       int
	AtBatNumber  int
	DeltaRunExp  float64
	HasDelta     bool
}

// parsePitchCSV reads a Savant CSV export by header name; columns the parser
// doesn't know are ignored, and missing columns leave zero values.
func parsePitchCSV(data []byte) ([]pitchRow, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}

	field := func(record []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	var rows []pitchRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}

		row := pitchRow{
			PitchType:   field(record, "pitch_type"),
			GameDate:    field(record, "game_date"),
			Description: field(record, "description"),
		}
		row.ReleaseSpeed, _ = strconv.ParseFloat(field(record, "release_speed"), 64)
		row.ReleaseSpin, _ = strconv.ParseFloat(field(record, "release_spin_rate"), 64)
		row.GamePk, _ = strconv.Atoi(field(record, "game_pk"))
		row.AtBatNumber, _ = strconv.Atoi(field(record, "at_bat_number"))
		if raw := field(record, "delta_run_exp"); raw != "" {
			if v, err := strconv.ParseFloat(raw, 64); err == nil {
				row.DeltaRunExp = v
				row.HasDelta = true
			}
		}

		rows = append(rows, row)
	}
	return rows, nil
}
