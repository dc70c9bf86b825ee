package eda

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// Columns is the header written by WriteCSV.
var Columns = []string{
	"Timestamp", "EDA_Raw", "EDA_Clean", "EDA_Tonic", "EDA_Phasic",
	"SCR_Onsets", "SCR_Peaks", "SCR_Recovery",
}

// WriteCSV writes one row per sample of a with its timestamp in
// microseconds. Marker columns are 1 on onset, peak and half-recovery
// samples and 0 elsewhere. header controls whether Columns is written first.
func WriteCSV(w io.Writer, timestamps []float64, a *Analysis, header bool) error {
	if len(timestamps) != a.Len() {
		return fmt.Errorf("eda: %d timestamps for %d samples", len(timestamps), a.Len())
	}

	onsets := markers(a.Len(), a.SCR.Onsets)
	peaks := markers(a.Len(), a.SCR.Peaks)
	recovery := markers(a.Len(), a.SCR.Recovery)

	cw := csv.NewWriter(w)
	if header {
		if err := cw.Write(Columns); err != nil {
			return err
		}
	}
	row := make([]string, len(Columns))
	for i := range a.Raw {
		row[0] = strconv.FormatFloat(timestamps[i], 'f', -1, 64)
		row[1] = format(a.Raw[i])
		row[2] = format(a.Clean[i])
		row[3] = format(a.Tonic[i])
		row[4] = format(a.Phasic[i])
		row[5] = onsets[i]
		row[6] = peaks[i]
		row[7] = recovery[i]
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func markers(n int, idx []int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = "0"
	}
	for _, i := range idx {
		if i >= 0 && i < n {
			out[i] = "1"
		}
	}
	return out
}

func format(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
