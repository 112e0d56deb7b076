package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

var csvHeader = []string{"Athlete", "Sessions Attended", "Attendance %", "Average Score", "Assessment"}

// WriteCSV writes the rows of res in the export column order.
func WriteCSV(w io.Writer, res Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return errors.Wrap(err, "writing CSV header")
	}
	total := strconv.Itoa(res.TotalSessions)
	for _, row := range res.Report {
		record := []string{
			row.Name,
			strconv.Itoa(row.Sessions) + "/" + total,
			strconv.Itoa(row.Attendance) + "%",
			strconv.Itoa(row.AvgScore),
			string(row.Assessment),
		}
		if err := cw.Write(record); err != nil {
			return errors.Wrap(err, "writing CSV row")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flushing CSV")
}
