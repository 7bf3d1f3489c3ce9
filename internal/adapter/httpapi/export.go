package httpapi

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/couchcryptid/weather-odds-service/internal/domain"
)

// handleDownloadCSV computes the report for the posted request and returns it
// as a CSV attachment.
func (s *Server) handleDownloadCSV(w http.ResponseWriter, r *http.Request) {
	report := s.service.Check(r.Context(), decodeRequest(r))

	setAttachmentHeaders(w, report, "csv", "text/csv")

	cw := csv.NewWriter(w)
	rows := [][]string{
		{"Feature", "Value"},
		{"Location", report.LocationName},
		{"Date", report.Date},
		{"Latitude", formatFloat(report.Coordinates[0])},
		{"Longitude", formatFloat(report.Coordinates[1])},
		{"Very Hot (%)", formatFloat(report.Probabilities.VeryHot)},
		{"Very Cold (%)", formatFloat(report.Probabilities.VeryCold)},
		{"Very Wet (%)", formatFloat(report.Probabilities.VeryWet)},
		{"Very Windy (%)", formatFloat(report.Probabilities.VeryWindy)},
		{"Uncomfortable (%)", formatFloat(report.Probabilities.Uncomfortable)},
		{"Confidence (%)", formatFloat(report.Confidence)},
	}
	if err := cw.WriteAll(rows); err != nil {
		s.logger.Warn("csv export write failed", "error", err)
		return
	}

	if len(report.TimeSeries) == 0 {
		return
	}

	_ = cw.Write(nil) //nolint:errcheck // blank separator row
	_ = cw.Write([]string{"Month", "Hot", "Cold", "Wet", "Windy"})
	for _, p := range report.TimeSeries {
		_ = cw.Write([]string{
			p.Month,
			formatFloat(p.Hot),
			formatFloat(p.Cold),
			formatFloat(p.Wet),
			formatFloat(p.Windy),
		})
	}
	cw.Flush()
}

// handleDownloadJSON computes the report and returns it as a JSON attachment.
func (s *Server) handleDownloadJSON(w http.ResponseWriter, r *http.Request) {
	report := s.service.Check(r.Context(), decodeRequest(r))

	setAttachmentHeaders(w, report, "json", "application/json")

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		s.logger.Warn("json export write failed", "error", err)
	}
}

func setAttachmentHeaders(w http.ResponseWriter, report domain.Report, ext, contentType string) {
	filename := strings.ReplaceAll(
		fmt.Sprintf("%s_weather_%s.%s", strings.ToLower(report.LocationName), report.Date, ext),
		" ", "_",
	)
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.Header().Set("Content-Type", contentType)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
