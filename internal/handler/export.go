package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/pkordes/packvision/internal/domain"
)

// Export formats accepted in ?format=.
const (
	formatText = "text"
	formatCSV  = "csv"
)

// csvHeaders defines the column names written as the first row of a CSV export.
var csvHeaders = []string{"category", "item_id", "item", "quantity", "essential", "checked", "note"}

// GetExport handles GET /api/packlist/export. The default format is the
// share text; ?format=csv returns a spreadsheet download.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	format, err := optionalQuery[string](r, "format")
	if err != nil {
		writeError(w, http.StatusBadRequest, invalidParam("format"))
		return
	}

	switch format {
	case "", formatText:
		text, err := s.svc.PackLists.ExportText(r.Context())
		if err != nil {
			s.fail(w, r, err, failure{notFound: msgNoPackList})
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(text))

	case formatCSV:
		rows, filename, err := s.svc.PackLists.ExportCSV(r.Context())
		if err != nil {
			s.fail(w, r, err, failure{notFound: msgNoPackList})
			return
		}
		body, err := encodeCSV(rows)
		if err != nil {
			s.fail(w, r, err, failure{})
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		_, _ = w.Write(body)

	default:
		writeError(w, http.StatusBadRequest, invalidParam("format"))
	}
}

// encodeCSV serialises rows into CSV bytes with a header row.
func encodeCSV(rows []domain.ExportRow) ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	if err := cw.Write(csvHeaders); err != nil {
		return nil, err
	}
	for _, row := range rows {
		record := []string{
			row.Category,
			row.ItemID,
			row.Item,
			strconv.Itoa(row.Quantity),
			strconv.FormatBool(row.Essential),
			strconv.FormatBool(row.Checked),
			row.Note,
		}
		if err := cw.Write(record); err != nil {
			return nil, err
		}
	}
	cw.Flush()
	return buf.Bytes(), cw.Error()
}
