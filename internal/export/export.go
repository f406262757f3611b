// Package export turns attendance data into a downloadable file. The
// backend answers the structured export endpoint with either CSV text or
// JSON rows; both end up as the same named file on disk.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/mayurimulay789/posadmin-client/internal/api"
)

// ContentTypeCSV is the MIME type attached when the file is served onward.
const ContentTypeCSV = "text/csv;charset=utf-8"

type Service struct {
	API *api.AttendanceAPI
	Dir string
	Log *slog.Logger
}

func NewService(a *api.AttendanceAPI, dir string, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{API: a, Dir: dir, Log: log}
}

// Filename follows the download contract: attendance_<start>_to_<end>.<ext>.
func Filename(startDate, endDate, ext string) string {
	return fmt.Sprintf("attendance_%s_to_%s.%s", startDate, endDate, ext)
}

// AttendanceCSV fetches the export and writes the CSV file, returning its
// path. When the structured endpoint fails, one direct-download attempt is
// made before giving up.
func (s *Service) AttendanceCSV(ctx context.Context, startDate, endDate string) (string, error) {
	data, err := s.fetchCSV(ctx, startDate, endDate)
	if err != nil {
		return "", err
	}
	path := filepath.Join(s.Dir, Filename(startDate, endDate, "csv"))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// AttendanceXLSX writes the same export as a spreadsheet.
func (s *Service) AttendanceXLSX(ctx context.Context, startDate, endDate string) (string, error) {
	result, err := s.API.Export(ctx, startDate, endDate)
	if err != nil {
		return "", err
	}

	var rows [][]string
	if result.CSV != nil {
		parsed, err := csv.NewReader(bytes.NewReader(result.CSV)).ReadAll()
		if err != nil {
			return "", err
		}
		rows = parsed
	} else {
		rows = tabulate(result.Rows)
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		cells := make([]any, len(row))
		for j, v := range row {
			cells[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return "", err
		}
	}

	path := filepath.Join(s.Dir, Filename(startDate, endDate, "xlsx"))
	if err := f.SaveAs(path); err != nil {
		return "", err
	}
	return path, nil
}

func (s *Service) fetchCSV(ctx context.Context, startDate, endDate string) ([]byte, error) {
	result, err := s.API.Export(ctx, startDate, endDate)
	if err == nil {
		if result.CSV != nil {
			return result.CSV, nil
		}
		return MarshalRows(result.Rows)
	}

	s.Log.Warn("structured export failed, trying direct download", "err", err)
	body, directErr := s.API.ExportDirect(ctx, startDate, endDate)
	if directErr != nil {
		return nil, err
	}
	return body, nil
}

// MarshalRows serializes JSON rows to CSV. Headers are the first row's keys
// (sorted, since JSON objects carry no order); quoting is handled by the
// csv writer.
func MarshalRows(rows []map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, record := range tabulate(rows) {
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func tabulate(rows []map[string]any) [][]string {
	if len(rows) == 0 {
		return nil
	}
	headers := make([]string, 0, len(rows[0]))
	for k := range rows[0] {
		headers = append(headers, k)
	}
	sort.Strings(headers)

	out := make([][]string, 0, len(rows)+1)
	out = append(out, headers)
	for _, row := range rows {
		record := make([]string, len(headers))
		for i, h := range headers {
			if v, ok := row[h]; ok && v != nil {
				record[i] = fmt.Sprintf("%v", v)
			}
		}
		out = append(out, record)
	}
	return out
}
