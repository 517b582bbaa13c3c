package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	sessionModel "gymtrack_backend/internals/features/attendance/sessions/model"
)

// Kolom export deterministik; sesi yang pernah di-override (termasuk yang
// di-soft-delete) ikut diekspor dengan kolom indikator supaya export auditable.
var exportHeader = []string{"member_id", "check_in", "check_out", "method", "status", "duration", "overridden"}

func ExportFilename(now time.Time) string {
	return fmt.Sprintf("attendance_export_%s.csv", now.Format("2006-01-02"))
}

func exportRecord(m *sessionModel.AttendanceSessionModel) []string {
	checkOut := ""
	if m.AttendanceSessionCheckOutAt != nil {
		checkOut = m.AttendanceSessionCheckOutAt.Format(time.RFC3339)
	}
	duration := ""
	if m.AttendanceSessionDurationMinutes != nil {
		duration = strconv.Itoa(*m.AttendanceSessionDurationMinutes)
	}
	return []string{
		m.AttendanceSessionMemberID.String(),
		m.AttendanceSessionCheckInAt.Format(time.RFC3339),
		checkOut,
		m.AttendanceSessionMethod,
		string(m.AttendanceSessionStatus),
		duration,
		strconv.FormatBool(m.AttendanceSessionOverridden),
	}
}

// RenderCSV murni dan deterministik: urutan kolom tetap, baris mengikuti urutan input.
func RenderCSV(rows []sessionModel.AttendanceSessionModel) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for i := range rows {
		if err := w.Write(exportRecord(&rows[i])); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Service) ExportCSV(ctx context.Context, gymID uuid.UUID, from, to time.Time) ([]byte, string, error) {
	rows, err := s.rowsInRange(ctx, gymID, from, to, true)
	if err != nil {
		return nil, "", err
	}
	b, rerr := RenderCSV(rows)
	if rerr != nil {
		return nil, "", fiber.NewError(fiber.StatusInternalServerError, "Gagal render CSV")
	}
	return b, ExportFilename(time.Now()), nil
}

// ExportXLSX: varian spreadsheet untuk tombol download dashboard.
func (s *Service) ExportXLSX(ctx context.Context, gymID uuid.UUID, from, to time.Time) ([]byte, string, error) {
	rows, err := s.rowsInRange(ctx, gymID, from, to, true)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Attendance"
	f.SetSheetName("Sheet1", sheet)

	header := make([]any, len(exportHeader))
	for i, h := range exportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, "", fiber.NewError(fiber.StatusInternalServerError, "Gagal render XLSX")
	}
	for i := range rows {
		rec := exportRecord(&rows[i])
		cells := make([]any, len(rec))
		for j, v := range rec {
			cells[j] = v
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return nil, "", fiber.NewError(fiber.StatusInternalServerError, "Gagal render XLSX")
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", fiber.NewError(fiber.StatusInternalServerError, "Gagal render XLSX")
	}
	name := fmt.Sprintf("attendance_export_%s.xlsx", time.Now().Format("2006-01-02"))
	return buf.Bytes(), name, nil
}
