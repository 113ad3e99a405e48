package service

import (
	"context"

	dto "classroom_backend/internals/features/classroom/grades/dto"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet  = "Summary"
	sessionsSheet = "Sessions"
)

// ExportGradeReport renders the report as a workbook with a summary sheet
// and one row per session. The caller closes the file.
func (s *Service) ExportGradeReport(ctx context.Context, rawStudentID string) (*excelize.File, error) {
	report, err := s.ComputeGradeReport(ctx, rawStudentID)
	if err != nil {
		return nil, err
	}
	f, err := BuildWorkbook(report)
	if err != nil {
		return nil, errors.Wrap(err, "build grade workbook")
	}
	return f, nil
}

func BuildWorkbook(r dto.GradeReport) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), summarySheet); err != nil {
		f.Close()
		return nil, err
	}

	summary := [][]interface{}{
		{"Student ID", r.StudentID.String()},
		{"Total sessions", r.TotalSessions},
		{"Present", r.PresentCount},
		{"Excused absences", r.ExcusedAbsenceCount},
		{"Unexcused absences", r.UnexcusedAbsenceCount},
		{"Average class score", r.AvgClassScore},
		{"Average homework score", r.AvgHomeworkScore},
		{"Average score", r.AverageScore},
		{"Deduction per absence", r.DeductionPerAbsence},
		{"Final grade", r.FinalGrade},
	}
	if err := writeRows(f, summarySheet, summary); err != nil {
		f.Close()
		return nil, err
	}

	if _, err := f.NewSheet(sessionsSheet); err != nil {
		f.Close()
		return nil, err
	}
	rows := [][]interface{}{{"Date", "Class", "Title", "Attendance", "Class score", "Homework score", "Notes"}}
	for _, s := range r.Sessions {
		rows = append(rows, []interface{}{
			s.SessionDate,
			s.ClassName,
			strOrEmpty(s.SessionTitle),
			string(s.Attendance),
			numOrEmpty(s.ClassScore),
			numOrEmpty(s.HomeworkScore),
			strOrEmpty(s.Notes),
		})
	}
	if err := writeRows(f, sessionsSheet, rows); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		row := row
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func strOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func numOrEmpty(p *float64) interface{} {
	if p == nil {
		return ""
	}
	return *p
}
