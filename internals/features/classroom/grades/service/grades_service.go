package service

import (
	"context"
	"math"

	dto "classroom_backend/internals/features/classroom/grades/dto"
	sessionModel "classroom_backend/internals/features/classroom/sessions/model"
	helper "classroom_backend/internals/helpers"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
)

type RecordSource interface {
	ListRecordsByStudent(ctx context.Context, studentID uuid.UUID) ([]sessionModel.AttendanceRecordModel, error)
}

type DeductionSource interface {
	AbsenceDeduction(ctx context.Context) (float64, error)
}

type Service struct {
	records   RecordSource
	deduction DeductionSource
	logger    log.Logger
}

func New(records RecordSource, deduction DeductionSource, logger log.Logger) *Service {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Service{records: records, deduction: deduction, logger: log.With(logger, "feature", "grades")}
}

// ComputeGradeReport reads the current deduction (creating the default
// setting when missing) and every record of the student, then aggregates.
// Store errors are returned as they are, nothing is retried.
func (s *Service) ComputeGradeReport(ctx context.Context, rawStudentID string) (dto.GradeReport, error) {
	studentID, err := helper.ParseID(rawStudentID, "student_id")
	if err != nil {
		return dto.GradeReport{}, err
	}

	deduction, err := s.deduction.AbsenceDeduction(ctx)
	if err != nil {
		_ = level.Error(s.logger).Log("msg", "read deduction", "student_id", studentID, "err", err)
		return dto.GradeReport{}, err
	}
	records, err := s.records.ListRecordsByStudent(ctx, studentID)
	if err != nil {
		_ = level.Error(s.logger).Log("msg", "read records", "student_id", studentID, "err", err)
		return dto.GradeReport{}, err
	}

	report := Compute(records, deduction)
	report.StudentID = studentID
	return report, nil
}

// Compute is the grade arithmetic. Every record counts toward TotalSessions,
// including attendance values outside the three known ones. Score averages
// skip nulls and are 0 when nothing is graded. Only the returned figures are
// rounded.
func Compute(records []sessionModel.AttendanceRecordModel, deductionPerAbsence float64) dto.GradeReport {
	r := dto.GradeReport{
		TotalSessions:       len(records),
		DeductionPerAbsence: deductionPerAbsence,
		Sessions:            make([]dto.GradeSession, 0, len(records)),
	}

	var classSum, homeworkSum float64
	var classN, homeworkN int
	for i := range records {
		rec := &records[i]
		switch rec.AttendanceRecordAttendance {
		case sessionModel.AttendancePresent:
			r.PresentCount++
		case sessionModel.AttendanceExcusedAbsence:
			r.ExcusedAbsenceCount++
		case sessionModel.AttendanceUnexcusedAbsence:
			r.UnexcusedAbsenceCount++
		}
		if rec.AttendanceRecordClassScore != nil {
			classSum += *rec.AttendanceRecordClassScore
			classN++
		}
		if rec.AttendanceRecordHomeworkScore != nil {
			homeworkSum += *rec.AttendanceRecordHomeworkScore
			homeworkN++
		}
		r.Sessions = append(r.Sessions, dto.FromRecord(rec))
	}

	avgClass := mean(classSum, classN)
	avgHomework := mean(homeworkSum, homeworkN)
	average := (avgClass + avgHomework) / 2
	final := math.Max(0, average-float64(r.UnexcusedAbsenceCount)*deductionPerAbsence)

	r.AvgClassScore = round2(avgClass)
	r.AvgHomeworkScore = round2(avgHomework)
	r.AverageScore = round2(average)
	r.FinalGrade = round2(final)
	return r
}

func mean(sum float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
