package service

import (
	"context"
	"testing"

	sessionModel "classroom_backend/internals/features/classroom/sessions/model"
	"classroom_backend/internals/helpers/apperr"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func score(v float64) *float64 { return &v }

func rec(att sessionModel.AttendanceStatus, class, homework *float64) sessionModel.AttendanceRecordModel {
	return sessionModel.AttendanceRecordModel{
		AttendanceRecordID:            uuid.New(),
		AttendanceRecordSessionID:     uuid.New(),
		AttendanceRecordAttendance:    att,
		AttendanceRecordClassScore:    class,
		AttendanceRecordHomeworkScore: homework,
	}
}

const (
	present   = sessionModel.AttendancePresent
	excused   = sessionModel.AttendanceExcusedAbsence
	unexcused = sessionModel.AttendanceUnexcusedAbsence
)

func TestCompute(t *testing.T) {
	tenUnexcused := []sessionModel.AttendanceRecordModel{
		rec(present, score(10), score(10)),
		rec(present, score(20), score(10)),
	}
	for i := 0; i < 10; i++ {
		tenUnexcused = append(tenUnexcused, rec(unexcused, nil, score(10)))
	}

	tests := []struct {
		name      string
		records   []sessionModel.AttendanceRecordModel
		deduction float64

		total, present, excused, unexcused int
		avgClass, avgHomework, average    float64
		final                             float64
	}{
		{
			name:      "no records",
			deduction: 0.5,
		},
		{
			name: "three sessions, one unexcused",
			records: []sessionModel.AttendanceRecordModel{
				rec(present, score(10), score(10)),
				rec(present, score(20), score(10)),
				rec(unexcused, nil, score(10)),
			},
			deduction: 0.5,
			total:     3, present: 2, unexcused: 1,
			avgClass: 15, avgHomework: 10, average: 12.5, final: 12,
		},
		{
			name:      "deduction larger than average clamps to zero",
			records:   tenUnexcused,
			deduction: 2,
			total:     12, present: 2, unexcused: 10,
			avgClass: 15, avgHomework: 10, average: 12.5, final: 0,
		},
		{
			name: "null scores are skipped, not zero",
			records: []sessionModel.AttendanceRecordModel{
				rec(present, score(15), nil),
				rec(excused, nil, nil),
			},
			deduction: 0.5,
			total:     2, present: 1, excused: 1,
			avgClass: 15, avgHomework: 0, average: 7.5, final: 7.5,
		},
		{
			name: "unknown attendance counts in total only",
			records: []sessionModel.AttendanceRecordModel{
				rec(present, score(12), score(14)),
				rec(sessionModel.AttendanceStatus("LATE"), score(18), score(16)),
			},
			deduction: 0.5,
			total:     2, present: 1,
			avgClass: 15, avgHomework: 15, average: 15, final: 15,
		},
		{
			name: "rounding applies to outputs only",
			records: []sessionModel.AttendanceRecordModel{
				rec(present, score(10), score(10)),
				rec(present, score(10), score(11)),
				rec(unexcused, score(11), score(11)),
			},
			// avgClass 10.333.., avgHomework 10.666.., average 10.5, final 10.5-0.333.. = 10.1666..
			deduction: 1.0 / 3.0,
			total:     3, present: 2, unexcused: 1,
			avgClass: 10.33, avgHomework: 10.67, average: 10.5, final: 10.17,
		},
		{
			name: "zero deduction",
			records: []sessionModel.AttendanceRecordModel{
				rec(unexcused, score(8), score(6)),
			},
			deduction: 0,
			total:     1, unexcused: 1,
			avgClass: 8, avgHomework: 6, average: 7, final: 7,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.records, tt.deduction)
			assert.Equal(t, tt.total, got.TotalSessions)
			assert.Equal(t, tt.present, got.PresentCount)
			assert.Equal(t, tt.excused, got.ExcusedAbsenceCount)
			assert.Equal(t, tt.unexcused, got.UnexcusedAbsenceCount)
			assert.InDelta(t, tt.avgClass, got.AvgClassScore, 1e-9)
			assert.InDelta(t, tt.avgHomework, got.AvgHomeworkScore, 1e-9)
			assert.InDelta(t, tt.average, got.AverageScore, 1e-9)
			assert.InDelta(t, tt.final, got.FinalGrade, 1e-9)
			assert.GreaterOrEqual(t, got.FinalGrade, 0.0)
			assert.Equal(t, tt.deduction, got.DeductionPerAbsence)
			assert.Len(t, got.Sessions, len(tt.records))
		})
	}
}

func TestCompute_FinalGradeNeverNegative(t *testing.T) {
	for _, deduction := range []float64{0, 0.5, 3, 1000} {
		for n := 0; n < 30; n += 7 {
			var records []sessionModel.AttendanceRecordModel
			for i := 0; i < n; i++ {
				records = append(records, rec(unexcused, score(float64(i%21)), nil))
			}
			got := Compute(records, deduction)
			assert.GreaterOrEqual(t, got.FinalGrade, 0.0, "deduction=%v n=%d", deduction, n)
		}
	}
}

/* ===== service with fakes ===== */

type fakeRecords struct {
	byStudent map[uuid.UUID][]sessionModel.AttendanceRecordModel
	err       error
	calls     int
}

func (f *fakeRecords) ListRecordsByStudent(_ context.Context, id uuid.UUID) ([]sessionModel.AttendanceRecordModel, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.byStudent[id], nil
}

type fakeDeduction struct {
	value float64
	err   error
	reads int
}

func (f *fakeDeduction) AbsenceDeduction(context.Context) (float64, error) {
	f.reads++
	return f.value, f.err
}

func TestComputeGradeReport(t *testing.T) {
	studentID := uuid.New()
	records := &fakeRecords{byStudent: map[uuid.UUID][]sessionModel.AttendanceRecordModel{
		studentID: {
			rec(present, score(10), score(10)),
			rec(present, score(20), score(10)),
			rec(unexcused, nil, score(10)),
		},
	}}
	deduction := &fakeDeduction{value: 0.5}
	svc := New(records, deduction, nil)

	got, err := svc.ComputeGradeReport(context.Background(), studentID.String())
	require.NoError(t, err)
	assert.Equal(t, studentID, got.StudentID)
	assert.Equal(t, 12.0, got.FinalGrade)

	// the deduction is re-read on every computation
	deduction.value = 2
	got, err = svc.ComputeGradeReport(context.Background(), studentID.String())
	require.NoError(t, err)
	assert.Equal(t, 10.5, got.FinalGrade)
	assert.Equal(t, 2, deduction.reads)
}

func TestComputeGradeReport_StudentWithoutRecords(t *testing.T) {
	svc := New(&fakeRecords{}, &fakeDeduction{value: 0.5}, nil)

	got, err := svc.ComputeGradeReport(context.Background(), uuid.NewString())
	require.NoError(t, err)
	assert.Zero(t, got.TotalSessions)
	assert.Zero(t, got.AverageScore)
	assert.Zero(t, got.FinalGrade)
	assert.NotNil(t, got.Sessions)
}

func TestComputeGradeReport_Errors(t *testing.T) {
	ctx := context.Background()

	records := &fakeRecords{}
	deduction := &fakeDeduction{value: 0.5}
	_, err := New(records, deduction, nil).ComputeGradeReport(ctx, "")
	assert.True(t, errors.Is(err, apperr.ErrInvalidInput))
	assert.Zero(t, records.calls)
	assert.Zero(t, deduction.reads)

	down := errors.WithMessage(apperr.ErrStoreUnavailable, "dial tcp")
	records = &fakeRecords{err: down}
	_, err = New(records, &fakeDeduction{value: 0.5}, nil).ComputeGradeReport(ctx, uuid.NewString())
	assert.True(t, errors.Is(err, apperr.ErrStoreUnavailable))
	assert.Equal(t, 1, records.calls)

	records = &fakeRecords{}
	_, err = New(records, &fakeDeduction{err: down}, nil).ComputeGradeReport(ctx, uuid.NewString())
	assert.True(t, errors.Is(err, apperr.ErrStoreUnavailable))
	assert.Zero(t, records.calls)
}

func TestExportGradeReport(t *testing.T) {
	studentID := uuid.New()
	title := "Fractions"
	r := rec(present, score(18), nil)
	r.Session = &sessionModel.SessionModel{SessionTitle: &title}
	svc := New(&fakeRecords{byStudent: map[uuid.UUID][]sessionModel.AttendanceRecordModel{studentID: {r}}}, &fakeDeduction{value: 0.5}, nil)

	f, err := svc.ExportGradeReport(context.Background(), studentID.String())
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{summarySheet, sessionsSheet}, f.GetSheetList())

	final, err := f.GetCellValue(summarySheet, "B10")
	require.NoError(t, err)
	assert.Equal(t, "9", final)

	rows, err := f.GetRows(sessionsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Fractions", rows[1][2])
	assert.Equal(t, "PRESENT", rows[1][3])
	assert.Equal(t, "18", rows[1][4])
}
