package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stafftrack/internal/model"
	"stafftrack/internal/service"
)

// seedLedger loads a known set of sessions: Alice works 8h over two
// sessions and Bob 3h over two on March 1st, Carol worked a single
// hour back in February, and Alice has an open session on the 2nd.
func seedLedger(f *fixture) (alice, bob, carol model.User) {
	alice = f.registerEmployee("Alice", "EMP001", "+15550001")
	bob = f.registerEmployee("Bob", "EMP002", "+15550002")
	carol = f.registerEmployee("Carol", "EMP003", "+15550003")

	march1 := time.Date(2026, time.March, 1, 8, 0, 0, 0, time.UTC)

	f.addRecord(alice.ID, march1, 4*time.Hour)
	f.addRecord(alice.ID, march1.Add(6*time.Hour), 4*time.Hour)
	f.addRecord(bob.ID, march1.Add(time.Hour), 2*time.Hour)
	f.addRecord(bob.ID, march1.Add(5*time.Hour), time.Hour)
	f.addRecord(carol.ID, time.Date(2026, time.February, 20, 9, 0, 0, 0, time.UTC), time.Hour)
	f.addRecord(alice.ID, time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC), 0)

	return alice, bob, carol
}

func TestWorkTimeByEmployee(t *testing.T) {
	f := newFixture(t)
	alice, bob, _ := seedLedger(f)

	from := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	rng := service.Range{From: &from}

	report, err := f.analytics.WorkTimeByEmployee(f.ctx, rng, 0)
	require.NoError(t, err)
	require.Len(t, report, 2) // Carol is out of range, the open session does not count

	assert.Equal(t, alice.ID, report[0].Employee.ID)
	assert.Equal(t, 8.0, report[0].TotalHours)
	assert.Equal(t, 2, report[0].TotalSessions)
	assert.Equal(t, 4.0, report[0].AvgSessionHours)

	assert.Equal(t, bob.ID, report[1].Employee.ID)
	assert.Equal(t, 3.0, report[1].TotalHours)
	assert.Equal(t, 1.5, report[1].AvgSessionHours)

	t.Run("limit", func(t *testing.T) {
		report, err := f.analytics.WorkTimeByEmployee(f.ctx, rng, 1)
		require.NoError(t, err)
		require.Len(t, report, 1)
		assert.Equal(t, alice.ID, report[0].Employee.ID)
	})
}

func TestTopPerformers(t *testing.T) {
	f := newFixture(t)
	alice, bob, carol := seedLedger(f)

	performers, err := f.analytics.TopPerformers(f.ctx, 30, 5)
	require.NoError(t, err)
	require.Len(t, performers, 3)

	// score = sessions*10 + hours*2
	assert.Equal(t, 1, performers[0].Rank)
	assert.Equal(t, alice.ID, performers[0].Employee.ID)
	assert.Equal(t, 36.0, performers[0].PerformanceScore)

	assert.Equal(t, 2, performers[1].Rank)
	assert.Equal(t, bob.ID, performers[1].Employee.ID)
	assert.Equal(t, 26.0, performers[1].PerformanceScore)

	assert.Equal(t, 3, performers[2].Rank)
	assert.Equal(t, carol.ID, performers[2].Employee.ID)
	assert.Equal(t, 12.0, performers[2].PerformanceScore)

	t.Run("short period drops old sessions", func(t *testing.T) {
		performers, err := f.analytics.TopPerformers(f.ctx, 7, 5)
		require.NoError(t, err)
		require.Len(t, performers, 2)
	})
}

func TestAttendanceStats(t *testing.T) {
	f := newFixture(t)
	seedLedger(f)

	from := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	report, err := f.analytics.AttendanceStats(f.ctx, service.Range{From: &from})
	require.NoError(t, err)

	assert.Equal(t, 3, report.Overview.TotalEmployees)
	assert.Equal(t, 2, report.Overview.ActiveEmployees) // only Alice and Bob clocked in
	assert.Equal(t, 4, report.Overview.TotalAttendance)
	assert.Equal(t, 11.0, report.Overview.TotalHours)
	assert.Equal(t, 5.5, report.Overview.AvgHoursPerEmployee)

	require.Len(t, report.DailyTrend, 2)
	assert.Equal(t, "2026-03-01", report.DailyTrend[0].Date)
	assert.Equal(t, 4, report.DailyTrend[0].AttendanceCount)
	assert.Equal(t, 2, report.DailyTrend[0].UniqueEmployees)
	assert.Equal(t, "2026-03-02", report.DailyTrend[1].Date)
	assert.Equal(t, 1, report.DailyTrend[1].AttendanceCount)
}

func TestAttendanceStatsMatchesWorkTimeReport(t *testing.T) {
	f := newFixture(t)
	seedLedger(f)

	from := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	rng := service.Range{From: &from}

	report, err := f.analytics.AttendanceStats(f.ctx, rng)
	require.NoError(t, err)

	perEmployee, err := f.analytics.WorkTimeByEmployee(f.ctx, rng, 0)
	require.NoError(t, err)

	var sum float64
	for _, entry := range perEmployee {
		sum += entry.TotalHours
	}

	assert.InDelta(t, report.Overview.TotalHours, sum, 0.1)
}

func TestAttendanceStatsEmptyLedger(t *testing.T) {
	f := newFixture(t)

	report, err := f.analytics.AttendanceStats(f.ctx, service.Range{})
	require.NoError(t, err)

	assert.Equal(t, 0, report.Overview.ActiveEmployees)
	assert.Equal(t, 0.0, report.Overview.AvgHoursPerEmployee)
	assert.Empty(t, report.DailyTrend)
}

func TestWorkTimeTrend(t *testing.T) {
	f := newFixture(t)
	seedLedger(f)

	trend, err := f.analytics.WorkTimeTrend(f.ctx, 7)
	require.NoError(t, err)
	require.Len(t, trend, 1)

	point := trend[0]
	assert.Equal(t, "2026-03-01", point.Date)
	assert.Equal(t, 11.0, point.TotalHours)
	assert.Equal(t, 5.5, point.AvgHours) // mean across employees, not sessions
	assert.Equal(t, 2, point.EmployeeCount)
}
