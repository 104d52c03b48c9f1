package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"time"

	"golang.org/x/exp/maps"

	"stafftrack/internal/model"
)

// Analytics derives cross-employee aggregates from the attendance
// ledger. It is read-only: every figure is recomputed from raw records
// on request. Grouping and reduction happen here rather than in the
// storage layer so both backends share one set of semantics.
type Analytics struct {
	logger  *slog.Logger
	records AttendanceRepository
	users   UserRepository
	now     Clock
}

func NewAnalytics(logger *slog.Logger, records AttendanceRepository, users UserRepository) *Analytics {
	return &Analytics{
		logger:  logger.With("service", "analytics"),
		records: records,
		users:   users,
		now:     time.Now,
	}
}

// Range filters records by clock-in time; either bound may be open.
type Range struct {
	From *time.Time
	To   *time.Time
}

type EmployeeInfo struct {
	ID     model.ID `json:"id"`
	Name   string   `json:"name"`
	UserID *string  `json:"userId,omitempty"`
	Email  *string  `json:"email,omitempty"`
}

type EmployeeWorkTime struct {
	Employee        EmployeeInfo `json:"employee"`
	TotalHours      float64      `json:"totalHours"`
	TotalSessions   int          `json:"totalSessions"`
	AvgSessionHours float64      `json:"avgSessionHours"`
}

// WorkTimeByEmployee groups closed sessions by employee and ranks by
// total hours, descending. Ties keep first-clock-in order.
func (s *Analytics) WorkTimeByEmployee(ctx context.Context, rng Range, limit int) ([]EmployeeWorkTime, error) {
	records, err := s.closedRecords(ctx, rng.From, rng.To)
	if err != nil {
		return nil, err
	}

	groups := groupByEmployee(records)

	slices.SortStableFunc(groups, func(a, b employeeGroup) int {
		switch {
		case a.totalHours > b.totalHours:
			return -1
		case a.totalHours < b.totalHours:
			return 1
		}
		return 0
	})

	if limit > 0 && len(groups) > limit {
		groups = groups[:limit]
	}

	infos, err := s.resolveEmployees(ctx, groups)
	if err != nil {
		return nil, err
	}

	result := make([]EmployeeWorkTime, 0, len(groups))
	for _, group := range groups {
		result = append(result, EmployeeWorkTime{
			Employee:        infos[group.employee],
			TotalHours:      round2(group.totalHours),
			TotalSessions:   group.sessions,
			AvgSessionHours: round2(group.totalHours / float64(group.sessions)),
		})
	}

	return result, nil
}

type TopPerformer struct {
	Rank             int          `json:"rank"`
	Employee         EmployeeInfo `json:"employee"`
	CompletedTasks   int          `json:"completedTasks"`
	TotalHours       float64      `json:"totalHours"`
	AvgSessionHours  float64      `json:"avgSessionHours"`
	PerformanceScore float64      `json:"performanceScore"`
}

// TopPerformers ranks employees over the trailing period by
// performance score: completed sessions are worth 10 points each,
// hours worked 2 points each.
func (s *Analytics) TopPerformers(ctx context.Context, periodDays, limit int) ([]TopPerformer, error) {
	from := s.now().AddDate(0, 0, -periodDays)

	records, err := s.closedRecords(ctx, &from, nil)
	if err != nil {
		return nil, err
	}

	groups := groupByEmployee(records)

	score := func(g employeeGroup) float64 {
		return float64(g.sessions)*10 + g.totalHours*2
	}

	slices.SortStableFunc(groups, func(a, b employeeGroup) int {
		switch sa, sb := score(a), score(b); {
		case sa > sb:
			return -1
		case sa < sb:
			return 1
		}
		return 0
	})

	if limit > 0 && len(groups) > limit {
		groups = groups[:limit]
	}

	infos, err := s.resolveEmployees(ctx, groups)
	if err != nil {
		return nil, err
	}

	result := make([]TopPerformer, 0, len(groups))
	for i, group := range groups {
		result = append(result, TopPerformer{
			Rank:             i + 1,
			Employee:         infos[group.employee],
			CompletedTasks:   group.sessions,
			TotalHours:       round2(group.totalHours),
			AvgSessionHours:  round2(group.totalHours / float64(group.sessions)),
			PerformanceScore: round2(score(group)),
		})
	}

	return result, nil
}

type Overview struct {
	TotalEmployees      int     `json:"totalEmployees"`
	ActiveEmployees     int     `json:"activeEmployees"`
	TotalAttendance     int     `json:"totalAttendance"`
	TotalHours          float64 `json:"totalHours"`
	AvgHoursPerEmployee float64 `json:"avgHoursPerEmployee"`
}

type DailyTrendPoint struct {
	Date            string `json:"date"`
	AttendanceCount int    `json:"attendanceCount"`
	UniqueEmployees int    `json:"uniqueEmployees"`
}

type AttendanceReport struct {
	Overview   Overview          `json:"overview"`
	DailyTrend []DailyTrendPoint `json:"dailyTrend"`
}

// AttendanceStats builds the admin overview plus the daily trend. The
// trend window defaults to the trailing week when no range is given,
// and counts every record, open or closed, by clock-in date.
func (s *Analytics) AttendanceStats(ctx context.Context, rng Range) (AttendanceReport, error) {
	totalEmployees, err := s.users.CountActiveEmployees(ctx)
	if err != nil {
		return AttendanceReport{}, fmt.Errorf("count employees: %w", err)
	}

	closed, err := s.closedRecords(ctx, rng.From, rng.To)
	if err != nil {
		return AttendanceReport{}, err
	}

	var totalHours float64
	for _, record := range closed {
		totalHours += record.ClockOutTime.Sub(record.ClockInTime).Hours()
	}
	totalHours = round1(totalHours)

	all, err := s.records.Find(ctx, AttendanceFilter{From: rng.From, To: rng.To})
	if err != nil {
		return AttendanceReport{}, fmt.Errorf("find attendance: %w", err)
	}

	distinct := make(map[model.ID]struct{})
	for _, record := range all {
		distinct[record.User] = struct{}{}
	}
	activeEmployees := len(distinct)

	var avgHours float64
	if activeEmployees > 0 {
		avgHours = round2(totalHours / float64(activeEmployees))
	}

	now := s.now()
	trendFrom := now.AddDate(0, 0, -7)
	if rng.From != nil {
		trendFrom = *rng.From
	}
	trendTo := now
	if rng.To != nil {
		trendTo = *rng.To
	}

	trendRecords, err := s.records.Find(ctx, AttendanceFilter{From: &trendFrom, To: &trendTo})
	if err != nil {
		return AttendanceReport{}, fmt.Errorf("find attendance: %w", err)
	}

	type bucket struct {
		count     int
		employees map[model.ID]struct{}
	}

	buckets := make(map[string]*bucket)
	for _, record := range trendRecords {
		key := dateKey(record.ClockInTime)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{employees: make(map[model.ID]struct{})}
			buckets[key] = b
		}
		b.count++
		b.employees[record.User] = struct{}{}
	}

	dates := maps.Keys(buckets)
	slices.Sort(dates)

	trend := make([]DailyTrendPoint, 0, len(dates))
	for _, date := range dates {
		trend = append(trend, DailyTrendPoint{
			Date:            date,
			AttendanceCount: buckets[date].count,
			UniqueEmployees: len(buckets[date].employees),
		})
	}

	return AttendanceReport{
		Overview: Overview{
			TotalEmployees:      totalEmployees,
			ActiveEmployees:     activeEmployees,
			TotalAttendance:     len(closed),
			TotalHours:          totalHours,
			AvgHoursPerEmployee: avgHours,
		},
		DailyTrend: trend,
	}, nil
}

type WorkTimeTrendPoint struct {
	Date          string  `json:"date"`
	TotalHours    float64 `json:"totalHours"`
	AvgHours      float64 `json:"avgHours"`
	EmployeeCount int     `json:"employeeCount"`
}

// WorkTimeTrend aggregates closed sessions over the trailing window
// into a per-day series: first per (day, employee), then per day, so
// avgHours is the mean across employees rather than sessions.
func (s *Analytics) WorkTimeTrend(ctx context.Context, days int) ([]WorkTimeTrendPoint, error) {
	from := s.now().AddDate(0, 0, -days)

	records, err := s.closedRecords(ctx, &from, nil)
	if err != nil {
		return nil, err
	}

	type dayEmployee struct {
		date     string
		employee model.ID
	}

	perEmployee := make(map[dayEmployee]float64)
	for _, record := range records {
		key := dayEmployee{date: dateKey(record.ClockInTime), employee: record.User}
		perEmployee[key] += record.ClockOutTime.Sub(record.ClockInTime).Hours()
	}

	type dayTotals struct {
		hours     float64
		employees int
	}

	perDay := make(map[string]*dayTotals)
	for key, hours := range perEmployee {
		totals, ok := perDay[key.date]
		if !ok {
			totals = &dayTotals{}
			perDay[key.date] = totals
		}
		totals.hours += hours
		totals.employees++
	}

	dates := maps.Keys(perDay)
	slices.Sort(dates)

	trend := make([]WorkTimeTrendPoint, 0, len(dates))
	for _, date := range dates {
		totals := perDay[date]
		trend = append(trend, WorkTimeTrendPoint{
			Date:          date,
			TotalHours:    round2(totals.hours),
			AvgHours:      round2(totals.hours / float64(totals.employees)),
			EmployeeCount: totals.employees,
		})
	}

	return trend, nil
}

type employeeGroup struct {
	employee   model.ID
	totalHours float64
	sessions   int
}

// groupByEmployee reduces records per employee, preserving
// first-appearance order so later stable sorts keep a defined
// tie-break.
func groupByEmployee(records []model.Attendance) []employeeGroup {
	index := make(map[model.ID]int)
	groups := make([]employeeGroup, 0)

	for _, record := range records {
		i, ok := index[record.User]
		if !ok {
			i = len(groups)
			index[record.User] = i
			groups = append(groups, employeeGroup{employee: record.User})
		}
		groups[i].totalHours += record.ClockOutTime.Sub(record.ClockInTime).Hours()
		groups[i].sessions++
	}

	return groups
}

func (s *Analytics) closedRecords(ctx context.Context, from, to *time.Time) ([]model.Attendance, error) {
	clockedOut := true
	records, err := s.records.Find(ctx, AttendanceFilter{From: from, To: to, ClockedOut: &clockedOut})
	if err != nil {
		return nil, fmt.Errorf("find attendance: %w", err)
	}
	return records, nil
}

func (s *Analytics) resolveEmployees(ctx context.Context, groups []employeeGroup) (map[model.ID]EmployeeInfo, error) {
	ids := make([]model.ID, 0, len(groups))
	for _, group := range groups {
		ids = append(ids, group.employee)
	}

	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve employees: %w", err)
	}

	infos := make(map[model.ID]EmployeeInfo, len(users))
	for _, user := range users {
		infos[user.ID] = EmployeeInfo{
			ID:     user.ID,
			Name:   user.Name,
			UserID: user.UserID,
			Email:  user.Email,
		}
	}

	return infos, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
