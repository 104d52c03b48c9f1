package database

import (
	"context"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"

	"stafftrack/internal/model"
	"stafftrack/internal/service"
)

type AttendanceDAO struct {
	Logger *slog.Logger
	*DB
}

func NewAttendanceDAO(logger *slog.Logger, db *DB) *AttendanceDAO {
	return &AttendanceDAO{
		Logger: logger.With("dao", "attendance"),
		DB:     db,
	}
}

// attendanceRow flattens the optional coordinates into nullable
// columns for scanning.
type attendanceRow struct {
	ID        model.ID  `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`

	TaskID model.ID `db:"task_id"`
	UserID model.ID `db:"user_id"`

	ClockInTime  time.Time  `db:"clock_in_time"`
	ClockInLat   *float64   `db:"clock_in_lat"`
	ClockInLng   *float64   `db:"clock_in_lng"`
	ClockOutTime *time.Time `db:"clock_out_time"`
	ClockOutLat  *float64   `db:"clock_out_lat"`
	ClockOutLng  *float64   `db:"clock_out_lng"`
}

func (row attendanceRow) toModel() model.Attendance {
	record := model.Attendance{
		ID:           row.ID,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
		Task:         row.TaskID,
		User:         row.UserID,
		ClockInTime:  row.ClockInTime,
		ClockOutTime: row.ClockOutTime,
	}

	if row.ClockInLat != nil && row.ClockInLng != nil {
		record.ClockInLocation = &model.Location{Latitude: *row.ClockInLat, Longitude: *row.ClockInLng}
	}
	if row.ClockOutLat != nil && row.ClockOutLng != nil {
		record.ClockOutLocation = &model.Location{Latitude: *row.ClockOutLat, Longitude: *row.ClockOutLng}
	}

	return record
}

func (dao *AttendanceDAO) GetByTaskAndUser(ctx context.Context, task, user model.ID) (model.Attendance, error) {
	logger := dao.Logger.With("query", "getByTaskAndUser")

	query, args, err := dao.Builder.
		Select("*").
		From("attendance").
		Where(squirrel.Eq{"task_id": task}).
		Where(squirrel.Eq{"user_id": user}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Attendance{}, err
	}

	logger.Debug("build query", "sql", query, "args", args)

	var row attendanceRow
	if err := dao.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		if IsNoRows(err) {
			return model.Attendance{}, model.NewError("attendance", model.ErrNotFound)
		}

		logger.Warn("failed query execute", "error", err)

		return model.Attendance{}, err
	}

	return row.toModel(), nil
}

func (dao *AttendanceDAO) FindByTask(ctx context.Context, task model.ID) ([]model.Attendance, error) {
	return dao.findWhere(ctx, squirrel.Eq{"task_id": task}, "")
}

func (dao *AttendanceDAO) FindByUser(ctx context.Context, user model.ID) ([]model.Attendance, error) {
	return dao.findWhere(ctx, squirrel.Eq{"user_id": user}, "clock_in_time DESC")
}

func (dao *AttendanceDAO) Find(ctx context.Context, filter service.AttendanceFilter) ([]model.Attendance, error) {
	pred := squirrel.And{}
	if filter.User != nil {
		pred = append(pred, squirrel.Eq{"user_id": *filter.User})
	}
	if filter.From != nil {
		pred = append(pred, squirrel.GtOrEq{"clock_in_time": *filter.From})
	}
	if filter.To != nil {
		pred = append(pred, squirrel.LtOrEq{"clock_in_time": *filter.To})
	}
	if filter.ClockedOut != nil {
		if *filter.ClockedOut {
			pred = append(pred, squirrel.NotEq{"clock_out_time": nil})
		} else {
			pred = append(pred, squirrel.Eq{"clock_out_time": nil})
		}
	}

	return dao.findWhere(ctx, pred, "clock_in_time ASC")
}

func (dao *AttendanceDAO) findWhere(ctx context.Context, pred squirrel.Sqlizer, orderBy string) ([]model.Attendance, error) {
	logger := dao.Logger.With("query", "find")

	builder := dao.Builder.
		Select("*").
		From("attendance").
		Where(pred)
	if orderBy != "" {
		builder = builder.OrderBy(orderBy)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	logger.Debug("build query", "sql", query, "args", args)

	rows := []attendanceRow{}
	if err := dao.SelectContext(ctx, &rows, query, args...); err != nil {
		logger.Warn("failed query execute", "error", err)
		return nil, err
	}

	records := make([]model.Attendance, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.toModel())
	}

	return records, nil
}

// Insert relies on the unique index over (task_id, user_id): a
// concurrent duplicate insert loses and reports model.ErrExists.
func (dao *AttendanceDAO) Insert(ctx context.Context, record model.Attendance) error {
	logger := dao.Logger.With("query", "insert")

	var clockInLat, clockInLng *float64
	if record.ClockInLocation != nil {
		clockInLat = &record.ClockInLocation.Latitude
		clockInLng = &record.ClockInLocation.Longitude
	}

	query, args, err := dao.Builder.
		Insert("attendance").
		Columns(
			"id", "created_at", "updated_at",
			"task_id", "user_id",
			"clock_in_time", "clock_in_lat", "clock_in_lng",
		).
		Values(
			record.ID, record.CreatedAt, record.UpdatedAt,
			record.Task, record.User,
			record.ClockInTime, clockInLat, clockInLng,
		).
		ToSql()
	if err != nil {
		return err
	}

	logger.Debug("build query", "sql", query, "args", args)

	if _, err := dao.ExecContext(ctx, query, args...); err != nil {
		if IsUniqueViolation(err) {
			return model.NewError("attendance", model.ErrExists)
		}

		logger.Warn("failed query execute", "error", err)

		return err
	}

	return nil
}

func (dao *AttendanceDAO) SetClockOut(ctx context.Context, id model.ID, at time.Time, location *model.Location) error {
	logger := dao.Logger.With("query", "setClockOut")

	data := map[string]any{
		"clock_out_time": at,
		"updated_at":     at,
	}
	if location != nil {
		data["clock_out_lat"] = location.Latitude
		data["clock_out_lng"] = location.Longitude
	}

	query, args, err := dao.Builder.
		Update("attendance").
		SetMap(data).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	logger.Debug("build query", "sql", query, "args", args)

	if _, err := dao.ExecContext(ctx, query, args...); err != nil {
		logger.Warn("failed query execute", "error", err)
		return err
	}

	return nil
}
