package database

import (
	"context"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"

	"stafftrack/internal/model"
)

type TaskDAO struct {
	Logger *slog.Logger
	*DB
}

func NewTaskDAO(logger *slog.Logger, db *DB) *TaskDAO {
	return &TaskDAO{
		Logger: logger.With("dao", "task"),
		DB:     db,
	}
}

func (dao *TaskDAO) Get(ctx context.Context, id model.ID) (model.Task, error) {
	logger := dao.Logger.With("query", "get")

	query, args, err := dao.Builder.
		Select("*").
		From("tasks").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Task{}, err
	}

	logger.Debug("build query", "sql", query, "args", args)

	var task model.Task
	row := dao.QueryRowxContext(ctx, query, args...)
	if err := row.StructScan(&task); err != nil {
		if IsNoRows(err) {
			return model.Task{}, model.NewError("task", model.ErrNotFound)
		}

		logger.Warn("failed query execute", "error", err)

		return model.Task{}, err
	}

	tasks, err := dao.attachEmployees(ctx, []model.Task{task})
	if err != nil {
		return model.Task{}, err
	}

	return tasks[0], nil
}

func (dao *TaskDAO) FindOnDate(ctx context.Context, date time.Time) ([]model.Task, error) {
	return dao.findWhere(ctx, squirrel.And{
		squirrel.Eq{"task_date": date.Format("2006-01-02")},
		squirrel.NotEq{"status": model.TaskCompleted},
	}, "created_at ASC")
}

func (dao *TaskDAO) FindAll(ctx context.Context) ([]model.Task, error) {
	return dao.findWhere(ctx, nil, "task_date DESC")
}

func (dao *TaskDAO) FindForEmployee(ctx context.Context, employee model.ID, from time.Time) ([]model.Task, error) {
	logger := dao.Logger.With("query", "findForEmployee")

	query, args, err := dao.Builder.
		Select("t.*").
		From("tasks t").
		Join("task_employees te ON te.task_id = t.id").
		Where(squirrel.Eq{"te.user_id": employee}).
		Where(squirrel.GtOrEq{"t.task_date": from.Format("2006-01-02")}).
		OrderBy("t.task_date ASC", "t.start_time ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	logger.Debug("build query", "sql", query, "args", args)

	tasks := []model.Task{}
	if err := dao.SelectContext(ctx, &tasks, query, args...); err != nil {
		logger.Warn("failed query execute", "error", err)
		return nil, err
	}

	return dao.attachEmployees(ctx, tasks)
}

func (dao *TaskDAO) CountForEmployee(ctx context.Context, employee model.ID, from time.Time) (int, error) {
	logger := dao.Logger.With("query", "countForEmployee")

	query, args, err := dao.Builder.
		Select("COUNT(*)").
		From("tasks t").
		Join("task_employees te ON te.task_id = t.id").
		Where(squirrel.Eq{"te.user_id": employee}).
		Where(squirrel.GtOrEq{"t.task_date": from.Format("2006-01-02")}).
		ToSql()
	if err != nil {
		return 0, err
	}

	logger.Debug("build query", "sql", query, "args", args)

	var count int
	if err := dao.QueryRowxContext(ctx, query, args...).Scan(&count); err != nil {
		logger.Warn("failed query execute", "error", err)
		return 0, err
	}

	return count, nil
}

func (dao *TaskDAO) Insert(ctx context.Context, task model.Task) error {
	logger := dao.Logger.With("query", "insert")

	query, args, err := dao.Builder.
		Insert("tasks").
		Columns(
			"id", "created_at", "updated_at",
			"title", "task_date", "start_time", "end_time",
			"status", "created_by",
		).
		Values(
			task.ID, task.CreatedAt, task.UpdatedAt,
			task.Title, task.Date.Format("2006-01-02"), task.StartTime, task.EndTime,
			task.Status, task.CreatedBy,
		).
		ToSql()
	if err != nil {
		return err
	}

	logger.Debug("build query", "sql", query, "args", args)

	if _, err := dao.ExecContext(ctx, query, args...); err != nil {
		logger.Warn("failed query execute", "error", err)
		return err
	}

	return dao.AddEmployees(ctx, task.ID, task.Employees)
}

func (dao *TaskDAO) UpdateStatus(ctx context.Context, id model.ID, status model.TaskStatus) error {
	logger := dao.Logger.With("query", "updateStatus")

	query, args, err := dao.Builder.
		Update("tasks").
		SetMap(map[string]any{
			"status":     status,
			"updated_at": time.Now(),
		}).
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

func (dao *TaskDAO) AddEmployees(ctx context.Context, id model.ID, employees []model.ID) error {
	if len(employees) == 0 {
		return nil
	}

	logger := dao.Logger.With("query", "addEmployees")

	builder := dao.Builder.
		Insert("task_employees").
		Columns("task_id", "user_id")
	for _, employee := range employees {
		builder = builder.Values(id, employee)
	}

	query, args, err := builder.
		Suffix("ON CONFLICT DO NOTHING").
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

func (dao *TaskDAO) RemoveEmployee(ctx context.Context, id model.ID, employee model.ID) error {
	logger := dao.Logger.With("query", "removeEmployee")

	query, args, err := dao.Builder.
		Delete("task_employees").
		Where(squirrel.Eq{"task_id": id, "user_id": employee}).
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

func (dao *TaskDAO) findWhere(ctx context.Context, pred any, orderBy string) ([]model.Task, error) {
	logger := dao.Logger.With("query", "find")

	builder := dao.Builder.
		Select("*").
		From("tasks")
	if pred != nil {
		builder = builder.Where(pred)
	}

	query, args, err := builder.OrderBy(orderBy).ToSql()
	if err != nil {
		return nil, err
	}

	logger.Debug("build query", "sql", query, "args", args)

	tasks := []model.Task{}
	if err := dao.SelectContext(ctx, &tasks, query, args...); err != nil {
		logger.Warn("failed query execute", "error", err)
		return nil, err
	}

	return dao.attachEmployees(ctx, tasks)
}

// attachEmployees fills the staff lists for a batch of tasks with one
// query against the join table.
func (dao *TaskDAO) attachEmployees(ctx context.Context, tasks []model.Task) ([]model.Task, error) {
	if len(tasks) == 0 {
		return tasks, nil
	}

	ids := make([]model.ID, 0, len(tasks))
	for _, task := range tasks {
		ids = append(ids, task.ID)
	}

	query, args, err := dao.Builder.
		Select("task_id", "user_id").
		From("task_employees").
		Where(squirrel.Eq{"task_id": ids}).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows := []struct {
		TaskID model.ID `db:"task_id"`
		UserID model.ID `db:"user_id"`
	}{}
	if err := dao.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	byTask := make(map[model.ID][]model.ID, len(tasks))
	for _, row := range rows {
		byTask[row.TaskID] = append(byTask[row.TaskID], row.UserID)
	}

	for i := range tasks {
		tasks[i].Employees = byTask[tasks[i].ID]
	}

	return tasks, nil
}
