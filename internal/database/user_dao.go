package database

import (
	"context"
	"log/slog"

	"github.com/Masterminds/squirrel"

	"stafftrack/internal/model"
)

type UserDAO struct {
	Logger *slog.Logger
	*DB
}

func NewUserDAO(logger *slog.Logger, db *DB) *UserDAO {
	return &UserDAO{
		Logger: logger.With("dao", "user"),
		DB:     db,
	}
}

func (dao *UserDAO) Get(ctx context.Context, id model.ID) (model.User, error) {
	return dao.getWhere(ctx, squirrel.Eq{"id": id})
}

func (dao *UserDAO) GetByUserID(ctx context.Context, userID string) (model.User, error) {
	return dao.getWhere(ctx, squirrel.Eq{"user_id": userID})
}

func (dao *UserDAO) GetByEmail(ctx context.Context, email string) (model.User, error) {
	return dao.getWhere(ctx, squirrel.Eq{"email": email})
}

func (dao *UserDAO) GetByPhone(ctx context.Context, phone string) (model.User, error) {
	return dao.getWhere(ctx, squirrel.Eq{"phone": phone})
}

func (dao *UserDAO) getWhere(ctx context.Context, pred squirrel.Eq) (model.User, error) {
	logger := dao.Logger.With("query", "get")

	query, args, err := dao.Builder.
		Select("*").
		From("users").
		Where(pred).
		Limit(1).
		ToSql()
	if err != nil {
		return model.User{}, err
	}

	logger.Debug("build query", "sql", query, "args", args)

	var user model.User
	row := dao.QueryRowxContext(ctx, query, args...)
	if err := row.StructScan(&user); err != nil {
		if IsNoRows(err) {
			return model.User{}, model.NewError("user", model.ErrNotFound)
		}

		logger.Warn("failed query execute", "error", err)

		return model.User{}, err
	}

	return user, nil
}

func (dao *UserDAO) FindEmployees(ctx context.Context) ([]model.User, error) {
	logger := dao.Logger.With("query", "findEmployees")

	query, args, err := dao.Builder.
		Select("*").
		From("users").
		Where(squirrel.Eq{"role": model.RoleEmployee}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, err
	}

	logger.Debug("build query", "sql", query, "args", args)

	users := []model.User{}
	if err := dao.SelectContext(ctx, &users, query, args...); err != nil {
		logger.Warn("failed query execute", "error", err)
		return nil, err
	}

	return users, nil
}

func (dao *UserDAO) FindByIDs(ctx context.Context, ids []model.ID) ([]model.User, error) {
	if len(ids) == 0 {
		return []model.User{}, nil
	}

	logger := dao.Logger.With("query", "findByIDs")

	query, args, err := dao.Builder.
		Select("*").
		From("users").
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, err
	}

	logger.Debug("build query", "sql", query, "args", args)

	users := []model.User{}
	if err := dao.SelectContext(ctx, &users, query, args...); err != nil {
		logger.Warn("failed query execute", "error", err)
		return nil, err
	}

	return users, nil
}

func (dao *UserDAO) CountActiveEmployees(ctx context.Context) (int, error) {
	logger := dao.Logger.With("query", "countActiveEmployees")

	query, args, err := dao.Builder.
		Select("COUNT(*)").
		From("users").
		Where(squirrel.Eq{"role": model.RoleEmployee, "is_active": true}).
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

func (dao *UserDAO) Insert(ctx context.Context, user model.User) error {
	logger := dao.Logger.With("query", "insert")

	query, args, err := dao.Builder.
		Insert("users").
		Columns(
			"id", "created_at", "updated_at",
			"name", "user_id", "email", "phone",
			"password_hash", "role", "is_active",
		).
		Values(
			user.ID, user.CreatedAt, user.UpdatedAt,
			user.Name, user.UserID, user.Email, user.Phone,
			user.PasswordHash, user.Role, user.IsActive,
		).
		ToSql()
	if err != nil {
		return err
	}

	logger.Debug("build query", "sql", query, "args", args)

	if _, err := dao.ExecContext(ctx, query, args...); err != nil {
		if IsUniqueViolation(err) {
			return model.NewError("user", model.ErrExists)
		}

		logger.Warn("failed query execute", "error", err)

		return err
	}

	return nil
}

func (dao *UserDAO) Update(ctx context.Context, user model.User) error {
	logger := dao.Logger.With("query", "update")

	query, args, err := dao.Builder.
		Update("users").
		SetMap(map[string]any{
			"updated_at": user.UpdatedAt,
			"name":       user.Name,
			"email":      user.Email,
			"phone":      user.Phone,
			"is_active":  user.IsActive,
		}).
		Where(squirrel.Eq{"id": user.ID}).
		ToSql()
	if err != nil {
		return err
	}

	logger.Debug("build query", "sql", query, "args", args)

	if _, err := dao.ExecContext(ctx, query, args...); err != nil {
		if IsUniqueViolation(err) {
			return model.NewError("user", model.ErrExists)
		}

		logger.Warn("failed query execute", "error", err)

		return err
	}

	return nil
}
