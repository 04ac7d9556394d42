package db

import (
	"context"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"

	"github.com/kamal845/task-management/internal/config"
)

const connectBaseDelay = 500 * time.Millisecond

// ConnectDB opens the MySQL pool, retrying with exponential backoff so the
// API survives the database coming up after it in a container environment.
func ConnectDB(ctx context.Context, conf *config.Config) (*sqlx.DB, error) {
	params := conf.DbParams
	if params == "" {
		params = "parseTime=true&multiStatements=true"
	}

	dsn := fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?%s",
		conf.DbUser,
		conf.DbPassword,
		conf.DbHost,
		conf.DbPort,
		conf.DbName,
		params,
	)

	var db *sqlx.DB
	backoff := retry.WithMaxRetries(5, retry.NewExponential(connectBaseDelay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var err error
		db, err = sqlx.ConnectContext(ctx, "mysql", dsn)
		if err != nil {
			zap.L().Warn("mysql not ready, retrying", zap.Error(err))
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return db, nil
}
