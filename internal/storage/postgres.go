package storage

import (
	"context"
	"database/sql"
	"errors"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

// Stage sentinels, one per read in WarriorStats. The underlying database
// error is logged here and never travels past this package.
var (
	ErrCountActive         = errors.New("active warriors count failed")
	ErrCountInactive       = errors.New("inactive warriors count failed")
	ErrCountTotal          = errors.New("total warriors count failed")
	ErrStatusBreakdown     = errors.New("warriors status breakdown failed")
	ErrDatabaseUnreachable = errors.New("database unreachable")
)

type Warrior struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
	Status   string `json:"status"`
}

// StatsResult is the aggregated view of the warriors table. ByStatus counts
// only active warriors, so its values sum to Active.
type StatsResult struct {
	Active   int            `json:"active"`
	Inactive int            `json:"inactive"`
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
}

type Store struct {
	db     *sql.DB
	logger *zap.SugaredLogger
}

func NewStore(db *sql.DB, logger *zap.SugaredLogger) *Store {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Store{db: db, logger: logger}
}

// WarriorStats runs the four reads inside one read-only REPEATABLE READ
// transaction so all counts come from a single snapshot and
// active + inactive == total holds even under concurrent writes.
// Reads run in order; the first failure rolls back and later stages are
// never issued.
func (s *Store) WarriorStats(ctx context.Context) (*StatsResult, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelRepeatableRead,
		ReadOnly:  true,
	})
	if err != nil {
		s.logger.Errorw("begin stats transaction failed", "err", err)
		return nil, ErrDatabaseUnreachable
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			s.logger.Warnf("rollback failed: %v", err)
		}
	}()

	stats := &StatsResult{ByStatus: make(map[string]int)}

	if err := tx.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM warriors WHERE is_active = TRUE`,
	).Scan(&stats.Active); err != nil {
		s.logger.Errorw("stats query failed", "stage", "active_count", "err", err)
		return nil, ErrCountActive
	}

	if err := tx.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM warriors WHERE is_active = FALSE`,
	).Scan(&stats.Inactive); err != nil {
		s.logger.Errorw("stats query failed", "stage", "inactive_count", "err", err)
		return nil, ErrCountInactive
	}

	if err := tx.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM warriors`,
	).Scan(&stats.Total); err != nil {
		s.logger.Errorw("stats query failed", "stage", "total_count", "err", err)
		return nil, ErrCountTotal
	}

	if err := foldStatuses(ctx, tx, stats.ByStatus); err != nil {
		s.logger.Errorw("stats query failed", "stage", "status_breakdown", "err", err)
		return nil, ErrStatusBreakdown
	}

	if err := tx.Commit(); err != nil {
		s.logger.Errorw("commit stats transaction failed", "err", err)
		return nil, ErrDatabaseUnreachable
	}
	return stats, nil
}

// foldStatuses scans the status of every active warrior into byStatus,
// incrementing from zero for labels not yet seen. An empty result set
// leaves the map empty.
func foldStatuses(ctx context.Context, tx *sql.Tx, byStatus map[string]int) error {
	rows, err := tx.QueryContext(ctx, `SELECT status FROM warriors WHERE is_active = TRUE`)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var status string
		if err := rows.Scan(&status); err != nil {
			return err
		}
		byStatus[status]++
	}
	return rows.Err()
}
