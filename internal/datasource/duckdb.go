// Package datasource loads OHLCV bar series from CSV or Parquet files
// through DuckDB. The evaluation engine itself is I/O-free; this loader
// exists for the CLI and for callers that keep bar files on disk.
package datasource

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/argo-strategy/internal/logger"
	"github.com/rxtech-lab/argo-strategy/internal/types"
	"github.com/rxtech-lab/argo-strategy/pkg/errors"
	"go.uber.org/zap"
)

// DuckDBLoader reads bar files through an in-memory DuckDB instance.
type DuckDBLoader struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// NewDuckDBLoader creates a loader backed by an in-memory DuckDB database.
func NewDuckDBLoader(log *logger.Logger) (*DuckDBLoader, error) {
	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to open duckdb", err)
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &DuckDBLoader{
		db:     db,
		logger: log,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}, nil
}

// LoadBars reads the file at path into an ordered bar series. The file must
// provide time, open, high, low, close and volume columns; CSV and Parquet
// are supported by extension.
func (d *DuckDBLoader) LoadBars(path string) ([]types.Bar, error) {
	d.logger.Debug("loading bars", zap.String("path", path))

	reader, err := readerFor(path)
	if err != nil {
		return nil, err
	}

	if _, err := d.db.Exec(`DROP VIEW IF EXISTS bars;`); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to drop existing bars view", err)
	}

	// CREATE VIEW is not expressible with squirrel; the reader function is
	// chosen from a fixed set above, only the path is interpolated.
	createView := fmt.Sprintf(`CREATE VIEW bars AS SELECT * FROM %s('%s');`, reader, path)
	if _, err := d.db.Exec(createView); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to create bars view for %s", path)
	}

	query, args, err := d.sq.
		Select("time", "open", "high", "low", "close", "volume").
		From("bars").
		OrderBy("time ASC").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build bars query", err)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query bars", err)
	}
	defer rows.Close()

	var bars []types.Bar

	for rows.Next() {
		var bar types.Bar
		if err := rows.Scan(&bar.Time, &bar.Open, &bar.High, &bar.Low, &bar.Close, &bar.Volume); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan bar row", err)
		}

		bars = append(bars, bar)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to read bar rows", err)
	}

	if len(bars) == 0 {
		return nil, errors.Newf(errors.ErrCodeDataNotFound, "no bars found in %s", path)
	}

	d.logger.Debug("bars loaded", zap.String("path", path), zap.Int("count", len(bars)))

	return bars, nil
}

// Close releases the underlying database.
func (d *DuckDBLoader) Close() error {
	return d.db.Close()
}

func readerFor(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return "read_csv_auto", nil
	case ".parquet":
		return "read_parquet", nil
	default:
		return "", errors.Newf(errors.ErrCodeInvalidParameter, "unsupported bar file extension %q", filepath.Ext(path))
	}
}
