package utfall

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/nao1215/utfall/domain/model"
)

// RecordSource returns the next record to load, or io.EOF when there are no more.
type RecordSource func() (model.Record, error)

// LoadStats summarizes a load.
type LoadStats struct {
	// Rows is the number of committed rows.
	Rows int
	// Batches is the number of committed transactions.
	Batches int
}

// Loader rebuilds the destination table from a manifest and fills it in
// fixed-size batches, one transaction per batch.
type Loader struct {
	db        *sql.DB
	table     string
	manifest  model.Manifest
	batchSize int
	logger    *slog.Logger
}

// NewLoader creates a loader writing to table in db.
func NewLoader(db *sql.DB, table string, manifest model.Manifest) *Loader {
	return &Loader{
		db:        db,
		table:     table,
		manifest:  manifest,
		batchSize: DefaultBatchSize,
		logger:    slog.Default(),
	}
}

// WithBatchSize sets the number of rows per transaction.
// Values below MinBatchSize are ignored.
func (l *Loader) WithBatchSize(size int) *Loader {
	if size >= MinBatchSize {
		l.batchSize = size
	}
	return l
}

// WithLogger sets the logger. A nil logger is ignored.
func (l *Loader) WithLogger(logger *slog.Logger) *Loader {
	if logger != nil {
		l.logger = logger
	}
	return l
}

// CreateSchema drops the table if present, creates it with one column per manifest
// entry and creates an index for every indexed column.
// The table name and manifest are validated first; nothing is dropped when they are invalid.
// It runs outside any transaction; a failure leaves whatever was created so far.
func (l *Loader) CreateSchema(ctx context.Context) error {
	if err := newSchemaValidator().validateSchema(l.table, l.manifest); err != nil {
		return &SchemaError{Table: l.table, Statement: "validate", Err: err}
	}

	statements := make([]string, 0, 2+len(l.manifest))
	statements = append(statements, l.dropTableSQL(), l.createTableSQL())
	for _, c := range l.manifest.Indexed() {
		statements = append(statements, l.createIndexSQL(c))
	}

	for _, stmt := range statements {
		if _, err := l.db.ExecContext(ctx, stmt); err != nil {
			return &SchemaError{Table: l.table, Statement: stmt, Err: err}
		}
	}
	l.logger.Debug("schema created", "table", l.table, "columns", l.manifest.Len(), "indexes", len(l.manifest.Indexed()))
	return nil
}

// Load consumes records from next in order and commits them in batches.
// A failing batch is rolled back and returned as *LoadError; batches committed
// before it stay committed. Errors returned by next are passed through as is.
func (l *Loader) Load(ctx context.Context, next RecordSource) (*LoadStats, error) {
	stats := &LoadStats{}
	batch := make([]model.Record, 0, l.batchSize)

	for {
		record, err := next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return stats, err
		}

		batch = append(batch, record)
		if len(batch) >= l.batchSize {
			if err := l.flush(ctx, batch, stats); err != nil {
				return stats, err
			}
			batch = batch[:0]
		}
	}

	// Process remaining records
	if err := l.flush(ctx, batch, stats); err != nil {
		return stats, err
	}
	return stats, nil
}

// flush inserts batch in a single transaction and updates stats on commit.
// An empty batch is a no-op.
func (l *Loader) flush(ctx context.Context, batch []model.Record, stats *LoadStats) error {
	if len(batch) == 0 {
		return nil
	}
	number := stats.Batches + 1

	if err := l.insertBatch(ctx, batch); err != nil {
		return &LoadError{Table: l.table, Batch: number, Err: err}
	}

	stats.Batches = number
	stats.Rows += len(batch)
	l.logger.Debug("batch committed", "table", l.table, "batch", number, "rows", len(batch), "total", stats.Rows)
	return nil
}

// insertBatch runs the inserts of one batch inside a transaction.
func (l *Loader) insertBatch(ctx context.Context, batch []model.Record) (err error) {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err == nil {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			err = errors.Join(err, fmt.Errorf("failed to rollback transaction: %w", rbErr))
		}
	}()

	stmt, err := tx.PrepareContext(ctx, l.insertSQL()) //nolint:sqlclosecheck // Statement is closed below
	if err != nil {
		return fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer func() {
		_ = stmt.Close() // Ignore close error, the transaction outcome is what matters
	}()

	for _, record := range batch {
		if _, err := stmt.ExecContext(ctx, record.Values(l.manifest)...); err != nil {
			return fmt.Errorf("failed to insert record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// dropTableSQL returns the statement removing the previous table
func (l *Loader) dropTableSQL() string {
	return "DROP TABLE IF EXISTS " + quoteIdentifier(l.table)
}

// createTableSQL returns the CREATE TABLE statement derived from the manifest
func (l *Loader) createTableSQL() string {
	columns := make([]string, 0, len(l.manifest))
	for _, c := range l.manifest {
		columns = append(columns, fmt.Sprintf("%s %s", quoteIdentifier(c.Name), c.Type.String()))
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdentifier(l.table), strings.Join(columns, ", "))
}

// createIndexSQL returns the CREATE INDEX statement for column c
func (l *Loader) createIndexSQL(c model.ColumnDef) string {
	return fmt.Sprintf("CREATE INDEX %s ON %s (%s)",
		quoteIdentifier(c.IndexName()), quoteIdentifier(l.table), quoteIdentifier(c.Name))
}

// insertSQL returns the INSERT statement with one placeholder per column
func (l *Loader) insertSQL() string {
	columns := make([]string, len(l.manifest))
	placeholders := make([]string, len(l.manifest))
	for i, c := range l.manifest {
		columns[i] = quoteIdentifier(c.Name)
		placeholders[i] = "?"
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdentifier(l.table), strings.Join(columns, ", "), strings.Join(placeholders, ", "))
}

// quoteIdentifier quotes a SQLite identifier
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
