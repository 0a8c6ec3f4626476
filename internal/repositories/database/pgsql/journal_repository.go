package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rentora-app/rentora_backend/internal/apperrors"
	"github.com/rentora-app/rentora_backend/internal/core/domain"
	portsrepo "github.com/rentora-app/rentora_backend/internal/core/ports/repositories"
	"github.com/rentora-app/rentora_backend/internal/models"
	"github.com/rentora-app/rentora_backend/internal/utils/mapping"
	"github.com/rentora-app/rentora_backend/internal/utils/pagination"
)

const entryColumns = `entry_id, company_id, entry_number, entry_date, entry_type, description, total_debit, total_credit, status, reference, created_at, created_by, last_updated_at, last_updated_by`

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entry data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.CompanyID,
		&m.EntryNumber,
		&m.EntryDate,
		&m.EntryType,
		&m.Description,
		&m.TotalDebit,
		&m.TotalCredit,
		&m.Status,
		&m.Reference,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindEntryByID retrieves a journal entry header by its ID.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE entry_id = $1;
	`
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("journal entry %s not found", entryID))
		}
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}
	entry := mapping.ToDomainJournalEntry(m)
	return &entry, nil
}

// FindItemsByEntryID retrieves all line items of an entry, ordered by line number.
func (r *PgxJournalRepository) FindItemsByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryItem, error) {
	query := `
		SELECT entry_id, line_number, account_code, debit, credit, description
		FROM journal_entry_items
		WHERE entry_id = $1
		ORDER BY line_number;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	items := []models.JournalEntryItem{}
	for rows.Next() {
		var m models.JournalEntryItem
		if err := rows.Scan(&m.EntryID, &m.LineNumber, &m.AccountCode, &m.Debit, &m.Credit, &m.Description); err != nil {
			return nil, fmt.Errorf("failed to scan item row for entry %s: %w", entryID, err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating item rows for entry %s: %w", entryID, err)
	}
	return mapping.ToDomainJournalEntryItemSlice(items), nil
}

// ListEntriesByCompany retrieves a keyset-paginated list of entries for a
// company, newest first. The cursor is (entry_date, created_at); one extra
// row is fetched to decide whether a next page exists.
func (r *PgxJournalRepository) ListEntriesByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + entryColumns + ` FROM journal_entries`
	filterClause := `WHERE company_id = $1`
	orderByClause := `ORDER BY entry_date DESC, created_at DESC`

	args := []interface{}{companyID}
	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		filterClause += ` AND (entry_date, created_at) < ($2, $3)`
		args = append(args, lastDate, lastCreatedAt)
	}
	query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query journal entries for company %s: %w", companyID, err)
	}
	defer rows.Close()

	modelEntries := make([]models.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanEntry(rows)
		if scanErr != nil {
			return nil, nil, fmt.Errorf("failed to scan journal entry row for company %s: %w", companyID, scanErr)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating journal entry rows for company %s: %w", companyID, err)
	}

	var nextTokenVal *string
	results := modelEntries
	if len(modelEntries) > limit {
		last := modelEntries[limit-1]
		newToken := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		nextTokenVal = &newToken
		results = modelEntries[:limit]
	}

	entries := make([]domain.JournalEntry, len(results))
	for i, m := range results {
		entries[i] = mapping.ToDomainJournalEntry(m)
	}
	return entries, nextTokenVal, nil
}

// NextEntrySequenceInTx atomically increments and returns the per-company,
// per-year entry sequence. Running inside the posting transaction means an
// aborted posting leaves a gap rather than a reused number.
func (r *PgxJournalRepository) NextEntrySequenceInTx(ctx context.Context, tx pgx.Tx, companyID string, year int) (int64, error) {
	query := `
		INSERT INTO entry_sequences (company_id, year, last_seq)
		VALUES ($1, $2, 1)
		ON CONFLICT (company_id, year)
		DO UPDATE SET last_seq = entry_sequences.last_seq + 1
		RETURNING last_seq;
	`
	var seq int64
	if err := tx.QueryRow(ctx, query, companyID, year).Scan(&seq); err != nil {
		return 0, fmt.Errorf("failed to advance entry sequence for company %s year %d: %w", companyID, year, err)
	}
	return seq, nil
}

// SaveEntryInTx inserts the entry header and batch-inserts its line items.
func (r *PgxJournalRepository) SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, items []domain.JournalEntryItem) error {
	m := mapping.ToModelJournalEntry(entry)

	headerQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := tx.Exec(ctx, headerQuery,
		m.EntryID,
		m.CompanyID,
		m.EntryNumber,
		m.EntryDate,
		m.EntryType,
		m.Description,
		m.TotalDebit,
		m.TotalCredit,
		m.Status,
		m.Reference,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: entry number %s already exists for company %s", apperrors.ErrDuplicate, m.EntryNumber, m.CompanyID)
		}
		return fmt.Errorf("failed to insert journal entry %s: %w", m.EntryID, err)
	}

	itemQuery := `
		INSERT INTO journal_entry_items (entry_id, line_number, account_code, debit, credit, description)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	batch := &pgx.Batch{}
	for _, item := range items {
		mi := mapping.ToModelJournalEntryItem(item)
		batch.Queue(itemQuery, mi.EntryID, mi.LineNumber, mi.AccountCode, mi.Debit, mi.Credit, mi.Description)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert items for entry %s: %w", m.EntryID, err)
	}
	return nil
}

// SumItemsInTx re-reads the persisted line items and returns their sums.
func (r *PgxJournalRepository) SumItemsInTx(ctx context.Context, tx pgx.Tx, entryID string) (portsrepo.SumResult, error) {
	query := `
		SELECT COALESCE(SUM(debit), 0), COALESCE(SUM(credit), 0)
		FROM journal_entry_items
		WHERE entry_id = $1;
	`
	var sums portsrepo.SumResult
	if err := tx.QueryRow(ctx, query, entryID).Scan(&sums.TotalDebit, &sums.TotalCredit); err != nil {
		return portsrepo.SumResult{}, fmt.Errorf("failed to sum items for entry %s: %w", entryID, err)
	}
	return sums, nil
}

// MarkEntryPostedInTx flips the entry status from DRAFT to POSTED.
func (r *PgxJournalRepository) MarkEntryPostedInTx(ctx context.Context, tx pgx.Tx, entryID string) error {
	query := `
		UPDATE journal_entries
		SET status = 'POSTED'
		WHERE entry_id = $1 AND status = 'DRAFT';
	`
	cmdTag, err := tx.Exec(ctx, query, entryID)
	if err != nil {
		return fmt.Errorf("failed to mark entry %s posted: %w", entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: entry %s is not in DRAFT status", apperrors.ErrConflict, entryID)
	}
	return nil
}
