package favorites

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/pokekeeper/internal/client/models"
	"github.com/dmitrijs2005/pokekeeper/internal/common"
	"github.com/dmitrijs2005/pokekeeper/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Insert(ctx context.Context, f *models.Favorite) error {
	query := `INSERT INTO favorites (id, user_id, item_id, item_name, image_url, added_at)
			VALUES (?, ?, ?, ?, ?, ?)`

	var imageURL sql.NullString
	if f.ImageURL != "" {
		imageURL = sql.NullString{String: f.ImageURL, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query, f.ID, f.UserID, f.ItemID, f.ItemName, imageURL, f.AddedAt.UnixNano())
	if err != nil {
		switch {
		case dbx.IsUniqueViolation(err):
			return common.ErrorAlreadyExists
		case dbx.IsForeignKeyViolation(err):
			return common.ErrorMissingReference
		}
		return fmt.Errorf("failed to insert favorite: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, userID string, itemID int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM favorites WHERE user_id = ? AND item_id = ?`, userID, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *SQLiteRepository) Exists(ctx context.Context, userID string, itemID int) (bool, error) {
	var n int
	query := `SELECT COUNT(*) FROM favorites WHERE user_id = ? AND item_id = ?`
	if err := r.db.QueryRowContext(ctx, query, userID, itemID).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return n > 0, nil
}

// ListByUser breaks added_at ties by insertion order (rowid), newest first.
func (r *SQLiteRepository) ListByUser(ctx context.Context, userID string) ([]models.Favorite, error) {
	query := `SELECT id, user_id, item_id, item_name, image_url, added_at FROM favorites
			WHERE user_id = ? ORDER BY added_at DESC, rowid DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select favorites: %w", err)
	}
	defer rows.Close()

	result := make([]models.Favorite, 0)
	for rows.Next() {
		var (
			f        models.Favorite
			imageURL sql.NullString
			added    int64
		)
		if err := rows.Scan(&f.ID, &f.UserID, &f.ItemID, &f.ItemName, &imageURL, &added); err != nil {
			return nil, fmt.Errorf("failed to scan favorite row: %w", err)
		}
		f.ImageURL = imageURL.String
		f.AddedAt = time.Unix(0, added).UTC()
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate favorite rows: %w", err)
	}
	return result, nil
}
