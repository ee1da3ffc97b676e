package sqlite

import (
	"context"
	"fmt"

	"github.com/sakif/kitcraft/internal/model"
	"github.com/sakif/kitcraft/internal/repository"
)

var _ repository.CartRepository = (*DB)(nil)

// ListCart returns the user's cart in first-addition order.
func (db *DB) ListCart(ctx context.Context, userID string) ([]model.Material, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT name, quantity, estimated_price, buy_link
		 FROM cart_items
		 WHERE user_id = ?
		 ORDER BY position ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing cart: %w", err)
	}
	defer rows.Close()

	items := make([]model.Material, 0)

	for rows.Next() {
		var m model.Material
		if err := rows.Scan(&m.Name, &m.Quantity, &m.EstimatedPrice, &m.BuyLink); err != nil {
			return nil, fmt.Errorf("sqlite: scanning cart row: %w", err)
		}
		items = append(items, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating cart: %w", err)
	}

	return items, nil
}

// AddMaterials merges the given materials into the user's cart.
//
// INSERT OR IGNORE + the UNIQUE(user_id, name, buy_link) constraint does the
// dedupe in one statement per item: a (name, buyLink) pair already present in
// the cart is silently skipped, including duplicates within the incoming
// batch itself. position continues from the current maximum so first-addition
// order is preserved across calls.
//
// The whole merge runs in one transaction — either the full batch lands or
// none of it does.
func (db *DB) AddMaterials(ctx context.Context, userID string, materials []model.Material) error {
	if len(materials) == 0 {
		return nil
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning cart transaction: %w", err)
	}
	defer tx.Rollback() // no-op after Commit

	var next int
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position), 0) + 1 FROM cart_items WHERE user_id = ?`,
		userID,
	).Scan(&next)
	if err != nil {
		return fmt.Errorf("sqlite: reading cart position: %w", err)
	}

	for _, m := range materials {
		res, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO cart_items
			   (user_id, position, name, quantity, estimated_price, buy_link)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			userID, next, m.Name, m.Quantity, m.EstimatedPrice, m.BuyLink,
		)
		if err != nil {
			return fmt.Errorf("sqlite: adding cart item %q: %w", m.Name, err)
		}

		// Only consume a position when the row actually landed, so ignored
		// duplicates leave no gaps.
		inserted, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("sqlite: checking rows affected: %w", err)
		}
		if inserted > 0 {
			next++
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing cart transaction: %w", err)
	}

	return nil
}

// ClearCart replaces the user's cart with an empty collection.
// Clearing an already-empty cart is not an error.
func (db *DB) ClearCart(ctx context.Context, userID string) error {
	_, err := db.conn.ExecContext(ctx,
		`DELETE FROM cart_items WHERE user_id = ?`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: clearing cart: %w", err)
	}
	return nil
}
