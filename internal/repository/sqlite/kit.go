package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/kitcraft/internal/apperror"
	"github.com/sakif/kitcraft/internal/model"
	"github.com/sakif/kitcraft/internal/repository"
)

var _ repository.KitRepository = (*DB)(nil)

// CreateKit inserts a generated kit.
//
// The materials/tools/instructions sequences are marshalled to JSON documents.
// The caller's kit gets the generated ID and timestamp written back (pointer
// receiver on the model, same pattern as CreateUser).
func (db *DB) CreateKit(ctx context.Context, kit *model.ProjectKit) error {
	kit.ID = xid.New().String()
	kit.CreatedAt = time.Now()

	materials, err := json.Marshal(kit.Materials)
	if err != nil {
		return fmt.Errorf("sqlite: encoding materials: %w", err)
	}
	tools, err := json.Marshal(kit.Tools)
	if err != nil {
		return fmt.Errorf("sqlite: encoding tools: %w", err)
	}
	instructions, err := json.Marshal(kit.Instructions)
	if err != nil {
		return fmt.Errorf("sqlite: encoding instructions: %w", err)
	}

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO kits (id, user_id, project_name, description, prompt,
		                   skill_level, estimated_time, materials, tools,
		                   instructions, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		kit.ID,
		kit.UserID,
		kit.ProjectName,
		kit.Description,
		kit.Prompt,
		string(kit.SkillLevel),
		kit.EstimatedTime,
		string(materials),
		string(tools),
		string(instructions),
		kit.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating kit: %w", err)
	}

	return nil
}

// GetKitByID retrieves a single kit owned by userID.
//
// The user_id predicate is part of the lookup, not an after-the-fact check:
// another user's kit ID yields NotFound, never Forbidden, so kit IDs can't be
// probed across accounts.
func (db *DB) GetKitByID(ctx context.Context, userID, id string) (*model.ProjectKit, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT id, user_id, project_name, description, prompt, skill_level,
		        estimated_time, materials, tools, instructions, created_at
		 FROM kits
		 WHERE id = ? AND user_id = ?`,
		id, userID,
	)

	kit, err := scanKit(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("kit", id)
		}
		return nil, fmt.Errorf("sqlite: getting kit %s: %w", id, err)
	}

	return kit, nil
}

// ListKits retrieves a user's kits, newest first.
//
// Newest-first matches the client showing the latest project at the top of
// the collection. A row whose JSON documents fail to decode is skipped with
// a warning — the store degrades to "that kit is gone", never to a failed
// listing (fallback-to-empty on corruption).
func (db *DB) ListKits(ctx context.Context, userID string, opts repository.ListOptions) ([]model.ProjectKit, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, user_id, project_name, description, prompt, skill_level,
		        estimated_time, materials, tools, instructions, created_at
		 FROM kits
		 WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ? OFFSET ?`,
		userID,
		limit,
		offset,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing kits: %w", err)
	}
	defer rows.Close()

	kits := make([]model.ProjectKit, 0, limit)

	for rows.Next() {
		kit, err := scanKit(rows.Scan)
		if err != nil {
			var corrupt *corruptKitError
			if asCorrupt(err, &corrupt) {
				db.logger.Warn("skipping kit with corrupt stored JSON",
					slog.String("kitID", corrupt.kitID),
					slog.String("error", corrupt.cause.Error()),
				)
				continue
			}
			return nil, fmt.Errorf("sqlite: scanning kit row: %w", err)
		}
		kits = append(kits, *kit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating kits: %w", err)
	}

	return kits, nil
}

// corruptKitError marks a row that scanned fine but whose JSON documents
// failed to decode. ListKits skips these; GetKitByID surfaces them.
type corruptKitError struct {
	kitID string
	cause error
}

func (e *corruptKitError) Error() string {
	return fmt.Sprintf("kit %s has corrupt stored JSON: %v", e.kitID, e.cause)
}

func asCorrupt(err error, target **corruptKitError) bool {
	c, ok := err.(*corruptKitError)
	if ok {
		*target = c
	}
	return ok
}

// scanKit reads one kit row via the given Scan function (works for both
// sql.Row and sql.Rows) and decodes the JSON document columns.
func scanKit(scan func(dest ...any) error) (*model.ProjectKit, error) {
	var (
		kit          model.ProjectKit
		skillLevel   string
		materials    string
		tools        string
		instructions string
	)

	err := scan(
		&kit.ID,
		&kit.UserID,
		&kit.ProjectName,
		&kit.Description,
		&kit.Prompt,
		&skillLevel,
		&kit.EstimatedTime,
		&materials,
		&tools,
		&instructions,
		&kit.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	kit.SkillLevel = model.SkillLevel(skillLevel)

	if err := json.Unmarshal([]byte(materials), &kit.Materials); err != nil {
		return nil, &corruptKitError{kitID: kit.ID, cause: err}
	}
	if err := json.Unmarshal([]byte(tools), &kit.Tools); err != nil {
		return nil, &corruptKitError{kitID: kit.ID, cause: err}
	}
	if err := json.Unmarshal([]byte(instructions), &kit.Instructions); err != nil {
		return nil, &corruptKitError{kitID: kit.ID, cause: err}
	}

	return &kit, nil
}
