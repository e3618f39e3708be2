package repositories

import (
	"context"

	"kds-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ModifierRepository struct {
	DB *pgxpool.Pool
}

func NewModifierRepository(db *pgxpool.Pool) *ModifierRepository {
	return &ModifierRepository{DB: db}
}

// ListByLines loads the modifiers for a set of lines in one query, keyed by
// line id. Modifier rows are immutable, so no ordering guarantee beyond
// insertion is needed.
func (r *ModifierRepository) ListByLines(ctx context.Context, lineIDs []uuid.UUID) (map[uuid.UUID][]*models.Modifier, error) {
	byLine := make(map[uuid.UUID][]*models.Modifier, len(lineIDs))
	if len(lineIDs) == 0 {
		return byLine, nil
	}

	rows, err := r.DB.Query(ctx,
		`SELECT id, line_id, name, option_name, price_delta, mod_type
		 FROM modifiers WHERE line_id = ANY($1) ORDER BY id`, lineIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var m models.Modifier
		if err := rows.Scan(&m.ID, &m.LineID, &m.Name, &m.OptionName, &m.PriceDelta, &m.Type); err != nil {
			return nil, err
		}
		byLine[m.LineID] = append(byLine[m.LineID], &m)
	}
	return byLine, rows.Err()
}
