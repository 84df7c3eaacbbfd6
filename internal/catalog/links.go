package catalog

import (
	"context"
	"database/sql"
	"fmt"
)

// Link records that the source row (table, externalID) became entityID.
// Re-linking the same row keeps the first entity.
func (s *Store) Link(ctx context.Context, table string, externalID, entityID int64) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT OR IGNORE INTO external_links (table_name, external_id, entity_id)
		VALUES (?, ?, ?)
	`, table, externalID, entityID)
	if err != nil {
		return fmt.Errorf("link %s/%d: %w", table, externalID, err)
	}
	return nil
}

// LinkedID returns the entity materialized from (table, externalID).
func (s *Store) LinkedID(ctx context.Context, table string, externalID int64) (int64, bool, error) {
	var id int64
	err := s.DB.QueryRowContext(ctx, `
		SELECT entity_id FROM external_links
		WHERE table_name = ? AND external_id = ?
	`, table, externalID).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("linked id %s/%d: %w", table, externalID, err)
	}
	return id, true, nil
}
