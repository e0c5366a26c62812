package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/cyberguardian/academy/internal/game"
)

// ProfileRepo stores progression records. Scalar fields get real columns;
// the list-shaped state (stats, completed missions, achievements,
// inventory) is kept as JSONB so content changes never need a migration.
type ProfileRepo struct {
	db *DB
}

func NewProfileRepo(db *DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

// Insert writes a freshly seeded progression record for a new account.
func (r *ProfileRepo) Insert(ctx context.Context, p *game.Player) error {
	statsJSON, err := json.Marshal(p.Stats)
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}
	completedJSON, err := marshalIDs(p.CompletedMissions)
	if err != nil {
		return err
	}
	achievementsJSON, err := marshalIDs(p.Achievements)
	if err != nil {
		return err
	}
	inventoryJSON, err := marshalIDs(p.Inventory)
	if err != nil {
		return err
	}

	_, err = r.db.Pool.Exec(ctx,
		`INSERT INTO profiles (
			account_id, email, name, level, xp, specialization_id,
			stats, completed_missions, achievements, inventory, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		p.ID, p.Email, p.Name, p.Level, p.XP, p.SpecializationID,
		statsJSON, completedJSON, achievementsJSON, inventoryJSON, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

// Find loads one progression record. Returns nil, nil when absent.
func (r *ProfileRepo) Find(ctx context.Context, accountID string) (*game.Player, error) {
	var (
		p                game.Player
		statsJSON        []byte
		completedJSON    []byte
		achievementsJSON []byte
		inventoryJSON    []byte
	)
	err := r.db.Pool.QueryRow(ctx,
		`SELECT account_id, email, name, level, xp, specialization_id,
		        stats, completed_missions, achievements, inventory, updated_at
		 FROM profiles WHERE account_id = $1`, accountID,
	).Scan(
		&p.ID, &p.Email, &p.Name, &p.Level, &p.XP, &p.SpecializationID,
		&statsJSON, &completedJSON, &achievementsJSON, &inventoryJSON, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(statsJSON, &p.Stats); err != nil {
		return nil, fmt.Errorf("unmarshal stats: %w", err)
	}
	if p.CompletedMissions, err = unmarshalIDs(completedJSON); err != nil {
		return nil, err
	}
	if p.Achievements, err = unmarshalIDs(achievementsJSON); err != nil {
		return nil, err
	}
	if p.Inventory, err = unmarshalIDs(inventoryJSON); err != nil {
		return nil, err
	}

	p.XPToNext = p.Level*game.XPPerLevel - p.XP
	return &p, nil
}

// Update overwrites the mutable progression fields. Email and created_at
// never change after Insert.
func (r *ProfileRepo) Update(ctx context.Context, p *game.Player) error {
	statsJSON, err := json.Marshal(p.Stats)
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}
	completedJSON, err := marshalIDs(p.CompletedMissions)
	if err != nil {
		return err
	}
	achievementsJSON, err := marshalIDs(p.Achievements)
	if err != nil {
		return err
	}
	inventoryJSON, err := marshalIDs(p.Inventory)
	if err != nil {
		return err
	}

	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE profiles SET
			name = $2, level = $3, xp = $4, specialization_id = $5,
			stats = $6, completed_missions = $7, achievements = $8,
			inventory = $9, updated_at = $10
		 WHERE account_id = $1`,
		p.ID, p.Name, p.Level, p.XP, p.SpecializationID,
		statsJSON, completedJSON, achievementsJSON, inventoryJSON, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update profile: no row for account %s", p.ID)
	}
	return nil
}

// marshalIDs keeps empty slices as JSON [] instead of null.
func marshalIDs(ids []string) ([]byte, error) {
	if ids == nil {
		ids = []string{}
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return nil, fmt.Errorf("marshal id list: %w", err)
	}
	return b, nil
}

func unmarshalIDs(data []byte) ([]string, error) {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("unmarshal id list: %w", err)
	}
	return ids, nil
}
