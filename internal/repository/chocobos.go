package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/zacmccul/chocobo-breeding-calculator/internal/domain"
)

const chocoboColumns = `
	c.id,
	c.owner_id,
	c.name,
	c.gender,
	c.max_speed_sire,
	c.max_speed_dam,
	c.stamina_sire,
	c.stamina_dam,
	c.cunning_sire,
	c.cunning_dam,
	c.acceleration_sire,
	c.acceleration_dam,
	c.endurance_sire,
	c.endurance_dam,
	c.attempts_remaining,
	c.created_at,
	c.version
`

func scanChocoboRow(c *domain.Chocobo) []any {
	return []any{
		&c.ID,
		&c.OwnerID,
		&c.Name,
		&c.Gender,
		&c.MaxSpeed.Sire,
		&c.MaxSpeed.Dam,
		&c.Stamina.Sire,
		&c.Stamina.Dam,
		&c.Cunning.Sire,
		&c.Cunning.Dam,
		&c.Acceleration.Sire,
		&c.Acceleration.Dam,
		&c.Endurance.Sire,
		&c.Endurance.Dam,
		&c.AttemptsRemaining,
		&c.CreatedAt,
		&c.Version,
	}
}

func (r *Repository) CreateChocobo(c *domain.Chocobo) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := insertChocobo(ctx, tx, c); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

// insertChocobo 在事务中插入一只陆行鸟及其能力
func insertChocobo(ctx context.Context, tx *sql.Tx, c *domain.Chocobo) error {
	query := `
		INSERT INTO chocobos (
			owner_id, name, gender,
			max_speed_sire, max_speed_dam,
			stamina_sire, stamina_dam,
			cunning_sire, cunning_dam,
			acceleration_sire, acceleration_dam,
			endurance_sire, endurance_dam,
			attempts_remaining
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, version
	`

	args := []any{
		c.OwnerID, c.Name, c.Gender,
		c.MaxSpeed.Sire, c.MaxSpeed.Dam,
		c.Stamina.Sire, c.Stamina.Dam,
		c.Cunning.Sire, c.Cunning.Dam,
		c.Acceleration.Sire, c.Acceleration.Dam,
		c.Endurance.Sire, c.Endurance.Dam,
		c.AttemptsRemaining,
	}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.CreatedAt, &c.Version); err != nil {
		return err
	}

	for _, ability := range c.Abilities {
		query := `
			INSERT INTO chocobo_abilities (chocobo_id, ability)
			VALUES ($1, $2)
		`
		if _, err := tx.ExecContext(ctx, query, c.ID, ability); err != nil {
			return err
		}
	}

	return nil
}

func (r *Repository) GetChocoboByID(id int64) (*domain.Chocobo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT ` + chocoboColumns + `, ca.ability
		FROM chocobos c
		LEFT JOIN chocobo_abilities ca ON c.id = ca.chocobo_id
		WHERE c.id = $1
	`

	rows, err := r.dbpool.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chocobo *domain.Chocobo

	for rows.Next() {
		row := &domain.Chocobo{}
		var ability sql.NullString

		dst := append(scanChocoboRow(row), &ability)
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if chocobo == nil {
			// 第一行才需要解析陆行鸟本身，后续的行只带来新的能力
			row.Abilities = make([]domain.Ability, 0)
			chocobo = row
		}

		if ability.Valid {
			chocobo.Abilities = append(chocobo.Abilities, domain.Ability(ability.String))
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if chocobo == nil {
		return nil, sql.ErrNoRows
	}

	return chocobo, nil
}

func (r *Repository) GetChocobosByOwnerID(ownerID int64) ([]*domain.Chocobo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT ` + chocoboColumns + `, ca.ability
		FROM chocobos c
		LEFT JOIN chocobo_abilities ca ON c.id = ca.chocobo_id
		WHERE c.owner_id = $1
		ORDER BY c.id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	chocobosMap := make(map[int64]*domain.Chocobo)
	order := make([]int64, 0)

	for rows.Next() {
		row := &domain.Chocobo{}
		var ability sql.NullString

		dst := append(scanChocoboRow(row), &ability)
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		chocobo, exists := chocobosMap[row.ID]
		if !exists {
			// 第一次查到这只陆行鸟，需要在 map 中初始化
			row.Abilities = make([]domain.Ability, 0)
			chocobosMap[row.ID] = row
			order = append(order, row.ID)
			chocobo = row
		}

		if ability.Valid {
			chocobo.Abilities = append(chocobo.Abilities, domain.Ability(ability.String))
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	// 按查询顺序组装结果，保证列表顺序稳定
	chocobos := make([]*domain.Chocobo, 0, len(order))
	for _, id := range order {
		chocobos = append(chocobos, chocobosMap[id])
	}

	return chocobos, nil
}

func (r *Repository) UpdateChocobo(c *domain.Chocobo) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		UPDATE chocobos
		SET
			name = $1,
			gender = $2,
			max_speed_sire = $3,
			max_speed_dam = $4,
			stamina_sire = $5,
			stamina_dam = $6,
			cunning_sire = $7,
			cunning_dam = $8,
			acceleration_sire = $9,
			acceleration_dam = $10,
			endurance_sire = $11,
			endurance_dam = $12,
			attempts_remaining = $13,
			version = version + 1
		WHERE id = $14 AND version = $15
		RETURNING version
	`

	args := []any{
		c.Name, c.Gender,
		c.MaxSpeed.Sire, c.MaxSpeed.Dam,
		c.Stamina.Sire, c.Stamina.Dam,
		c.Cunning.Sire, c.Cunning.Dam,
		c.Acceleration.Sire, c.Acceleration.Dam,
		c.Endurance.Sire, c.Endurance.Dam,
		c.AttemptsRemaining, c.ID, c.Version,
	}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&c.Version); err != nil {
		return err
	}

	// 能力直接整体替换，数量很少，没有必要做差量更新
	query = `DELETE FROM chocobo_abilities WHERE chocobo_id = $1`
	if _, err := tx.ExecContext(ctx, query, c.ID); err != nil {
		return err
	}

	for _, ability := range c.Abilities {
		query := `
			INSERT INTO chocobo_abilities (chocobo_id, ability)
			VALUES ($1, $2)
		`
		if _, err := tx.ExecContext(ctx, query, c.ID, ability); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteChocobo(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		DELETE FROM chocobos WHERE id = $1
	`

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}

// ReplaceFlock 用导入的数据整体替换某个用户的所有陆行鸟
func (r *Repository) ReplaceFlock(ownerID int64, chocobos []*domain.Chocobo) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// 先删除这个用户原有的陆行鸟
	query := `DELETE FROM chocobos WHERE owner_id = $1`
	if _, err := tx.ExecContext(ctx, query, ownerID); err != nil {
		return err
	}

	for _, c := range chocobos {
		c.OwnerID = ownerID
		if err := insertChocobo(ctx, tx, c); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}
