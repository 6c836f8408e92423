package store

import (
	"context"
	"fmt"

	"lead-manager/internal/database"
	"lead-manager/internal/model"

	"github.com/jackc/pgx/v5"
)

// 所有 lead 查詢皆以 owner_id 限定範圍，他人資料與不存在一律回 pgx.ErrNoRows

func CreateLead(ctx context.Context, db database.DB, l *model.Lead) (*model.Lead, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO leads (owner_id, first_name, last_name, email, company, note)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, date_created, date_last_updated`,
		l.OwnerID,
		l.FirstName,
		l.LastName,
		l.Email,
		l.Company,
		l.Note,
	)
	if err := row.Scan(&l.ID, &l.DateCreated, &l.DateLastUpdated); err != nil {
		return nil, fmt.Errorf("CreateLead: %w", err)
	}
	return l, nil
}

func ListLeadsByOwner(ctx context.Context, db database.DB, ownerID int) ([]model.Lead, error) {
	rows, err := db.Query(ctx,
		`SELECT id, owner_id, first_name, last_name, email, company, note, date_created, date_last_updated
		 FROM leads WHERE owner_id = $1
		 ORDER BY id`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListLeadsByOwner: %w", err)
	}
	defer rows.Close()

	var leads []model.Lead
	for rows.Next() {
		var l model.Lead
		if err := rows.Scan(
			&l.ID,
			&l.OwnerID,
			&l.FirstName,
			&l.LastName,
			&l.Email,
			&l.Company,
			&l.Note,
			&l.DateCreated,
			&l.DateLastUpdated,
		); err != nil {
			return nil, fmt.Errorf("ListLeadsByOwner: %w", err)
		}
		leads = append(leads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListLeadsByOwner: %w", err)
	}
	return leads, nil
}

func GetLeadByIDAndOwner(ctx context.Context, db database.DB, leadID, ownerID int) (*model.Lead, error) {
	row := db.QueryRow(ctx,
		`SELECT id, owner_id, first_name, last_name, email, company, note, date_created, date_last_updated
		 FROM leads WHERE id = $1 AND owner_id = $2`,
		leadID,
		ownerID,
	)
	l := &model.Lead{}
	if err := row.Scan(
		&l.ID,
		&l.OwnerID,
		&l.FirstName,
		&l.LastName,
		&l.Email,
		&l.Company,
		&l.Note,
		&l.DateCreated,
		&l.DateLastUpdated,
	); err != nil {
		return nil, fmt.Errorf("GetLeadByIDAndOwner: %w", err)
	}
	return l, nil
}

// UpdateLead 以 id 與 owner_id 整批覆寫五個內容欄位並刷新 date_last_updated
// date_created 不變；查無資料回傳包裹的 pgx.ErrNoRows
func UpdateLead(ctx context.Context, db database.DB, l *model.Lead) error {
	row := db.QueryRow(ctx,
		`UPDATE leads SET
		     first_name = $1,
		     last_name = $2,
		     email = $3,
		     company = $4,
		     note = $5,
		     date_last_updated = now()
		 WHERE id = $6 AND owner_id = $7
		 RETURNING date_last_updated`,
		l.FirstName,
		l.LastName,
		l.Email,
		l.Company,
		l.Note,
		l.ID,
		l.OwnerID,
	)
	if err := row.Scan(&l.DateLastUpdated); err != nil {
		return fmt.Errorf("UpdateLead: %w", err)
	}
	return nil
}

func DeleteLead(ctx context.Context, db database.DB, leadID, ownerID int) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM leads WHERE id = $1 AND owner_id = $2`,
		leadID,
		ownerID,
	)
	if err != nil {
		return fmt.Errorf("DeleteLead: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DeleteLead: %w", pgx.ErrNoRows)
	}
	return nil
}
