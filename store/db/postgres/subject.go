package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/ansochagas/editaliza/store"
)

func (d *DB) CreateSubject(ctx context.Context, create *store.Subject) (*store.Subject, error) {
	stmt := `INSERT INTO subject (plan_id, name, priority)
		VALUES (` + placeholders(3) + `)
		RETURNING id`

	if err := d.db.QueryRowContext(ctx, stmt, create.PlanID, create.Name, create.Priority).Scan(&create.ID); err != nil {
		return nil, fmt.Errorf("failed to create subject: %w", err)
	}

	return create, nil
}

func (d *DB) ListSubjects(ctx context.Context, find *store.FindSubject) ([]*store.Subject, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "subject.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.PlanID; v != nil {
		where, args = append(where, "subject.plan_id = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT id, plan_id, name, priority
		FROM subject
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY subject.id ASC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query subjects: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Subject, 0)
	for rows.Next() {
		var subject store.Subject
		if err := rows.Scan(&subject.ID, &subject.PlanID, &subject.Name, &subject.Priority); err != nil {
			return nil, fmt.Errorf("failed to scan subject: %w", err)
		}
		list = append(list, &subject)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate subjects: %w", err)
	}

	return list, nil
}

func (d *DB) UpdateSubject(ctx context.Context, update *store.UpdateSubject) error {
	set, args := []string{}, []any{}

	if v := update.Name; v != nil {
		set, args = append(set, "name = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Priority; v != nil {
		set, args = append(set, "priority = "+placeholder(len(args)+1)), append(args, *v)
	}

	if len(set) == 0 {
		return nil
	}

	args = append(args, update.ID)

	stmt := `UPDATE subject SET ` + strings.Join(set, ", ") + ` WHERE id = ` + placeholder(len(args))
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("failed to update subject: %w", err)
	}

	return nil
}

func (d *DB) DeleteSubject(ctx context.Context, delete *store.DeleteSubject) error {
	stmt := `DELETE FROM subject WHERE id = ` + placeholder(1)
	result, err := d.db.ExecContext(ctx, stmt, delete.ID)
	if err != nil {
		return fmt.Errorf("failed to delete subject: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("subject not found")
	}

	return nil
}
