package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ansochagas/editaliza/store"
)

func (d *DB) CreateTopic(ctx context.Context, create *store.Topic) (*store.Topic, error) {
	stmt := `INSERT INTO topic (subject_id, description, status)
		VALUES (` + placeholders(3) + `)
		RETURNING id, status`

	status := create.Status
	if status == "" {
		status = store.TopicStatusPending
	}

	if err := d.db.QueryRowContext(ctx, stmt, create.SubjectID, create.Description, status).Scan(
		&create.ID,
		&create.Status,
	); err != nil {
		return nil, fmt.Errorf("failed to create topic: %w", err)
	}

	return create, nil
}

func (d *DB) ListTopics(ctx context.Context, find *store.FindTopic) ([]*store.Topic, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "topic.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.SubjectID; v != nil {
		where, args = append(where, "topic.subject_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.PlanID; v != nil {
		where, args = append(where, "topic.subject_id IN (SELECT id FROM subject WHERE plan_id = "+placeholder(len(args)+1)+")"), append(args, *v)
	}
	if v := find.Status; v != nil {
		where, args = append(where, "topic.status = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT id, subject_id, description, status, completion_date
		FROM topic
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY topic.id ASC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query topics: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Topic, 0)
	for rows.Next() {
		var topic store.Topic
		var completionDate sql.NullString
		if err := rows.Scan(
			&topic.ID,
			&topic.SubjectID,
			&topic.Description,
			&topic.Status,
			&completionDate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan topic: %w", err)
		}
		if completionDate.Valid {
			topic.CompletionDate = &completionDate.String
		}
		list = append(list, &topic)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate topics: %w", err)
	}

	return list, nil
}

func (d *DB) UpdateTopic(ctx context.Context, update *store.UpdateTopic) error {
	set, args := []string{}, []any{}

	if v := update.Description; v != nil {
		set, args = append(set, "description = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Status; v != nil {
		set, args = append(set, "status = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.CompletionDate; v != nil {
		set, args = append(set, "completion_date = "+placeholder(len(args)+1)), append(args, *v)
	} else if update.ClearCompletionDate {
		set = append(set, "completion_date = NULL")
	}

	if len(set) == 0 {
		return nil
	}

	args = append(args, update.ID)

	stmt := `UPDATE topic SET ` + strings.Join(set, ", ") + ` WHERE id = ` + placeholder(len(args))
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("failed to update topic: %w", err)
	}

	return nil
}

func (d *DB) DeleteTopic(ctx context.Context, delete *store.DeleteTopic) error {
	stmt := `DELETE FROM topic WHERE id = ` + placeholder(1)
	result, err := d.db.ExecContext(ctx, stmt, delete.ID)
	if err != nil {
		return fmt.Errorf("failed to delete topic: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("topic not found")
	}

	return nil
}
