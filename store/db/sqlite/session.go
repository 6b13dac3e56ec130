package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ansochagas/editaliza/store"
)

var sessionFields = []string{
	"uid", "plan_id", "topic_id", "subject_name", "topic_description",
	"session_date", "type", "status", "notes", "questions_solved",
	"time_studied_seconds",
}

func sessionArgs(create *store.Session) []any {
	status := create.Status
	if status == "" {
		status = store.SessionStatusPending
	}
	return []any{
		create.UID, create.PlanID, create.TopicID, create.SubjectName, create.TopicDescription,
		create.Date, create.Type, status, create.Notes, create.QuestionsSolved,
		create.TimeStudiedSeconds,
	}
}

func (d *DB) CreateSession(ctx context.Context, create *store.Session) (*store.Session, error) {
	stmt := `INSERT INTO study_session (` + strings.Join(sessionFields, ", ") + `)
		VALUES (` + placeholders(len(sessionFields)) + `)
		RETURNING id, status, created_ts, updated_ts`

	if err := d.db.QueryRowContext(ctx, stmt, sessionArgs(create)...).Scan(
		&create.ID,
		&create.Status,
		&create.CreatedTs,
		&create.UpdatedTs,
	); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return create, nil
}

func (d *DB) ListSessions(ctx context.Context, find *store.FindSession) ([]*store.Session, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "study_session.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "study_session.uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.PlanID; v != nil {
		where, args = append(where, "study_session.plan_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.TopicID; v != nil {
		where, args = append(where, "study_session.topic_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.Type; v != nil {
		where, args = append(where, "study_session.type = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.Status; v != nil {
		where, args = append(where, "study_session.status = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.DateBefore; v != nil {
		where, args = append(where, "study_session.session_date < "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.DateOnOrAfter; v != nil {
		where, args = append(where, "study_session.session_date >= "+placeholder(len(args)+1)), append(args, *v)
	}

	// ISO dates sort chronologically as text; id breaks ties in creation order.
	query := `
		SELECT
			id, uid, plan_id, topic_id, subject_name, topic_description,
			session_date, type, status, notes, questions_solved,
			time_studied_seconds, created_ts, updated_ts
		FROM study_session
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY study_session.session_date ASC, study_session.id ASC`

	if find.Limit != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *find.Limit)
		if find.Offset != nil {
			query = fmt.Sprintf("%s OFFSET %d", query, *find.Offset)
		}
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Session, 0)
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}

	return list, nil
}

func scanSession(rows *sql.Rows) (*store.Session, error) {
	var session store.Session
	var topicID sql.NullInt32
	var questionsSolved sql.NullInt64
	if err := rows.Scan(
		&session.ID,
		&session.UID,
		&session.PlanID,
		&topicID,
		&session.SubjectName,
		&session.TopicDescription,
		&session.Date,
		&session.Type,
		&session.Status,
		&session.Notes,
		&questionsSolved,
		&session.TimeStudiedSeconds,
		&session.CreatedTs,
		&session.UpdatedTs,
	); err != nil {
		return nil, fmt.Errorf("failed to scan session: %w", err)
	}
	if topicID.Valid {
		session.TopicID = &topicID.Int32
	}
	if questionsSolved.Valid {
		v := int(questionsSolved.Int64)
		session.QuestionsSolved = &v
	}
	return &session, nil
}

func (d *DB) UpdateSession(ctx context.Context, update *store.UpdateSession) error {
	set, args := []string{}, []any{}

	if v := update.Date; v != nil {
		set, args = append(set, "session_date = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Status; v != nil {
		set, args = append(set, "status = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Notes; v != nil {
		set, args = append(set, "notes = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.QuestionsSolved; v != nil {
		set, args = append(set, "questions_solved = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.TimeStudiedSeconds; v != nil {
		set, args = append(set, "time_studied_seconds = "+placeholder(len(args)+1)), append(args, *v)
	}

	if len(set) == 0 {
		return nil
	}

	set = append(set, "updated_ts = strftime('%s', 'now')")
	args = append(args, update.ID)

	stmt := `UPDATE study_session SET ` + strings.Join(set, ", ") + ` WHERE id = ` + placeholder(len(args))
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	return nil
}

func (d *DB) DeleteSession(ctx context.Context, delete *store.DeleteSession) error {
	stmt := `DELETE FROM study_session WHERE id = ` + placeholder(1)
	result, err := d.db.ExecContext(ctx, stmt, delete.ID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("session not found")
	}

	return nil
}

func (d *DB) ReplaceSessions(ctx context.Context, planID int32, sessions []*store.Session) (int, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM study_session WHERE plan_id = `+placeholder(1), planID); err != nil {
		return 0, fmt.Errorf("failed to wipe sessions: %w", err)
	}

	stmt := `INSERT INTO study_session (` + strings.Join(sessionFields, ", ") + `)
		VALUES (` + placeholders(len(sessionFields)) + `)
		RETURNING id, status, created_ts, updated_ts`
	for _, session := range sessions {
		if err := tx.QueryRowContext(ctx, stmt, sessionArgs(session)...).Scan(
			&session.ID,
			&session.Status,
			&session.CreatedTs,
			&session.UpdatedTs,
		); err != nil {
			return 0, fmt.Errorf("failed to insert session: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return len(sessions), nil
}

func (d *DB) ApplySessionMoves(ctx context.Context, planID int32, moves []store.SessionMove) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt := `UPDATE study_session SET session_date = ` + placeholder(1) +
		`, updated_ts = strftime('%s', 'now') WHERE id = ` + placeholder(2) +
		` AND plan_id = ` + placeholder(3)
	for _, move := range moves {
		if _, err := tx.ExecContext(ctx, stmt, move.Date, move.ID, planID); err != nil {
			return fmt.Errorf("failed to move session %d: %w", move.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE plan SET postponement_count = postponement_count + 1, updated_ts = strftime('%s', 'now') WHERE id = `+placeholder(1),
		planID,
	); err != nil {
		return fmt.Errorf("failed to increment postponement count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
