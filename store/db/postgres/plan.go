package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ansochagas/editaliza/store"
)

func (d *DB) CreatePlan(ctx context.Context, create *store.Plan) (*store.Plan, error) {
	studyHours, err := json.Marshal(create.StudyHours)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal study hours: %w", err)
	}

	fields := []string{
		"uid", "owner_id", "name", "exam_date", "study_hours",
		"session_duration_minutes", "has_essay", "review_mode",
		"daily_question_goal", "weekly_question_goal",
	}
	args := []any{
		create.UID, create.OwnerID, create.Name, create.ExamDate, string(studyHours),
		create.SessionDurationMinutes, create.HasEssay, create.ReviewMode,
		create.DailyQuestionGoal, create.WeeklyQuestionGoal,
	}

	stmt := `INSERT INTO plan (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(args)) + `)
		RETURNING id, postponement_count, created_ts, updated_ts`

	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(
		&create.ID,
		&create.PostponementCount,
		&create.CreatedTs,
		&create.UpdatedTs,
	); err != nil {
		return nil, fmt.Errorf("failed to create plan: %w", err)
	}

	return create, nil
}

func (d *DB) ListPlans(ctx context.Context, find *store.FindPlan) ([]*store.Plan, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "plan.id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "plan.uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.OwnerID; v != nil {
		where, args = append(where, "plan.owner_id = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT
			id, uid, owner_id, name, exam_date, study_hours,
			session_duration_minutes, has_essay, review_mode,
			daily_question_goal, weekly_question_goal, postponement_count,
			created_ts, updated_ts
		FROM plan
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY plan.id ASC`

	if find.Limit != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *find.Limit)
		if find.Offset != nil {
			query = fmt.Sprintf("%s OFFSET %d", query, *find.Offset)
		}
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query plans: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Plan, 0)
	for rows.Next() {
		var plan store.Plan
		var studyHours string
		if err := rows.Scan(
			&plan.ID,
			&plan.UID,
			&plan.OwnerID,
			&plan.Name,
			&plan.ExamDate,
			&studyHours,
			&plan.SessionDurationMinutes,
			&plan.HasEssay,
			&plan.ReviewMode,
			&plan.DailyQuestionGoal,
			&plan.WeeklyQuestionGoal,
			&plan.PostponementCount,
			&plan.CreatedTs,
			&plan.UpdatedTs,
		); err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		if err := json.Unmarshal([]byte(studyHours), &plan.StudyHours); err != nil {
			return nil, fmt.Errorf("failed to unmarshal study hours: %w", err)
		}
		list = append(list, &plan)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate plans: %w", err)
	}

	return list, nil
}

func (d *DB) UpdatePlan(ctx context.Context, update *store.UpdatePlan) error {
	set, args := []string{}, []any{}

	if v := update.Name; v != nil {
		set, args = append(set, "name = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.ExamDate; v != nil {
		set, args = append(set, "exam_date = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.StudyHours; v != nil {
		studyHours, err := json.Marshal(*v)
		if err != nil {
			return fmt.Errorf("failed to marshal study hours: %w", err)
		}
		set, args = append(set, "study_hours = "+placeholder(len(args)+1)), append(args, string(studyHours))
	}
	if v := update.SessionDurationMinutes; v != nil {
		set, args = append(set, "session_duration_minutes = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.HasEssay; v != nil {
		set, args = append(set, "has_essay = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.ReviewMode; v != nil {
		set, args = append(set, "review_mode = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.DailyQuestionGoal; v != nil {
		set, args = append(set, "daily_question_goal = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.WeeklyQuestionGoal; v != nil {
		set, args = append(set, "weekly_question_goal = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.PostponementCount; v != nil {
		set, args = append(set, "postponement_count = "+placeholder(len(args)+1)), append(args, *v)
	}

	if len(set) == 0 {
		return nil
	}

	set = append(set, "updated_ts = EXTRACT(EPOCH FROM NOW())")
	args = append(args, update.ID)

	stmt := `UPDATE plan SET ` + strings.Join(set, ", ") + ` WHERE id = ` + placeholder(len(args))
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("failed to update plan: %w", err)
	}

	return nil
}

func (d *DB) DeletePlan(ctx context.Context, delete *store.DeletePlan) error {
	stmt := `DELETE FROM plan WHERE id = ` + placeholder(1)
	result, err := d.db.ExecContext(ctx, stmt, delete.ID)
	if err != nil {
		return fmt.Errorf("failed to delete plan: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("plan not found")
	}

	return nil
}
