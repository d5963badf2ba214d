package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/waypoint/internal/db"
	"github.com/alexanderramin/waypoint/internal/domain"
)

// SQLiteCurriculumRepo implements CurriculumRepo. Save writes the record and
// its language and self-assessment rows; run it inside a UnitOfWork.
type SQLiteCurriculumRepo struct {
	db db.DBTX
}

func NewSQLiteCurriculumRepo(conn db.DBTX) *SQLiteCurriculumRepo {
	return &SQLiteCurriculumRepo{db: conn}
}

const curriculumColumns = `id, owner_id, primary_goal, specific_area, self_assessment,
	experience_description, hours_per_week, pace, learning_style, difficulty, tools,
	age_range, status, feedback, generated_text, provenance, domain, model,
	created_at, updated_at`

func (r *SQLiteCurriculumRepo) Save(ctx context.Context, c *domain.Curriculum) error {
	p := c.Profile
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO curricula (`+curriculumColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, p.OwnerID, p.PrimaryGoal, p.SpecificArea, p.SelfAssessmentText(),
		p.ExperienceDescription, p.HoursPerWeek, p.Pace, p.LearningStyle, p.Difficulty, p.Tools,
		p.AgeRange, p.Status, p.Feedback, c.Text, string(c.Provenance), c.Domain, c.Model,
		formatTime(c.CreatedAt), formatTime(c.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("curriculum %s: %w", c.ID, ErrConflict)
		}
		return fmt.Errorf("inserting curriculum: %w", err)
	}

	for i, lang := range p.Languages {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO curriculum_languages (curriculum_id, position, name, priority) VALUES (?, ?, ?, ?)`,
			c.ID, i, lang.Name, lang.Priority,
		)
		if err != nil {
			return fmt.Errorf("inserting curriculum language %q: %w", lang.Name, err)
		}
	}
	for i, tag := range p.SelfAssessment {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO curriculum_self_assessment (curriculum_id, position, tag) VALUES (?, ?, ?)`,
			c.ID, i, tag,
		)
		if err != nil {
			return fmt.Errorf("inserting self-assessment tag %q: %w", tag, err)
		}
	}
	return nil
}

func (r *SQLiteCurriculumRepo) GetByID(ctx context.Context, id string) (*domain.Curriculum, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+curriculumColumns+` FROM curricula WHERE id = ?`, id)
	c, err := scanCurriculum(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("curriculum %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	if err := r.attachProfileLists(ctx, []*domain.Curriculum{c}); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *SQLiteCurriculumRepo) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Curriculum, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+curriculumColumns+` FROM curricula WHERE owner_id = ? ORDER BY created_at DESC, id DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing curricula: %w", err)
	}

	var out []*domain.Curriculum
	for rows.Next() {
		c, err := scanCurriculum(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating curricula: %w", err)
	}
	// Close before the next query; the in-memory pool has one connection.
	rows.Close()

	if err := r.attachProfileLists(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SQLiteCurriculumRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM curricula WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting curriculum: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting curriculum: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("curriculum %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteCurriculumRepo) attachProfileLists(ctx context.Context, cs []*domain.Curriculum) error {
	for _, c := range cs {
		langs, err := r.languages(ctx, c.ID)
		if err != nil {
			return err
		}
		c.Profile.Languages = langs

		tags, err := r.selfAssessment(ctx, c.ID)
		if err != nil {
			return err
		}
		// Records saved before per-tag rows existed only have the joined text.
		if len(tags) > 0 {
			c.Profile.SelfAssessment = tags
		}
	}
	return nil
}

func (r *SQLiteCurriculumRepo) selfAssessment(ctx context.Context, curriculumID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT tag FROM curriculum_self_assessment WHERE curriculum_id = ? ORDER BY position`,
		curriculumID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing self-assessment tags: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("scanning self-assessment tag: %w", err)
		}
		out = append(out, tag)
	}
	return out, rows.Err()
}

func (r *SQLiteCurriculumRepo) languages(ctx context.Context, curriculumID string) ([]domain.LanguagePreference, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name, priority FROM curriculum_languages WHERE curriculum_id = ? ORDER BY position`,
		curriculumID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing curriculum languages: %w", err)
	}
	defer rows.Close()

	var out []domain.LanguagePreference
	for rows.Next() {
		var l domain.LanguagePreference
		if err := rows.Scan(&l.Name, &l.Priority); err != nil {
			return nil, fmt.Errorf("scanning curriculum language: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func scanCurriculum(s rowScanner) (*domain.Curriculum, error) {
	var (
		c                domain.Curriculum
		p                = &c.Profile
		selfAssessment   string
		provenance       string
		created, updated string
	)
	err := s.Scan(
		&c.ID, &p.OwnerID, &p.PrimaryGoal, &p.SpecificArea, &selfAssessment,
		&p.ExperienceDescription, &p.HoursPerWeek, &p.Pace, &p.LearningStyle, &p.Difficulty, &p.Tools,
		&p.AgeRange, &p.Status, &p.Feedback, &c.Text, &provenance, &c.Domain, &c.Model,
		&created, &updated,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning curriculum: %w", err)
	}

	p.SelfAssessment = splitList(selfAssessment)
	c.Provenance = domain.Provenance(provenance)
	if c.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	return &c, nil
}
