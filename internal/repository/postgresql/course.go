package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/samriddhi-018/infosys-LGD/internal/domain/course"
	"github.com/samriddhi-018/infosys-LGD/internal/pkg/database"
)

const courseSelect = `
	SELECT c.id, c.title, c.description, c.created_by, u.username, c.deadline, c.created_at
	FROM courses c
	JOIN users u ON u.id = c.created_by
`

const moduleSelect = `
	SELECT m.id, m.course_id, m.position, m.heading, m.description,
		COALESCE(
			ARRAY_AGG(mc.user_id::text ORDER BY mc.completed_at) FILTER (WHERE mc.user_id IS NOT NULL),
			'{}'
		) AS completed_by
	FROM modules m
	LEFT JOIN module_completions mc ON mc.module_id = m.id
`

type courseRepositoryImpl struct {
	db *database.DB
}

func NewCourseRepository(db *database.DB) course.CourseRepository {
	return &courseRepositoryImpl{db: db}
}

func scanCourse(row interface{ Scan(dest ...any) error }) (course.Course, error) {
	var c course.Course
	err := row.Scan(&c.ID, &c.Title, &c.Description, &c.CreatedBy, &c.CreatedByUsername, &c.Deadline, &c.CreatedAt)
	return c, err
}

func scanModule(row interface{ Scan(dest ...any) error }) (course.Module, error) {
	var m course.Module
	err := row.Scan(&m.ID, &m.CourseID, &m.Position, &m.Heading, &m.Description, &m.CompletedBy)
	return m, err
}

func (r *courseRepositoryImpl) queryCourses(ctx context.Context, sql string, args ...any) ([]course.Course, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := make([]course.Course, 0)
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

func (r *courseRepositoryImpl) queryModules(ctx context.Context, sql string, args ...any) ([]course.Module, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	modules := make([]course.Module, 0)
	for rows.Next() {
		m, err := scanModule(rows)
		if err != nil {
			return nil, err
		}
		modules = append(modules, m)
	}
	return modules, rows.Err()
}

// Create implements course.CourseRepository.
func (r *courseRepositoryImpl) Create(ctx context.Context, c course.Course) (course.Course, error) {
	q := GetQuerier(ctx, r.db)

	if c.ID == "" {
		c.ID = newID()
	}

	err := q.QueryRow(ctx, `
		INSERT INTO courses (id, title, description, created_by, deadline)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`, c.ID, c.Title, c.Description, c.CreatedBy, c.Deadline).Scan(&c.CreatedAt)
	if err != nil {
		return course.Course{}, err
	}
	return c, nil
}

// CreateModules inserts modules in the given order. Positions are assigned
// from the slice index so the stored order matches the input.
func (r *courseRepositoryImpl) CreateModules(ctx context.Context, courseID string, modules []course.Module) ([]course.Module, error) {
	q := GetQuerier(ctx, r.db)

	created := make([]course.Module, 0, len(modules))
	for i, m := range modules {
		if m.ID == "" {
			m.ID = newID()
		}
		m.CourseID = courseID
		m.Position = i
		m.CompletedBy = []string{}

		_, err := q.Exec(ctx, `
			INSERT INTO modules (id, course_id, position, heading, description)
			VALUES ($1, $2, $3, $4, $5)
		`, m.ID, m.CourseID, m.Position, m.Heading, m.Description)
		if err != nil {
			return nil, err
		}
		created = append(created, m)
	}
	return created, nil
}

func (r *courseRepositoryImpl) AddEmployeeEmails(ctx context.Context, courseID string, emails []string) ([]string, error) {
	if len(emails) == 0 {
		return []string{}, nil
	}
	q := GetQuerier(ctx, r.db)

	ids := make([]string, len(emails))
	for i := range emails {
		ids[i] = newID()
	}

	rows, err := q.Query(ctx, `
		INSERT INTO employee_emails (id, course_id, email)
		SELECT x.id, $1, x.email
		FROM UNNEST($2::uuid[], $3::text[]) WITH ORDINALITY AS x(id, email, ord)
		ORDER BY x.ord
		ON CONFLICT (course_id, email) DO NOTHING
		RETURNING email
	`, courseID, ids, emails)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	inserted := make([]string, 0, len(emails))
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		inserted = append(inserted, email)
	}
	return inserted, rows.Err()
}

func (r *courseRepositoryImpl) GetByID(ctx context.Context, id string) (course.Course, error) {
	q := GetQuerier(ctx, r.db)
	return scanCourse(q.QueryRow(ctx, courseSelect+` WHERE c.id = $1`, id))
}

// List returns every course, newest first.
func (r *courseRepositoryImpl) List(ctx context.Context) ([]course.Course, error) {
	return r.queryCourses(ctx, courseSelect+` ORDER BY c.created_at DESC, c.id DESC`)
}

func (r *courseRepositoryImpl) ListByRecipientEmail(ctx context.Context, email string) ([]course.Course, error) {
	return r.queryCourses(ctx, courseSelect+`
		JOIN employee_emails e ON e.course_id = c.id
		WHERE e.email = LOWER($1)
		ORDER BY c.created_at DESC, c.id DESC
	`, email)
}

func (r *courseRepositoryImpl) IsRecipient(ctx context.Context, courseID, email string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM employee_emails WHERE course_id = $1 AND email = LOWER($2))
	`, courseID, email).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *courseRepositoryImpl) ListEmployeeEmails(ctx context.Context, courseID string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT email FROM employee_emails WHERE course_id = $1 ORDER BY email`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	emails := make([]string, 0)
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}
	return emails, rows.Err()
}

// Delete removes the course. Modules, completions, emails and read markers
// cascade.
func (r *courseRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return course.ErrCourseNotFound
	}
	return nil
}

func (r *courseRepositoryImpl) ListModules(ctx context.Context, courseID string) ([]course.Module, error) {
	return r.queryModules(ctx, moduleSelect+`
		WHERE m.course_id = $1
		GROUP BY m.id
		ORDER BY m.position
	`, courseID)
}

func (r *courseRepositoryImpl) ListModulesByCourseIDs(ctx context.Context, courseIDs []string) (map[string][]course.Module, error) {
	result := make(map[string][]course.Module, len(courseIDs))
	if len(courseIDs) == 0 {
		return result, nil
	}

	modules, err := r.queryModules(ctx, moduleSelect+`
		WHERE m.course_id = ANY($1::uuid[])
		GROUP BY m.id
		ORDER BY m.course_id, m.position
	`, courseIDs)
	if err != nil {
		return nil, err
	}
	for _, m := range modules {
		result[m.CourseID] = append(result[m.CourseID], m)
	}
	return result, nil
}

func (r *courseRepositoryImpl) GetModule(ctx context.Context, id string) (course.Module, error) {
	q := GetQuerier(ctx, r.db)

	m, err := scanModule(q.QueryRow(ctx, moduleSelect+`
		WHERE m.id = $1
		GROUP BY m.id
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return course.Module{}, course.ErrModuleNotFound
	}
	return m, err
}

// AddCompletion is idempotent.
func (r *courseRepositoryImpl) AddCompletion(ctx context.Context, moduleID, userID string) error {
	q := GetQuerier(ctx, r.db)
	_, err := q.Exec(ctx, `
		INSERT INTO module_completions (module_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (module_id, user_id) DO NOTHING
	`, moduleID, userID)
	return err
}

func (r *courseRepositoryImpl) RemoveCompletion(ctx context.Context, moduleID, userID string) error {
	q := GetQuerier(ctx, r.db)
	_, err := q.Exec(ctx, `DELETE FROM module_completions WHERE module_id = $1 AND user_id = $2`, moduleID, userID)
	return err
}

func (r *courseRepositoryImpl) ListEmployeeAssignments(ctx context.Context) ([]course.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT e.course_id, u.id, u.username, u.email
		FROM employee_emails e
		JOIN users u ON LOWER(u.email) = e.email
		WHERE u.role = 'employee'
		ORDER BY e.course_id, u.username
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]course.Assignment, 0)
	for rows.Next() {
		var a course.Assignment
		if err := rows.Scan(&a.CourseID, &a.UserID, &a.Username, &a.Email); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}
