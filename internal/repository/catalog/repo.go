// Package catalog reads course records from the catalog database.
package catalog

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/wynnteo/coursearch/internal/domain/course"
)

// selectCourseFields is the standard field list for SELECT queries.
const selectCourseFields = `id, name, description, category_id, sub_category_id,
	language, source, instructor, level, is_valid, modified_at`

// Repo is a read-only view over the courses table.
type Repo struct {
	db *sql.DB
}

// Open opens the catalog database at the given path.
func Open(path string) (*Repo, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog database: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	return &Repo{db: db}, nil
}

// Close closes the database connection.
func (r *Repo) Close() error {
	return r.db.Close()
}

// List enumerates all catalog courses in identifier order.
func (r *Repo) List(ctx context.Context) ([]course.Course, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+selectCourseFields+` FROM courses ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying courses: %w", err)
	}
	defer rows.Close()

	var courses []course.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating courses: %w", err)
	}

	return courses, nil
}

func scanCourse(rows *sql.Rows) (course.Course, error) {
	var c course.Course
	var level sql.NullString

	err := rows.Scan(
		&c.ID, &c.Name, &c.Description, &c.CategoryID, &c.SubCategoryID,
		&c.Language, &c.Source, &c.Instructor, &level, &c.IsValid, &c.ModifiedAt,
	)
	if err != nil {
		return course.Course{}, fmt.Errorf("scanning course: %w", err)
	}

	if level.Valid {
		c.Level = level.String
	}
	return c, nil
}
