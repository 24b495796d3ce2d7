// Package directory provides read-only access to the course, CLO and faculty
// directory. The portal only reads this data; it is owned elsewhere.
package directory

import (
	"context"
	"errors"
	"sort"
	"time"
)

// ErrNotFound is returned when a course or faculty member does not exist.
var ErrNotFound = errors.New("directory: not found")

// CLO is a course learning outcome: a numbered, course-scoped statement of
// what students should be able to do.
type CLO struct {
	ID          string    `json:"id" yaml:"id"`
	Number      int       `json:"number" yaml:"number"`
	Description string    `json:"description" yaml:"description"`
	LastUpdated time.Time `json:"last_updated,omitempty" yaml:"last_updated,omitempty"`
}

// Course is a directory course record with its embedded CLO list.
type Course struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Code        string `json:"code" yaml:"code"`
	Level       string `json:"level" yaml:"level"`
	CreditHours int    `json:"credit_hours" yaml:"credit_hours"`
	CLOs        []CLO  `json:"clos" yaml:"clos"`
}

// CLOByID returns the course's CLO with the given id.
func (c Course) CLOByID(id string) (CLO, bool) {
	for _, clo := range c.CLOs {
		if clo.ID == id {
			return clo, true
		}
	}
	return CLO{}, false
}

// HasCLO reports whether the course owns the CLO with the given id.
func (c Course) HasCLO(id string) bool {
	_, ok := c.CLOByID(id)
	return ok
}

// Faculty is a directory faculty record.
type Faculty struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email" yaml:"email"`
}

// Directory is the read-only course/CLO/faculty lookup interface.
type Directory interface {
	Courses(ctx context.Context) ([]Course, error)
	Course(ctx context.Context, id string) (Course, error)
	Faculty(ctx context.Context, id string) (Faculty, error)
}

// CLOs returns a course's learning outcomes ordered by sequence number.
func CLOs(ctx context.Context, dir Directory, courseID string) ([]CLO, error) {
	course, err := dir.Course(ctx, courseID)
	if err != nil {
		return nil, err
	}
	clos := make([]CLO, len(course.CLOs))
	copy(clos, course.CLOs)
	sort.Slice(clos, func(i, j int) bool { return clos[i].Number < clos[j].Number })
	return clos, nil
}
