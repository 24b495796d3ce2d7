package directory

import "context"

// Memory is an in-memory Directory test double.
type Memory struct {
	CourseList  []Course
	FacultyList []Faculty
}

func (m *Memory) Courses(_ context.Context) ([]Course, error) {
	return m.CourseList, nil
}

func (m *Memory) Course(_ context.Context, id string) (Course, error) {
	for _, c := range m.CourseList {
		if c.ID == id {
			return c, nil
		}
	}
	return Course{}, ErrNotFound
}

func (m *Memory) Faculty(_ context.Context, id string) (Faculty, error) {
	for _, f := range m.FacultyList {
		if f.ID == id {
			return f, nil
		}
	}
	return Faculty{}, ErrNotFound
}
