// Package input loads and validates the teacher/student/options document
// the solver façade is run against, per §4.8: a single JSON file read from
// a caller-supplied path.
package input

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/felixgeelhaar/lessonsched/internal/scheduling/application/services"
	"github.com/felixgeelhaar/lessonsched/internal/scheduling/domain"
	"github.com/felixgeelhaar/lessonsched/internal/shared/infrastructure/security"
)

// Document is the on-disk shape of a solve input file.
type Document struct {
	Teacher  domain.TeacherConfig   `json:"teacher"`
	Students []domain.StudentConfig `json:"students"`
	Options  services.SolveOptions  `json:"options"`
}

// Load validates path, reads the file, decodes it rejecting unknown
// fields, and performs boundary validation before returning. Every
// input-shape error is raised here, never inside search.
func Load(path string) (Document, error) {
	data, err := security.SafeReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("reading input file: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("decoding input file: %w", err)
	}

	if err := validate(&doc); err != nil {
		return Document{}, err
	}

	return doc, nil
}

func validate(doc *Document) error {
	if doc.Teacher.Person.ID == "" {
		return fmt.Errorf("teacher.person.id is required")
	}
	constraints, err := domain.NewSchedulingConstraints(doc.Teacher.Constraints)
	if err != nil {
		return fmt.Errorf("teacher.constraints: %w", err)
	}
	doc.Teacher.Constraints = constraints
	if err := validateWeek(doc.Teacher.Availability); err != nil {
		return fmt.Errorf("teacher.availability: %w", err)
	}

	seen := make(map[string]struct{}, len(doc.Students))
	for i, s := range doc.Students {
		if s.Person.ID == "" {
			return fmt.Errorf("students[%d].person.id is required", i)
		}
		if _, dup := seen[s.Person.ID]; dup {
			return fmt.Errorf("students[%d]: duplicate student id %q", i, s.Person.ID)
		}
		seen[s.Person.ID] = struct{}{}

		if s.PreferredDuration <= 0 {
			return fmt.Errorf("students[%d].preferredDuration must be positive", i)
		}
		if s.PreferredDuration < constraints.MinLessonDuration || s.PreferredDuration > constraints.MaxLessonDuration {
			return fmt.Errorf("students[%d].preferredDuration %d outside teacher bounds [%d,%d]", i, s.PreferredDuration, constraints.MinLessonDuration, constraints.MaxLessonDuration)
		}
		if s.MaxLessonsPerWeek < 0 {
			return fmt.Errorf("students[%d].maxLessonsPerWeek must be non-negative", i)
		}
		if err := validateWeek(s.Availability); err != nil {
			return fmt.Errorf("students[%d].availability: %w", i, err)
		}
	}

	opts, err := services.NewSolveOptions(doc.Options)
	if err != nil {
		return fmt.Errorf("options: %w", err)
	}
	doc.Options = opts

	return nil
}

func validateWeek(week domain.WeekSchedule) error {
	for day := 0; day < 7; day++ {
		ds := week.Days[day]
		if ds.DayOfWeek != day {
			return fmt.Errorf("day %d: mismatched day-of-week %d", day, ds.DayOfWeek)
		}
		for _, block := range ds.Blocks {
			if block.Start < 0 || block.Duration <= 0 || block.End() > domain.MinutesPerDay {
				return fmt.Errorf("day %d: invalid time block start=%d duration=%d", day, block.Start, block.Duration)
			}
		}
	}
	return nil
}
