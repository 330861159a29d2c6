package domain

// BackToBackPreference controls the soft preference for adjacency between
// a teacher's consecutive lessons.
type BackToBackPreference string

const (
	BackToBackMaximize BackToBackPreference = "maximize"
	BackToBackMinimize BackToBackPreference = "minimize"
	BackToBackAgnostic BackToBackPreference = "agnostic"
)

// SchedulingConstraints is the teacher-scoped configuration governing
// lesson duration, workload, and back-to-back behaviour.
type SchedulingConstraints struct {
	AllowedDurations      []int
	MinLessonDuration     int
	MaxLessonDuration     int
	MaxConsecutiveMinutes int
	BreakDurationMinutes  int
	MaxLessonsPerDay      int
	BackToBackPreference  BackToBackPreference
}

// NewSchedulingConstraints validates and constructs a constraint set.
func NewSchedulingConstraints(c SchedulingConstraints) (SchedulingConstraints, error) {
	if c.MinLessonDuration > c.MaxLessonDuration {
		return SchedulingConstraints{}, ErrInvalidDurationBounds
	}
	if c.BackToBackPreference == "" {
		c.BackToBackPreference = BackToBackAgnostic
	}
	if c.MaxLessonsPerDay <= 0 {
		c.MaxLessonsPerDay = 24
	}
	return c, nil
}

// AllowsDuration reports whether d is a permitted lesson length.
func (c SchedulingConstraints) AllowsDuration(d int) bool {
	if d < c.MinLessonDuration || d > c.MaxLessonDuration {
		return false
	}
	if len(c.AllowedDurations) == 0 {
		return true
	}
	for _, allowed := range c.AllowedDurations {
		if allowed == d {
			return true
		}
	}
	return false
}

// ResolveDuration picks the duration a student should be scheduled at:
// the preferred duration if allowed, otherwise the closest allowed value
// (ties broken toward the larger value).
func (c SchedulingConstraints) ResolveDuration(preferred int) int {
	if len(c.AllowedDurations) == 0 {
		if preferred < c.MinLessonDuration {
			return c.MinLessonDuration
		}
		if preferred > c.MaxLessonDuration {
			return c.MaxLessonDuration
		}
		return preferred
	}
	best := c.AllowedDurations[0]
	bestDist := abs(preferred - best)
	for _, d := range c.AllowedDurations[1:] {
		dist := abs(preferred - d)
		if dist < bestDist || (dist == bestDist && d > best) {
			best = d
			bestDist = dist
		}
	}
	return best
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// GranularityMinutes returns the candidate-enumeration step: the default
// unless it is coarser than the gcd of the allowed durations, in which
// case the gcd is used so every allowed duration remains reachable.
func (c SchedulingConstraints) GranularityMinutes() int {
	if len(c.AllowedDurations) == 0 {
		return DefaultGranularityMinutes
	}
	g := c.AllowedDurations[0]
	for _, d := range c.AllowedDurations[1:] {
		g = gcd(g, d)
	}
	if g > 0 && g < DefaultGranularityMinutes {
		return g
	}
	return DefaultGranularityMinutes
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
	}
	return a
}

// StudentConfig describes one student's availability and lesson needs.
type StudentConfig struct {
	Person            Person
	Availability      WeekSchedule
	PreferredDuration int
	MaxLessonsPerWeek int
}

// NewStudentConfig validates and constructs a StudentConfig.
func NewStudentConfig(person Person, availability WeekSchedule, preferredDuration, maxLessonsPerWeek int) (StudentConfig, error) {
	if maxLessonsPerWeek <= 0 {
		maxLessonsPerWeek = 1
	}
	return StudentConfig{
		Person:            person,
		Availability:      availability,
		PreferredDuration: preferredDuration,
		MaxLessonsPerWeek: maxLessonsPerWeek,
	}, nil
}

// TeacherConfig describes the teacher's availability and constraints.
type TeacherConfig struct {
	Person       Person
	Availability WeekSchedule
	Constraints  SchedulingConstraints
}
