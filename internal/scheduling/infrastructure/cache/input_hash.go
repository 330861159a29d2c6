package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"

	"github.com/felixgeelhaar/lessonsched/internal/scheduling/application/services"
	"github.com/felixgeelhaar/lessonsched/internal/scheduling/domain"
)

// solveInput is the canonical, order-independent shape hashed to build
// a solve's cache key: two calls with the same teacher/students/options
// but students listed in a different order must hash identically, since
// the solver's output does not depend on input order (see the
// determinism guarantee of services.Search).
type solveInput struct {
	Teacher  domain.TeacherConfig    `json:"teacher"`
	Students []domain.StudentConfig `json:"students"`
	Options  services.SolveOptions  `json:"options"`
}

// SolveKey returns the deterministic "solve:{hash}" cache key for a
// given solve request.
func SolveKey(teacher domain.TeacherConfig, students []domain.StudentConfig, opts services.SolveOptions) (string, error) {
	sorted := append([]domain.StudentConfig{}, students...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Person.ID < sorted[j].Person.ID })

	canonical, err := json.Marshal(solveInput{Teacher: teacher, Students: sorted, Options: opts})
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(canonical)
	return "solve:" + hex.EncodeToString(sum[:]), nil
}
