package employee

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/jonathan/hr-dashboard/internal/directory"
)

// maxFeedbackAge is the furthest back a generated feedback date can fall,
// matching the original dashboard's 10^10 ms offset (~115 days).
const maxFeedbackAge = 10_000_000_000 * time.Millisecond

// feedbackComments is the fixed pool feedback comments are drawn from.
var feedbackComments = []string{
	"Excellent team player",
	"Needs improvement in communication",
	"Great technical skills",
	"Exceeds expectations",
	"Meeting goals consistently",
	"Shows leadership potential",
	"Requires mentoring",
	"Innovative problem solver",
}

// Enricher attaches randomly generated department, performance, project and
// feedback data to raw directory records. The transform is not idempotent:
// it must run exactly once per record, at load time. The random source is
// injected so tests can assert exact output for a known seed.
type Enricher struct {
	rng *rand.Rand
	now func() time.Time
}

// NewEnricher returns an enricher backed by the given seed. A zero seed
// selects a time-based seed.
func NewEnricher(seed int64) *Enricher {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Enricher{
		rng: rand.New(rand.NewSource(seed)),
		now: time.Now,
	}
}

// WithClock overrides the time source used for feedback dates. Tests only.
func (en *Enricher) WithClock(now func() time.Time) *Enricher {
	en.now = now
	return en
}

// Enrich maps a raw person record to an enriched employee.
func (en *Enricher) Enrich(p directory.Person) Employee {
	departments := Departments()

	projects := make([]Project, en.rng.Intn(5)+1)
	for i := range projects {
		projects[i] = Project{
			ID:           i + 1,
			Name:         fmt.Sprintf("Project %c", 'A'+i),
			Status:       []ProjectStatus{StatusCompleted, StatusInProgress, StatusOnHold}[en.rng.Intn(3)],
			Contribution: en.rng.Intn(100) + 1,
		}
	}

	feedback := make([]Feedback, en.rng.Intn(8)+2)
	for i := range feedback {
		offset := time.Duration(en.rng.Int63n(int64(maxFeedbackAge)))
		feedback[i] = Feedback{
			ID:      i + 1,
			From:    fmt.Sprintf("Manager %d", i+1),
			Date:    en.now().Add(-offset).Format("2006-01-02"),
			Rating:  en.rng.Intn(5) + 1,
			Comment: feedbackComments[en.rng.Intn(len(feedbackComments))],
		}
	}

	return Employee{
		ID:        p.ID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		Phone:     p.Phone,
		Image:     p.Image,
		Address: Address{
			Street: p.Address.Street,
			City:   p.Address.City,
			State:  p.Address.State,
		},
		Age:         p.Age,
		Department:  departments[en.rng.Intn(len(departments))],
		Performance: en.rng.Intn(5) + 1,
		Projects:    projects,
		Feedback:    feedback,
	}
}

// EnrichAll enriches a full page of records, preserving order.
func (en *Enricher) EnrichAll(people []directory.Person) []Employee {
	employees := make([]Employee, 0, len(people))
	for _, p := range people {
		employees = append(employees, en.Enrich(p))
	}
	return employees
}
