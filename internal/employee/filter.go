package employee

import "strings"

// Criteria is the active search/filter state. An empty search term or an
// empty selection set on either axis means "match all" on that axis, not
// "match none". The three predicates are conjunctive.
type Criteria struct {
	SearchTerm  string       `json:"searchTerm"`
	Departments []Department `json:"departments"`
	Ratings     []int        `json:"ratings"`
}

// Matches reports whether an employee satisfies all three predicates.
func (c Criteria) Matches(e Employee) bool {
	return c.matchesSearch(e) && c.matchesDepartment(e) && c.matchesRating(e)
}

func (c Criteria) matchesSearch(e Employee) bool {
	if c.SearchTerm == "" {
		return true
	}
	term := strings.ToLower(c.SearchTerm)
	return strings.Contains(strings.ToLower(e.FirstName), term) ||
		strings.Contains(strings.ToLower(e.LastName), term) ||
		strings.Contains(strings.ToLower(e.Email), term) ||
		strings.Contains(strings.ToLower(string(e.Department)), term)
}

func (c Criteria) matchesDepartment(e Employee) bool {
	if len(c.Departments) == 0 {
		return true
	}
	for _, d := range c.Departments {
		if d == e.Department {
			return true
		}
	}
	return false
}

func (c Criteria) matchesRating(e Employee) bool {
	if len(c.Ratings) == 0 {
		return true
	}
	for _, r := range c.Ratings {
		if r == e.Performance {
			return true
		}
	}
	return false
}

// Apply restricts the full set to employees matching the criteria,
// preserving the full set's order. No re-sorting.
func Apply(employees []Employee, c Criteria) []Employee {
	result := make([]Employee, 0, len(employees))
	for _, e := range employees {
		if c.Matches(e) {
			result = append(result, e)
		}
	}
	return result
}

// clone returns a deep-enough copy for handing out: selection slices are
// copied so callers cannot mutate the store's criteria.
func (c Criteria) clone() Criteria {
	out := Criteria{SearchTerm: c.SearchTerm}
	if len(c.Departments) > 0 {
		out.Departments = append([]Department(nil), c.Departments...)
	}
	if len(c.Ratings) > 0 {
		out.Ratings = append([]int(nil), c.Ratings...)
	}
	return out
}
