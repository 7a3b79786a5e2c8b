// Package employee holds the enriched employee model and the session store
// that owns it. The store is the only component allowed to mutate the record
// set, the filter criteria, or the bookmark set; consumers get copies.
package employee

// Department is one of the fixed set of departments assigned at enrichment.
type Department string

// The seven departments employees are drawn into.
const (
	DeptEngineering Department = "Engineering"
	DeptMarketing   Department = "Marketing"
	DeptSales       Department = "Sales"
	DeptHR          Department = "HR"
	DeptFinance     Department = "Finance"
	DeptProduct     Department = "Product"
	DeptDesign      Department = "Design"
)

// Departments returns every department in display order.
func Departments() []Department {
	return []Department{
		DeptEngineering,
		DeptMarketing,
		DeptSales,
		DeptHR,
		DeptFinance,
		DeptProduct,
		DeptDesign,
	}
}

// ParseDepartment maps a string to a known department.
func ParseDepartment(s string) (Department, bool) {
	for _, d := range Departments() {
		if string(d) == s {
			return d, true
		}
	}
	return "", false
}

// ProjectStatus is the lifecycle state of a project assignment.
type ProjectStatus string

const (
	StatusCompleted  ProjectStatus = "Completed"
	StatusInProgress ProjectStatus = "In Progress"
	StatusOnHold     ProjectStatus = "On Hold"
)

// MinPerformance and MaxPerformance bound the performance score.
// PromoteEmployee clamps at MaxPerformance.
const (
	MinPerformance = 1
	MaxPerformance = 5
)

// Project is a project assignment attached to an employee at enrichment.
// IDs are unique within the parent employee only.
type Project struct {
	ID           int           `json:"id"`
	Name         string        `json:"name"`
	Status       ProjectStatus `json:"status"`
	Contribution int           `json:"contribution"`
}

// Feedback is a review entry attached to an employee at enrichment.
// IDs are unique within the parent employee only.
type Feedback struct {
	ID      int    `json:"id"`
	From    string `json:"from"`
	Date    string `json:"date"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Address is the postal address of an employee.
type Address struct {
	Street string `json:"address"`
	City   string `json:"city"`
	State  string `json:"state"`
}

// Employee is an enriched directory record. The id comes from the remote
// source and is unique within the loaded set; everything from Department
// down is attached by the enricher.
type Employee struct {
	ID          int        `json:"id"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Image       string     `json:"image"`
	Address     Address    `json:"address"`
	Age         int        `json:"age"`
	Department  Department `json:"department"`
	Performance int        `json:"performance"`
	Projects    []Project  `json:"projects"`
	Feedback    []Feedback `json:"feedback"`
}

// FullName returns the display name of the employee.
func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
