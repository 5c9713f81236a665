package staff

// Department identifies a hiring pool. Each department has a shared hire
// price that escalates multiplicatively with every hire made from it.
type Department string

const (
	Sales    Department = "sales"
	Accounts Department = "accounts"
	Products Department = "products"
)

type Definition struct {
	Department     Department `json:"department"`
	Name           string     `json:"name"`
	Cost           float64    `json:"cost"`
	CostMultiplier float64    `json:"costMultiplier"`
	Members        []string   `json:"members"`
}

var definitions = map[Department]Definition{
	Sales: {
		Department:     Sales,
		Name:           "Sales",
		Cost:           5,
		CostMultiplier: 3.5,
		Members:        []string{"Artyom", "Alan", "Aruna", "Dora", "Syrym", "Aidos", "Alimzhan", "Anna", "Bolat", "Yerbol", "Madi"},
	},
	Accounts: {
		Department:     Accounts,
		Name:           "Accounts",
		Cost:           5,
		CostMultiplier: 3.5,
		Members:        []string{"Azret", "Asiya", "Daniil", "Aizhan", "Amir", "Akzhan", "Anuar", "Hakim", "Saniya", "Sanzhar"},
	},
	Products: {
		Department:     Products,
		Name:           "Products",
		Cost:           100,
		CostMultiplier: 1, // single member, price never escalates
		Members:        []string{"Emil"},
	},
}

// Departments returns the hiring pools in presentation order.
func Departments() []Definition {
	return []Definition{definitions[Sales], definitions[Accounts], definitions[Products]}
}

func Get(d Department) (Definition, bool) {
	def, ok := definitions[d]
	return def, ok
}

// DepartmentOf resolves a member name to its department. Unknown names
// (e.g. from a save written against an older roster) report ok=false and
// are skipped by callers rather than treated as fatal.
func DepartmentOf(name string) (Department, bool) {
	for dept, def := range definitions {
		for _, m := range def.Members {
			if m == name {
				return dept, true
			}
		}
	}
	return "", false
}

// Count reports how many hired names belong to the given department.
func Count(d Department, hired map[string]bool) int {
	def, ok := definitions[d]
	if !ok {
		return 0
	}
	n := 0
	for _, m := range def.Members {
		if hired[m] {
			n++
		}
	}
	return n
}

// Complete reports whether every member of the department has been hired.
func Complete(d Department, hired map[string]bool) bool {
	def, ok := definitions[d]
	if !ok {
		return false
	}
	for _, m := range def.Members {
		if !hired[m] {
			return false
		}
	}
	return true
}

// TotalMembers is the size of the full roster across all departments.
func TotalMembers() int {
	n := 0
	for _, def := range definitions {
		n += len(def.Members)
	}
	return n
}

// Unlocked implements the onboarding chain: Azret is always available,
// Artyom needs Azret, Asiya needs Artyom, Emil needs Asiya, and the rest of
// the roster opens up once Asiya is hired. The order is fixed narrative
// bootstrapping, not a department-size gate.
func Unlocked(name string, hired map[string]bool) bool {
	switch name {
	case "Azret":
		return true
	case "Artyom":
		return hired["Azret"]
	case "Asiya":
		return hired["Artyom"]
	case "Emil":
		return hired["Asiya"]
	default:
		return hired["Asiya"]
	}
}
