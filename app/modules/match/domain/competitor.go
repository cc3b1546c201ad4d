package matchdomain

import "fmt"

// Team is the club or academy a competitor represents.
type Team struct {
	Name string `json:"name" yaml:"name"`
	Logo string `json:"logo,omitempty" yaml:"logo,omitempty"`
}

// NewTeam creates a Team with no logo.
func NewTeam(name string) Team {
	return Team{Name: name}
}

// Competitor is one athlete on the mat. Competitor holds its Team by value so
// two competitors never share a Team instance.
type Competitor struct {
	FirstName string `json:"first_name" yaml:"first_name"`
	LastName  string `json:"last_name" yaml:"last_name"`
	Team      Team   `json:"team" yaml:"team"`
	Flag      string `json:"flag,omitempty" yaml:"flag,omitempty"`
}

// NewCompetitor creates a Competitor with its own copy of team.
func NewCompetitor(firstName, lastName string, team Team) Competitor {
	return Competitor{
		FirstName: firstName,
		LastName:  lastName,
		Team:      team,
	}
}

// Name returns "<first> <last>".
func (c Competitor) Name() string {
	return fmt.Sprintf("%s %s", c.FirstName, c.LastName)
}
