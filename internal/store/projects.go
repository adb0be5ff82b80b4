package store

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AddProject validates, appends and saves a building project. Name is
// required; a blank budget defaults to zero and must otherwise parse as a
// non-negative number. Date fields are stored as given.
func (s *Store) AddProject(name, manager, startDate, endDate, budget, status, description string) (*Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{
			Field:   "name",
			Message: "Project name is required.",
		}
	}

	budget = strings.TrimSpace(budget)
	if budget == "" {
		budget = "0"
	}
	b, err := decimal.NewFromString(budget)
	if err != nil {
		return nil, &ValidationError{
			Field:   "budget",
			Message: "Budget must be a number.",
		}
	}
	if b.IsNegative() {
		return nil, &ValidationError{
			Field:   "budget",
			Message: "Budget must not be negative.",
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := Project{
		Name:        name,
		Manager:     strings.TrimSpace(manager),
		StartDate:   strings.TrimSpace(startDate),
		EndDate:     strings.TrimSpace(endDate),
		Budget:      b,
		Status:      status,
		Description: strings.TrimSpace(description),
	}
	s.doc.Projects = append(s.doc.Projects, p)
	if err := s.save(); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProjectStatus sets the status of the first project whose name
// matches. Duplicate names are possible; later duplicates are untouched.
func (s *Store) UpdateProjectStatus(name, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.doc.Projects {
		if s.doc.Projects[i].Name == name {
			s.doc.Projects[i].Status = status
			return s.save()
		}
	}
	return ErrProjectNotFound
}

// DeleteProject removes every project with the given name. It is a no-op
// when nothing matches.
func (s *Store) DeleteProject(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.doc.Projects[:0]
	for _, p := range s.doc.Projects {
		if p.Name == name {
			continue
		}
		kept = append(kept, p)
	}
	s.doc.Projects = kept
	return s.save()
}

// Projects returns the building projects in insertion order.
func (s *Store) Projects() []Project {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Project, len(s.doc.Projects))
	copy(out, s.doc.Projects)
	return out
}
