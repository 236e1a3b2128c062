package domain

import "github.com/portfolio-admin/admin-backend/internal/form"

const techStackField = "techStack"

// AddTechStackEntry appends label to the tech stack of an in-progress project
// form. An empty label leaves the draft unchanged. Nothing is persisted.
func AddTechStackEntry(draft *form.State, label string) error {
	return draft.Append(techStackField, label)
}

// RemoveTechStackEntry drops the tech stack entry at index from the draft.
// Out of range indexes are ignored.
func RemoveTechStackEntry(draft *form.State, index int) error {
	return draft.RemoveAt(techStackField, index)
}
