package domain

import "github.com/portfolio-admin/admin-backend/internal/form"

// Recognized form fields per entity, with their empty defaults.
var (
	ProjectForm = form.NewSchema(
		form.Field{Name: "title", Default: ""},
		form.Field{Name: "description", Default: ""},
		form.Field{Name: "features", Default: ""},
		form.Field{Name: "github", Default: ""},
		form.Field{Name: "imgLink", Default: ""},
		form.Field{Name: "techStack", Default: []string{}},
	)

	CertificateForm = form.NewSchema(
		form.Field{Name: "name", Default: ""},
		form.Field{Name: "image", Default: ""},
	)
)
