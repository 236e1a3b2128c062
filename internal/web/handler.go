// Package web serves the admin shell: login page, sidebar layout and the
// project and certificate views with their modal forms.
package web

import (
	"github.com/portfolio-admin/admin-backend/internal/auth/service"
	"github.com/portfolio-admin/admin-backend/internal/content/domain"
	contentservice "github.com/portfolio-admin/admin-backend/internal/content/service"
)

// Handler composes the gate and the two collections. It holds no content
// state of its own.
type Handler struct {
	gate         *service.Gate
	projects     *section[domain.Project]
	certificates *section[domain.Certificate]
	cookieSecure bool
}

func New(gate *service.Gate, projects *contentservice.Collection[domain.Project], certificates *contentservice.Collection[domain.Certificate], cookieSecure bool) *Handler {
	return &Handler{
		gate: gate,
		projects: &section[domain.Project]{
			coll:   projects,
			schema: domain.ProjectForm,
			path:   "/admin/projects",
			render: projectsPage,
		},
		certificates: &section[domain.Certificate]{
			coll:   certificates,
			schema: domain.CertificateForm,
			path:   "/admin/certificates",
			render: certificatesPage,
		},
		cookieSecure: cookieSecure,
	}
}
