package web

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/portfolio-admin/admin-backend/internal/content/domain"
)

// ProjectDraft edits the tech stack of the open project form without saving
// anything: "op=add" appends the "tech" input, "remove=<index>" drops an entry.
func (h *Handler) ProjectDraft(c *gin.Context) {
	s := h.projects

	values, err := formValues(c)
	if err != nil {
		s.fail(c, "adding", view[domain.Project]{Form: s.schema.New()}, err)
		return
	}

	st := s.schema.New()
	st.Bind(values)

	if raw, ok := values["remove"]; ok && len(raw) > 0 {
		index, convErr := strconv.Atoi(raw[0])
		if convErr == nil {
			err = domain.RemoveTechStackEntry(st, index)
		}
	} else {
		err = domain.AddTechStackEntry(st, values.Get("tech"))
	}
	if err != nil {
		s.fail(c, "adding", view[domain.Project]{Form: st}, err)
		return
	}

	s.page(c, http.StatusOK, view[domain.Project]{
		Items:  s.coll.Snapshot(),
		Form:   st,
		EditID: values.Get("id"),
	})
}
