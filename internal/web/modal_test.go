package web

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

func render(t *testing.T, n Node) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, n.Render(&b))
	return b.String()
}

func TestModal(t *testing.T) {
	t.Run("closed renders nothing", func(t *testing.T) {
		assert.Empty(t, render(t, Modal(false, "/admin/projects", P(Text("hidden")))))
	})

	t.Run("open renders children and close link", func(t *testing.T) {
		out := render(t, Modal(true, "/admin/projects", P(Text("visible"))))
		assert.Contains(t, out, "visible")
		assert.Contains(t, out, `class="modal-backdrop"`)
		assert.Contains(t, out, `href="/admin/projects"`)
	})
}

func TestAlert(t *testing.T) {
	assert.Empty(t, render(t, Alert("")))

	out := render(t, Alert("Error adding project: boom"))
	assert.Contains(t, out, "<dialog")
	assert.Contains(t, out, "Error adding project: boom")
	assert.Contains(t, out, `method="dialog"`)
}

func TestConfirm(t *testing.T) {
	out := render(t, Confirm("Are you sure?", "/admin/projects/p1/delete", "/admin/projects",
		Input(Type("hidden"), Name("csrf_token"), Value("tok"))))

	assert.Contains(t, out, "Are you sure?")
	assert.Contains(t, out, `action="/admin/projects/p1/delete"`)
	assert.Contains(t, out, `name="confirm" value="yes"`)
	assert.Contains(t, out, `name="csrf_token" value="tok"`)
}
