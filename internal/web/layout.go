package web

import (
	"github.com/gin-gonic/gin"
	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	authdomain "github.com/portfolio-admin/admin-backend/internal/auth/domain"
)

type navItem struct {
	Label string
	Href  string
	Key   string
}

var navItems = []navItem{
	{Label: "Projects", Href: "/admin/projects", Key: "projects"},
	{Label: "Certificates", Href: "/admin/certificates", Key: "certificates"},
}

const styles = `
*{box-sizing:border-box}
body{margin:0;font-family:Inter,system-ui,sans-serif;background:#f3f4f6;color:#111827}
.app-shell{display:flex;min-height:100vh}
.app-sidebar{width:16rem;background:#1f2937;color:#fff;padding:1rem}
.app-sidebar h1{font-size:1.5rem;margin:0 0 1rem}
.app-nav a{display:block;padding:.5rem 1rem;border-radius:.25rem;color:#fff;text-decoration:none}
.app-nav a.active{background:#374151}
.app-main{flex:1;padding:2rem;position:relative}
.topbar{position:absolute;top:1rem;right:1rem;display:flex;gap:1rem;align-items:center}
.page-header{display:flex;justify-content:space-between;align-items:center;margin-bottom:2rem}
.grid{display:grid;grid-template-columns:repeat(auto-fill,minmax(18rem,1fr));gap:2rem}
.card{background:#fff;border-radius:.5rem;box-shadow:0 1px 3px rgba(0,0,0,.1);overflow:hidden}
.card img{width:100%;height:12rem;object-fit:cover;background:#e5e7eb}
.card-body{padding:1.5rem}
.card-actions{display:flex;justify-content:space-between;align-items:center}
.tags{display:flex;flex-wrap:wrap;gap:.5rem;margin-bottom:1rem}
.tag{background:#e5e7eb;padding:.25rem .5rem;border-radius:999px;font-size:.875rem}
.btn{display:inline-block;border:0;border-radius:.25rem;padding:.5rem 1rem;color:#fff;background:#3b82f6;text-decoration:none;cursor:pointer}
.btn-add{background:#22c55e}.btn-edit{background:#eab308}.btn-danger{background:#ef4444}.btn-secondary{background:#9ca3af}
.modal-backdrop{position:fixed;inset:0;background:rgba(0,0,0,.5);display:flex;align-items:center;justify-content:center}
.modal{background:#fff;border-radius:.5rem;padding:1.5rem;width:32rem;max-height:90vh;overflow:auto;position:relative}
.modal-close{position:absolute;top:.5rem;right:.75rem;text-decoration:none;color:#6b7280;font-size:1.5rem}
.field{margin-bottom:1rem}.field label{display:block;margin-bottom:.5rem;color:#374151}
.field input,.field textarea{width:100%;padding:.5rem;border:1px solid #d1d5db;border-radius:.25rem}
.tech-row{display:flex;gap:.5rem;margin-bottom:.5rem}
.form-actions{display:flex;justify-content:flex-end;gap:1rem}
dialog.alert{position:fixed;top:2rem;border:0;border-radius:.5rem;box-shadow:0 10px 25px rgba(0,0,0,.25);z-index:10}
.login-body{display:flex;flex-direction:column;align-items:center;justify-content:center;min-height:100vh}
.login-form{background:#fff;padding:1.5rem;border-radius:.25rem;box-shadow:0 1px 3px rgba(0,0,0,.1);width:20rem}
.login-form input{width:100%;padding:.5rem;margin-bottom:.5rem;border:1px solid #d1d5db;border-radius:.25rem}
.login-form .btn{width:100%}
`

func document(title string, body ...Node) Node {
	return HTML(
		Lang("en"),
		Head(
			Meta(Charset("utf-8")),
			Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
			TitleEl(Text(title+" | Admin")),
			Link(Rel("icon"), Href("data:,")),
			StyleEl(Raw(styles)),
		),
		Body(body...),
	)
}

// adminPage is the shell: sidebar navigation, sign-out control and the
// active section.
func adminPage(c *gin.Context, title, active string, principal *authdomain.Principal, body ...Node) Node {
	nav := make([]Node, 0, len(navItems))
	for _, item := range navItems {
		className := "app-nav-link"
		if item.Key == active {
			className += " active"
		}
		nav = append(nav, Li(A(Href(item.Href), Class(className), Text(item.Label))))
	}

	who := "unknown"
	if principal != nil && principal.Email != "" {
		who = principal.Email
	}

	return document(title,
		Main(Class("app-shell"),
			Aside(
				Class("app-sidebar"),
				H1(Text("Admin")),
				Nav(Class("app-nav"), Ul(Group(nav))),
			),
			Section(
				Class("app-main"),
				Div(
					Class("topbar"),
					Span(Text("Signed in as "+who)),
					Form(
						Method("post"),
						Action("/logout"),
						csrfField(c),
						Button(Type("submit"), Class("btn btn-danger"), Text("Logout")),
					),
				),
				Group(body),
			),
		),
	)
}

func errorPage(title, message string) Node {
	return document(title,
		Main(
			Class("login-body"),
			H1(Text(title)),
			P(Text(message)),
			P(A(Href("/admin"), Text("Back to admin"))),
		),
	)
}

func renderHTML(c *gin.Context, status int, node Node) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	_ = node.Render(c.Writer)
}
