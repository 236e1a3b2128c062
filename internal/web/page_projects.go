package web

import (
	"fmt"
	"strconv"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/portfolio-admin/admin-backend/internal/content/domain"
	"github.com/portfolio-admin/admin-backend/internal/form"
)

func projectsPage(pc pageContext, v view[domain.Project]) Node {
	cards := make([]Node, 0, len(v.Items))
	for _, p := range v.Items {
		cards = append(cards, projectCard(pc, p))
	}

	return adminPage(pc.c, "Projects", "projects", pc.Principal,
		Div(
			Class("page-header"),
			H1(Text("Projects")),
			A(Href(pc.Path+"?modal=new"), Class("btn btn-add"), Text("Add Project")),
		),
		Div(Class("grid"), Group(cards)),
		Modal(v.Form != nil, pc.Path, projectForm(pc, v)),
		deleteConfirm(pc, "project", v.DeleteID),
		Alert(v.Alert),
	)
}

func projectCard(pc pageContext, p domain.Project) Node {
	tags := make([]Node, 0, len(p.TechStack))
	for _, t := range p.TechStack {
		tags = append(tags, Span(Class("tag"), Text(t)))
	}

	return Div(
		Class("card"),
		Img(Src(p.ImgLink), Attr("alt", p.Title)),
		Div(
			Class("card-body"),
			H2(Text(p.Title)),
			P(Text(p.Description)),
			Div(Class("tags"), Group(tags)),
			Div(
				Class("card-actions"),
				A(Href(p.Github), Attr("target", "_blank"), Rel("noopener noreferrer"), Text("GitHub")),
				Div(
					A(Href(pc.Path+"?edit="+p.ID), Class("btn btn-edit"), Text("Edit")),
					Text(" "),
					A(Href(pc.Path+"?delete="+p.ID), Class("btn btn-danger"), Text("Delete")),
				),
			),
		),
	)
}

// projectForm is the add/edit form. The tech stack buttons post the whole
// draft to the draft route, which re-renders this form with the list edited.
func projectForm(pc pageContext, v view[domain.Project]) Node {
	if v.Form == nil {
		return Group(nil)
	}
	st := v.Form

	heading, submit, action := "Add Project", "Add Project", pc.Path
	if v.EditID != "" {
		heading, submit, action = "Edit Project", "Update Project", pc.Path+"/"+v.EditID
	}

	return Group([]Node{
		H2(Text(heading)),
		Form(
			Method("post"),
			Action(action),
			Attr("enctype", "multipart/form-data"),
			csrfField(pc.c),
			Input(Type("hidden"), Name("id"), Value(v.EditID)),
			Input(Type("hidden"), Name("imgLink"), Value(st.String("imgLink"))),
			textField("Title", "title", st, true),
			Div(
				Class("field"),
				Label(Text("Description")),
				Textarea(Name("description"), Placeholder("Description"), Required(), Text(st.String("description"))),
			),
			textField("Features", "features", st, false),
			textField("GitHub URL", "github", st, false),
			techStackField(pc, st),
			Div(
				Class("field"),
				Label(Text("Image")),
				Input(Type("file"), Name("upload"), Attr("accept", "image/*")),
			),
			Div(
				Class("form-actions"),
				A(Href(pc.Path), Class("btn btn-secondary"), Text("Cancel")),
				Button(Type("submit"), Class("btn"), Text(submit)),
			),
		),
	})
}

func techStackField(pc pageContext, st *form.State) Node {
	draftAction := pc.Path + "/draft"

	tags := []Node{}
	for i, t := range st.Strings("techStack") {
		tags = append(tags, Span(
			Class("tag"),
			Input(Type("hidden"), Name("techStack"), Value(t)),
			Text(t),
			Button(
				Type("submit"),
				Name("remove"),
				Value(strconv.Itoa(i)),
				Attr("formaction", draftAction),
				Attr("formnovalidate"),
				Attr("aria-label", fmt.Sprintf("Remove %s", t)),
				Text("×"),
			),
		))
	}

	return Div(
		Class("field"),
		Label(Text("Tech Stack")),
		Div(
			Class("tech-row"),
			Input(Type("text"), Name("tech"), Placeholder("Add tech")),
			Button(
				Type("submit"),
				Name("op"),
				Value("add"),
				Class("btn btn-add"),
				Attr("formaction", draftAction),
				Attr("formnovalidate"),
				Text("Add"),
			),
		),
		Div(Class("tags"), Group(tags)),
	)
}

func textField(label, name string, st *form.State, required bool) Node {
	input := []Node{Type("text"), Name(name), Placeholder(label), Value(st.String(name))}
	if required {
		input = append(input, Required())
	}
	return Div(
		Class("field"),
		Label(Text(label)),
		Input(input...),
	)
}

func deleteConfirm(pc pageContext, label, id string) Node {
	if id == "" {
		return Group(nil)
	}
	return Confirm(
		fmt.Sprintf("Are you sure you want to delete this %s?", label),
		pc.Path+"/"+id+"/delete",
		pc.Path,
		csrfField(pc.c),
	)
}
