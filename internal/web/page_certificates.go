package web

import (
	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/portfolio-admin/admin-backend/internal/content/domain"
)

func certificatesPage(pc pageContext, v view[domain.Certificate]) Node {
	cards := make([]Node, 0, len(v.Items))
	for _, cert := range v.Items {
		cards = append(cards, Div(
			Class("card"),
			Img(Src(cert.Image), Attr("alt", cert.Name)),
			Div(
				Class("card-body"),
				H2(Text(cert.Name)),
				Div(
					Class("form-actions"),
					A(Href(pc.Path+"?edit="+cert.ID), Class("btn btn-edit"), Text("Edit")),
					A(Href(pc.Path+"?delete="+cert.ID), Class("btn btn-danger"), Text("Delete")),
				),
			),
		))
	}

	return adminPage(pc.c, "Certificates", "certificates", pc.Principal,
		Div(
			Class("page-header"),
			H1(Text("Certificates")),
			A(Href(pc.Path+"?modal=new"), Class("btn btn-add"), Text("Add Certificate")),
		),
		Div(Class("grid"), Group(cards)),
		Modal(v.Form != nil, pc.Path, certificateForm(pc, v)),
		deleteConfirm(pc, "certificate", v.DeleteID),
		Alert(v.Alert),
	)
}

func certificateForm(pc pageContext, v view[domain.Certificate]) Node {
	if v.Form == nil {
		return Group(nil)
	}
	st := v.Form

	heading, submit, action := "Add Certificate", "Add Certificate", pc.Path
	if v.EditID != "" {
		heading, submit, action = "Edit Certificate", "Update Certificate", pc.Path+"/"+v.EditID
	}

	return Group([]Node{
		H2(Text(heading)),
		Form(
			Method("post"),
			Action(action),
			Attr("enctype", "multipart/form-data"),
			csrfField(pc.c),
			Input(Type("hidden"), Name("image"), Value(st.String("image"))),
			textField("Name", "name", st, true),
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
