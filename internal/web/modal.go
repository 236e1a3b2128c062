package web

import (
	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// Modal renders children in an overlay while open and nothing while closed.
// The close control navigates to closeHref.
func Modal(open bool, closeHref string, children ...Node) Node {
	if !open {
		return Group(nil)
	}
	return Div(
		Class("modal-backdrop"),
		Div(
			Class("modal"),
			Attr("role", "dialog"),
			A(Href(closeHref), Class("modal-close"), Attr("aria-label", "Close"), Text("×")),
			Group(children),
		),
	)
}

// Alert is a blocking message dialog dismissed with its OK button.
func Alert(message string) Node {
	if message == "" {
		return Group(nil)
	}
	return El("dialog",
		Attr("open"),
		Class("alert"),
		Attr("role", "alertdialog"),
		P(Text(message)),
		Form(Method("dialog"), Button(Type("submit"), Class("btn"), Text("OK"))),
	)
}

// Confirm asks before posting to action. Only the OK button submits, and it
// sends confirm=yes; fields are extra hidden inputs such as the CSRF token.
func Confirm(message, action, cancelHref string, fields ...Node) Node {
	return Modal(true, cancelHref,
		P(Text(message)),
		Form(
			Method("post"),
			Action(action),
			Group(fields),
			Input(Type("hidden"), Name("confirm"), Value("yes")),
			Div(
				Class("form-actions"),
				A(Href(cancelHref), Class("btn btn-secondary"), Text("Cancel")),
				Button(Type("submit"), Class("btn btn-danger"), Text("OK")),
			),
		),
	)
}
