package web

import (
	"github.com/gin-gonic/gin"
	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

func loginPage(c *gin.Context, email, alert string) Node {
	return document("Admin Login",
		Main(
			Class("login-body"),
			H2(Text("Admin Login")),
			Form(
				Method("post"),
				Action("/login"),
				Class("login-form"),
				csrfField(c),
				Input(Type("email"), Name("email"), Placeholder("Email"), Value(email), Required()),
				Input(Type("password"), Name("password"), Placeholder("Password"), Required()),
				Button(Type("submit"), Class("btn"), Text("Login")),
			),
			Alert(alert),
		),
	)
}
