package server

import (
	"net/http"
	"net/url"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// Messages shown on the account pages.
const (
	msgLoginFailed     = "Invalid email or password."
	msgRegistered      = "Registered successfully. Please log in."
	msgAccountExists   = "An account with this email already exists."
	msgInvalidEmail    = "Invalid Email address."
	msgIncompleteForm  = "Please fill out the form."
	msgRegisterFailure = "Registration failed, please try again."
)

func renderHTML(w http.ResponseWriter, status int, node Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = node.Render(w)
}

func page(title string, body ...Node) Node {
	return HTML(
		Lang("en"),
		Head(
			Meta(Charset("utf-8")),
			Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
			TitleEl(Text(title+" | IPL Stats")),
		),
		Body(Main(Group(body))),
	)
}

func notice(class, msg string) Node {
	return If(msg != "", P(Class(class), Text(msg)))
}

func loginPage(info, errMsg string) Node {
	return page("Login",
		H1(Text("Login")),
		notice("info", info),
		notice("error", errMsg),
		Form(
			Method("post"),
			Action("/login"),
			Label(Text("Email")),
			Input(Type("email"), Name("email"), Required()),
			Label(Text("Password")),
			Input(Type("password"), Name("password"), Required()),
			Button(Type("submit"), Text("Login")),
		),
		P(Text("No account? "), A(Href("/register"), Text("Register"))),
	)
}

func registerPage(errMsg string) Node {
	return page("Register",
		H1(Text("Register")),
		notice("error", errMsg),
		Form(
			Method("post"),
			Action("/register"),
			Label(Text("Name")),
			Input(Type("text"), Name("name"), Required()),
			Label(Text("Email")),
			Input(Type("email"), Name("email"), Required()),
			Label(Text("Password")),
			Input(Type("password"), Name("password"), Required()),
			Button(Type("submit"), Text("Register")),
		),
		P(Text("Already registered? "), A(Href("/login"), Text("Login"))),
	)
}

func dashboardPage(name string, teams []string) Node {
	endpoints := []struct{ path, label string }{
		{"/api/teams-played-ipl", "Teams that have played"},
		{"/api/team1-vs-team2?team1=&team2=", "Head to head"},
		{"/api/record-against-all-teams?team=", "Overall team record"},
		{"/api/record-against-each-team?team=", "Team record against each opponent"},
		{"/api/batsman-record?batsman=", "Batting record"},
		{"/api/bowling-record?bowler=", "Bowling record"},
	}
	return page("Dashboard",
		H1(Text("Dashboard")),
		P(Textf("Logged in as %s. ", name), A(Href("/logout"), Text("Logout"))),
		H2(Text("API")),
		Ul(Map(endpoints, func(e struct{ path, label string }) Node {
			return Li(Code(Text(e.path)), Text(" "+e.label))
		})),
		H2(Textf("Teams (%d)", len(teams))),
		Ul(Map(teams, func(t string) Node {
			return Li(A(
				Href("/api/record-against-each-team?team="+url.QueryEscape(t)),
				Text(t),
			))
		})),
	)
}

func notFoundPage(path string) Node {
	return page("Not found",
		H1(Text("404")),
		P(Textf("Nothing at %s.", path)),
		A(Href("/"), Text("Home")),
	)
}
