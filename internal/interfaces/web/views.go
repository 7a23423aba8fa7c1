package web

import (
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/components"
	"maragu.dev/gomponents/html"

	"github.com/jhoicas/rapidxcel-logistics/internal/domain/entity"
	"github.com/jhoicas/rapidxcel-logistics/internal/domain/navigation"
)

const baseCSS = `
body{font-family:system-ui,sans-serif;margin:0;color:#1f2937}
.layout{display:flex;min-height:100vh}
.sidebar{width:220px;background:#00467f;color:#fff;padding:1rem}
.sidebar a{color:#fff;text-decoration:none;display:block;padding:.4rem .2rem}
.sidebar a.active{font-weight:700;text-decoration:underline}
.content{flex:1;padding:1.5rem}
table{border-collapse:collapse;width:100%}
th,td{border-bottom:1px solid #e5e7eb;padding:.4rem;text-align:left}
.empty{color:#6b7280;font-style:italic}
.flash{padding:.6rem;border-radius:4px;background:#ecfdf5}
.flash.error{background:#fef2f2;color:#991b1b}
form{display:flex;flex-direction:column;gap:.4rem;max-width:320px}
`

func page(title string, head []g.Node, body ...g.Node) g.Node {
	return components.HTML5(components.HTML5Props{
		Title:    title + " · RapidXcel",
		Language: "en",
		Head: append([]g.Node{
			html.Meta(html.Name("viewport"), html.Content("width=device-width, initial-scale=1")),
			html.StyleEl(g.Raw(baseCSS)),
		}, head...),
		Body: body,
	})
}

// flash mensaje de resultado (login fallido, registro ok, etc.).
type flash struct {
	Message string
	Error   bool
}

func flashNode(f flash) g.Node {
	if f.Message == "" {
		return nil
	}
	class := "flash"
	if f.Error {
		class = "flash error"
	}
	return html.P(html.Class(class), g.Text(f.Message))
}

// publicPage entrada pública: login y registro.
func publicPage(f flash) g.Node {
	return page("Welcome", nil,
		html.Main(html.Class("content"),
			html.H1(g.Text("RapidXcel Logistics")),
			flashNode(f),
			html.H2(g.Text("Login")),
			html.Form(html.Method("post"), html.Action("/login"),
				html.Input(html.Type("email"), html.Name("email"), html.Placeholder("Email"), html.Required()),
				html.Input(html.Type("password"), html.Name("password"), html.Placeholder("Password"), html.Required()),
				html.Button(html.Type("submit"), g.Text("Login")),
			),
			html.H2(g.Text("Register")),
			html.Form(html.Method("post"), html.Action("/register"),
				html.Input(html.Type("text"), html.Name("name"), html.Placeholder("Name"), html.Required()),
				html.Input(html.Type("email"), html.Name("email"), html.Placeholder("Email"), html.Required()),
				html.Input(html.Type("password"), html.Name("password"), html.Placeholder("Password"), html.Required()),
				html.Select(html.Name("role"), html.Required(),
					g.Map(entity.AllRoles(), func(r entity.Role) g.Node {
						return html.Option(html.Value(string(r)), g.Text(string(r)))
					}),
				),
				html.Button(html.Type("submit"), g.Text("Register")),
			),
		),
	)
}

// loadingPage se muestra mientras otra verificación de la misma sesión está
// en vuelo; se recarga sola.
func loadingPage(hint *entity.User) g.Node {
	return page("Loading",
		[]g.Node{html.Meta(g.Attr("http-equiv", "refresh"), html.Content("1"))},
		html.Main(html.Class("content"),
			html.P(g.Text("Verifying your session…")),
			g.Iff(hint != nil, func() g.Node {
				return html.P(html.Class("empty"), g.Textf("Last signed in as %s", nameOf(hint)))
			}),
		),
	)
}

// shell página protegida: barra lateral del rol + contenido.
func shell(u *entity.User, active navigation.RouteKey, title string, content ...g.Node) g.Node {
	return page(title, nil,
		html.Div(html.Class("layout"),
			html.Aside(html.Class("sidebar"),
				html.Strong(g.Text("RapidXcel")),
				html.P(g.Text(string(u.Role))),
				html.Nav(html.Ul(
					g.Map(navigation.EntriesFor(u.Role), func(e navigation.Entry) g.Node {
						return html.Li(html.A(
							html.Href(e.Path),
							g.If(e.Path == active.Path(), html.Class("active")),
							g.Text(e.Label),
						))
					}),
				)),
			),
			html.Main(html.Class("content"),
				html.H1(g.Text(title)),
				g.Group(content),
			),
		),
	)
}

// table tabla simple; sin filas muestra el estado vacío.
func table(headers []string, rows [][]string, empty string) g.Node {
	if len(rows) == 0 {
		return html.P(html.Class("empty"), g.Text(empty))
	}
	return html.Table(
		html.THead(html.Tr(g.Map(headers, func(h string) g.Node { return html.Th(g.Text(h)) }))),
		html.TBody(g.Map(rows, func(r []string) g.Node {
			return html.Tr(g.Map(r, func(cell string) g.Node { return html.Td(g.Text(cell)) }))
		})),
	)
}

func nameOf(u *entity.User) string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
