package templates

import "text/template"

// funcMap holds helpers available inside prompt templates.
var funcMap = template.FuncMap{
	"add": func(a, b int) int { return a + b },
	"sub": func(a, b int) int { return a - b },
}
