package homepage

import "html/template"

type cardData struct {
	Title   string
	Href    string
	Excerpt string
	Source  string
}

type sectionData struct {
	Key   string
	Icon  string
	Label string
	Cards []cardData
}

type pageData struct {
	SiteName string
	BaseURL  string
	Author   string
	Sections []sectionData
}

var homeTemplate = template.Must(template.New("homepage").Parse(`<!DOCTYPE html>
<html lang="ro">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta name="description" content="{{.SiteName}}: rezumate zilnice din finanțe, asigurări, investiții și tehnologie, din surse de încredere.">
<meta name="author" content="{{.Author}}">
<meta property="og:type" content="website">
<meta property="og:title" content="{{.SiteName}}">
<meta property="og:url" content="{{.BaseURL}}">
<meta property="og:locale" content="ro_RO">
<link rel="canonical" href="{{.BaseURL}}">
<title>{{.SiteName}}</title>
<link rel="stylesheet" href="/css/style.css">
</head>
<body>
<header class="header">
<a href="/" class="header__logo">{{.SiteName}}</a>
<nav class="header__nav">
{{- range .Sections}}
<a href="#{{.Key}}" class="nav__link">{{.Label}}</a>
{{- end}}
</nav>
</header>
<main class="main">
{{- range .Sections}}
<section id="{{.Key}}" class="section">
<div class="section__header">
<h2>{{.Icon}} {{.Label}}</h2>
</div>
<div class="section__grid">
{{- range .Cards}}
<article class="card">
<a href="{{.Href}}" class="card__link">
<h3 class="card__title">{{.Title}}</h3>
<p class="card__excerpt">{{.Excerpt}}</p>
<div class="card__meta"><span>Conform {{.Source}}</span></div>
</a>
</article>
{{- end}}
</div>
</section>
{{- end}}
</main>
<footer class="footer">
<p class="footer__copy">{{.SiteName}}: rezumate zilnice din surse de încredere.</p>
</footer>
</body>
</html>
`))
