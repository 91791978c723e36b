package publish

import "html/template"

// pageData feeds the article template. JSONLD is pre-marshaled JSON and the
// only field that bypasses contextual escaping.
type pageData struct {
	SiteName     string
	Title        string
	MetaTitle    string
	MetaDesc     string
	Keywords     string
	Author       string
	CanonicalURL string
	Published    string
	ReadingTime  int
	Subcategory  string
	CityTags     []string
	Summary      string
	Content      string
	SourceName   string
	SourceURL    string
	JSONLD       template.JS
}

// Every dynamic value goes through html/template's contextual escaping, so
// hostile titles or summaries cannot inject markup into the page.
var pageTemplate = template.Must(template.New("article").Parse(`<!DOCTYPE html>
<html lang="ro">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.MetaTitle}}</title>
<meta name="description" content="{{.MetaDesc}}">
<meta name="keywords" content="{{.Keywords}}">
<meta name="author" content="{{.Author}}">
<link rel="canonical" href="{{.CanonicalURL}}">
<meta property="og:type" content="article">
<meta property="og:title" content="{{.MetaTitle}}">
<meta property="og:description" content="{{.MetaDesc}}">
<meta property="og:url" content="{{.CanonicalURL}}">
<meta property="og:site_name" content="{{.SiteName}}">
<script type="application/ld+json">{{.JSONLD}}</script>
</head>
<body>
<article>
<header>
<h1>{{.Title}}</h1>
<p class="meta">
<span class="subcategory">{{.Subcategory}}</span>
{{- range .CityTags}}
<span class="city-tag">{{.}}</span>
{{- end}}
<time datetime="{{.Published}}">{{.Published}}</time>
<span class="reading-time">{{.ReadingTime}} min</span>
</p>
</header>
<div class="ad-slot ad-slot-top"></div>
<p class="summary">{{.Summary}}</p>
{{- if .Content}}
<div class="article-body">
<p>{{.Content}}</p>
</div>
{{- end}}
<div class="ad-slot ad-slot-bottom"></div>
<footer>
<p class="source">Sursa: <a href="{{.SourceURL}}" rel="nofollow noopener" target="_blank">{{.SourceName}}</a></p>
<p class="author">{{.Author}}</p>
</footer>
</article>
</body>
</html>
`))
