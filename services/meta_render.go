package services

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"heritage-map/models"
)

// KnownBots are lower-case user agent fragments of link-preview crawlers
// and search engines.
var KnownBots = []string{
	"facebookexternalhit",
	"facebot",
	"twitterbot",
	"linkedinbot",
	"whatsapp",
	"slackbot",
	"telegrambot",
	"discordbot",
	"googlebot",
	"bingbot",
	"pinterest",
	"redditbot",
	"applebot",
	"skypeuripreview",
	"embedly",
	"vkshare",
	"duckduckbot",
	"yandex",
}

// IsCrawler reports whether userAgent matches one of KnownBots.
func IsCrawler(userAgent string) bool {
	ua := strings.ToLower(userAgent)
	for _, bot := range KnownBots {
		if strings.Contains(ua, bot) {
			return true
		}
	}
	return false
}

var shareTemplate = template.Must(template.New("share").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Meta.Title}}</title>
<meta name="description" content="{{.Meta.Description}}">
<link rel="canonical" href="{{.Meta.CanonicalURL}}">
<meta property="og:type" content="{{.Meta.OGType}}">
<meta property="og:site_name" content="{{.Meta.SiteName}}">
<meta property="og:locale" content="{{.Meta.Locale}}">
<meta property="og:title" content="{{.Meta.Title}}">
<meta property="og:description" content="{{.Meta.Description}}">
<meta property="og:url" content="{{.Meta.CanonicalURL}}">
{{- if .Meta.Image}}
<meta property="og:image" content="{{.Meta.Image}}">
<meta property="og:image:alt" content="{{.Meta.Title}}">
{{- end}}
<meta name="twitter:card" content="{{.Meta.TwitterCard}}">
{{- if .Meta.TwitterSite}}
<meta name="twitter:site" content="{{.Meta.TwitterSite}}">
{{- end}}
<meta name="twitter:title" content="{{.Meta.Title}}">
<meta name="twitter:description" content="{{.Meta.Description}}">
{{- if .Meta.Image}}
<meta name="twitter:image" content="{{.Meta.Image}}">
{{- end}}
<script>
(function () {
  var bots = {{.Bots}};
  var ua = (navigator.userAgent || "").toLowerCase();
  for (var i = 0; i < bots.length; i++) {
    if (ua.indexOf(bots[i]) !== -1) { return; }
  }
  window.location.replace({{.RedirectURL}});
})();
</script>
</head>
<body>
<h1>{{.Meta.Title}}</h1>
<p>{{.Meta.Description}}</p>
<p><a href="{{.RedirectURL}}">{{.Meta.SiteName}}</a></p>
</body>
</html>
`))

// RenderShareHTML renders the crawler-facing document for meta. Browsers
// running the embedded script are sent on to redirectURL.
func RenderShareHTML(meta models.ResolvedMeta, redirectURL string) ([]byte, error) {
	if redirectURL == "" {
		redirectURL = meta.CanonicalURL
	}
	var buf bytes.Buffer
	err := shareTemplate.Execute(&buf, struct {
		Meta        models.ResolvedMeta
		Bots        []string
		RedirectURL string
	}{Meta: meta, Bots: KnownBots, RedirectURL: redirectURL})
	if err != nil {
		return nil, fmt.Errorf("render share html: %w", err)
	}
	return buf.Bytes(), nil
}
