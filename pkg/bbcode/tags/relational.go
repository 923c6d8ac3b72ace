package tags

import (
	"fmt"
	"html"
	"net/mail"
	"net/url"
	"regexp"
	"strings"

	"github.com/open-cli-collective/bbcode-cli/pkg/bbcode"
)

var (
	urlOpen = `(?i)\[url(?:=(?P<href>` + bbcode.ArgValue + `)|(?P<attrs>` + bbcode.AttrList + `))\s*\]`
	autoURL = `(?:ht|f)tps?://[-\w.]+(?::\d+)?(?:/(?:[\w/.,-]*(?:\?[^\s\[\]]+)?)?)?`

	youtubeID = regexp.MustCompile(`v=([\w-]+)`)

	allowedSchemes = map[string]bool{"": true, "http": true, "https": true, "ftp": true, "ftps": true}
	imgAlignments  = map[string]bool{"left": true, "center": true, "right": true}
)

func registerRelational(r *bbcode.Registry) error {
	return registerAll(r, []bbcode.TagDefinition{
		{
			Name:        "url",
			Description: "Link, [url]href[/url], [url=href]text[/url] or [url href=.. css=..]text[/url]",
			Open:        urlOpen,
			Close:       bbcode.Closing("url"),
			Shape:       bbcode.ShapeCustom,
			Keywords:    map[string]string{"href": "", "css": ""},
			Render:      renderURL,
		},
		{
			Name:        "email",
			Description: "Mail link, [email]addr[/email] or [email=addr]text[/email]",
			Open:        bbcode.OptionalArgument("email", "mail"),
			Close:       bbcode.Closing("email"),
			Shape:       bbcode.ShapeCustom,
			Render:      renderEmail,
		},
		{
			Name:        "img",
			Description: "Image from the media URL, [img=left|center|right]path[/img]",
			Open:        bbcode.SingleArgument("img"),
			Close:       bbcode.Closing("img"),
			Shape:       bbcode.ShapeArgument,
			Children:    bbcode.ChildrenText,
			Render:      renderImg,
		},
		{
			Name:        "youtube",
			Description: "Embedded YouTube video from its watch URL",
			Open:        bbcode.NoArgument("youtube"),
			Close:       bbcode.Closing("youtube"),
			Shape:       bbcode.ShapeBlockCustom,
			Children:    bbcode.ChildrenText,
			Render:      renderYoutube,
		},
		{
			Name:        "download",
			Description: "Download link to a media file, [download=path]title[/download]",
			Open:        bbcode.OptionalArgument("download", "path"),
			Close:       bbcode.Closing("download"),
			Shape:       bbcode.ShapeBlockCustom,
			Render:      renderDownload,
		},
		{
			Name:        "autourl",
			Description: "Bare http(s) and ftp(s) URLs become links",
			Open:        autoURL,
			Shape:       bbcode.ShapeSelfClosing,
			Fallback:    true,
			Render: func(rc *bbcode.RenderContext, n *bbcode.Node) (string, error) {
				if rc.AsText {
					return n.Open, nil
				}
				e := html.EscapeString(n.Open)
				return `<a href="` + e + `">` + e + `</a>`, nil
			},
		},
	})
}

// safeURL resolves and checks a link target. Relative references are kept;
// only web and ftp schemes are accepted otherwise.
func safeURL(n *bbcode.Node, raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", n.Fail("invalid url %q", raw)
	}
	if !allowedSchemes[strings.ToLower(u.Scheme)] {
		return "", n.Fail("unsupported url scheme %q", u.Scheme)
	}
	return u.String(), nil
}

func renderURL(rc *bbcode.RenderContext, n *bbcode.Node) (string, error) {
	href := bbcode.Unquote(n.Capture("href"))
	if href == "" {
		href = n.Arguments["href"]
	}

	var inner string
	if href != "" {
		inner = rc.Inner(n)
	} else {
		raw, ok := textOnly(n)
		if !ok {
			return "", n.Fail("url tag cannot contain nested tags without an href")
		}
		href = raw
		inner = rc.Escape(rc.Resolve(raw))
	}
	target, err := safeURL(n, rc.Resolve(href))
	if err != nil {
		return "", err
	}
	if rc.AsText {
		return inner, nil
	}
	css := classList(rc.Resolve(n.Arguments["css"]))
	return `<a target="_blank"` + attr("href", target) + attr("class", css) + `>` + inner + `</a>`, nil
}

func renderEmail(rc *bbcode.RenderContext, n *bbcode.Node) (string, error) {
	address := rc.Resolve(bbcode.Unquote(n.Capture("mail")))

	var inner string
	if address != "" {
		inner = rc.Inner(n)
	} else {
		raw, ok := textOnly(n)
		if !ok {
			return "", n.Fail("email tag cannot contain nested tags without an address")
		}
		address = rc.Resolve(strings.TrimSpace(raw))
		inner = rc.Escape(address)
	}

	parsed, err := mail.ParseAddress(address)
	if err != nil {
		return "", n.Fail("invalid email address %q", address)
	}
	if rc.AsText {
		return inner, nil
	}
	return `<a` + attr("href", "mailto:"+parsed.Address) + `>` + inner + `</a>`, nil
}

// mediaPath joins a relative path onto the configured media URL.
func mediaPath(rc *bbcode.RenderContext, path string) string {
	if u, err := url.Parse(path); err == nil && u.Scheme != "" {
		return path
	}
	base := ""
	if rc.Context != nil {
		base = strings.TrimRight(rc.Context.MediaURL, "/")
	}
	return base + "/" + strings.TrimLeft(path, "/")
}

func renderImg(rc *bbcode.RenderContext, n *bbcode.Node) (string, error) {
	if rc.AsText {
		return "", nil
	}
	path := strings.TrimSpace(rc.Resolve(rc.Raw(n)))
	if path == "" {
		return "", n.Fail("image tag has no path")
	}
	src, err := safeURL(n, mediaPath(rc, path))
	if err != nil {
		return "", err
	}

	class := ""
	if align := strings.ToLower(rc.Resolve(n.Argument)); align != "" {
		if imgAlignments[align] {
			class = "img-" + align
		} else {
			rc.Warn(n, "unknown image alignment %q, expected left, center or right", align)
		}
	}
	return `<img` + attr("src", src) + ` alt="image"` + attr("class", class) + ` />`, nil
}

func renderYoutube(rc *bbcode.RenderContext, n *bbcode.Node) (string, error) {
	link := strings.TrimSpace(rc.Resolve(rc.Raw(n)))
	m := youtubeID.FindStringSubmatch(link)
	if m == nil {
		return "", n.Fail("%q does not look like a youtube link", link)
	}
	if rc.AsText {
		return "", nil
	}
	return fmt.Sprintf(`<iframe width="560" height="340" src="https://www.youtube.com/embed/%s" frameborder="0" allowfullscreen></iframe>`, m[1]), nil
}

func renderDownload(rc *bbcode.RenderContext, n *bbcode.Node) (string, error) {
	path := strings.TrimSpace(rc.Resolve(bbcode.Unquote(n.Capture("path"))))
	if path == "" {
		return "", n.Fail("download tag must have a file path")
	}
	if rc.AsText {
		return "", nil
	}
	href, err := safeURL(n, mediaPath(rc, path))
	if err != nil {
		return "", err
	}
	return `<div class="block-details block-download">` +
		`<span class="icon-block"></span>` +
		`<span class="text-block">Click on the following link to download <a` + attr("href", href) + `>` + rc.Inner(n) + `</a>.</span>` +
		`<div class="clear"></div>` +
		`</div>`, nil
}
