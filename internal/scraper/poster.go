package scraper

import (
	"strings"

	"golang.org/x/net/html"
)

// PosterURL returns the poster image URL of a parsed title page.
//
// The classic layout has the image inside <div class="poster">. Newer
// layouts only expose it as the og:image meta tag, which is used when
// the div is absent.
func PosterURL(doc *html.Node) (string, error) {
	if div := findNode(doc, isPosterDiv); div != nil {
		if img := findNode(div, isElement("img")); img != nil {
			if src, ok := attr(img, "src"); ok && src != "" {
				return src, nil
			}
		}
	}

	if meta := findNode(doc, isOGImage); meta != nil {
		if content, ok := attr(meta, "content"); ok && content != "" {
			return content, nil
		}
	}

	return "", ErrPosterNotFound
}

// findNode returns the first node in document order matching fn.
func findNode(n *html.Node, fn func(*html.Node) bool) *html.Node {
	if fn(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findNode(c, fn); found != nil {
			return found
		}
	}
	return nil
}

func isElement(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == tag
	}
}

func isPosterDiv(n *html.Node) bool {
	if !isElement("div")(n) {
		return false
	}
	class, _ := attr(n, "class")
	for _, c := range strings.Fields(class) {
		if c == "poster" {
			return true
		}
	}
	return false
}

func isOGImage(n *html.Node) bool {
	if !isElement("meta")(n) {
		return false
	}
	prop, _ := attr(n, "property")
	return prop == "og:image"
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
