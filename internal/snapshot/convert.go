package snapshot

import (
	"bytes"
	"net/url"
	"slices"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/mackee/go-readability"
	"github.com/morikuni/failure/v2"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// contentClass marks the article body of MediaWiki pages.
const contentClass = "mw-parser-output"

// noiseClasses are removed from MediaWiki content before conversion.
var noiseClasses = []string{"mw-editsection", "reference", "navbox", "toc", "noprint", "mw-empty-elt"}

// Convert turns an HTML document into a markdown body.
//
// The main content is chosen in this order: the first element with class
// "mw-parser-output", the article found by readability, the whole document.
func Convert(pageURL string, doc []byte) (string, error) {
	root, err := html.Parse(bytes.NewReader(doc))
	if err != nil {
		return "", failure.Wrap(err, failure.WithCode(ErrConvert), failure.Message("cannot parse HTML"))
	}

	var fragment string
	if content := findByClass(root, contentClass); content != nil {
		removeNoise(content)
		fragment, err = renderNode(content)
	} else if article, ok := extractArticle(string(doc)); ok {
		fragment = article
	} else {
		fragment, err = renderNode(root)
	}
	if err != nil {
		return "", err
	}

	converter := md.NewConverter(domainOf(pageURL), true, nil)
	body, err := converter.ConvertString(fragment)
	if err != nil {
		return "", failure.Wrap(err, failure.WithCode(ErrConvert), failure.Message("cannot convert HTML to markdown"))
	}
	return strings.TrimSpace(body), nil
}

// extractArticle returns the HTML of the readability article. ok is false
// when readability finds no article or the article has no text.
func extractArticle(doc string) (string, bool) {
	article, err := readability.Extract(doc, readability.DefaultOptions())
	if err != nil || article.Root == nil {
		return "", false
	}
	if strings.TrimSpace(readability.ExtractTextContent(article.Root)) == "" {
		return "", false
	}
	return readability.ToHTML(article.Root), true
}

func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", failure.Wrap(err, failure.WithCode(ErrConvert), failure.Message("cannot render HTML"))
	}
	return buf.String(), nil
}

// domainOf returns the host used to resolve relative links.
func domainOf(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	return u.Host
}

func findByClass(n *html.Node, class string) *html.Node {
	if n.Type == html.ElementNode && hasClass(n, class) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByClass(c, class); found != nil {
			return found
		}
	}
	return nil
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key == "class" && slices.Contains(strings.Fields(a.Val), class) {
			return true
		}
	}
	return false
}

// removeNoise drops scripts, styles and MediaWiki chrome below n.
func removeNoise(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if isNoise(c) {
			n.RemoveChild(c)
		} else {
			removeNoise(c)
		}
		c = next
	}
}

func isNoise(n *html.Node) bool {
	if n.Type == html.CommentNode {
		return true
	}
	if n.Type != html.ElementNode {
		return false
	}
	switch n.DataAtom {
	case atom.Script, atom.Style, atom.Noscript:
		return true
	}
	for _, class := range noiseClasses {
		if hasClass(n, class) {
			return true
		}
	}
	return false
}
