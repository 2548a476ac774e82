package fetchers

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// noise elements removed before content extraction
const noiseSelector = "script, style, noscript, nav, header, footer, aside"

// extractPage parses an HTML document into a title, a markdown rendering
// of its main content, and the outbound anchor links absolutized against
// pageURL.
func extractPage(body []byte, pageURL *url.URL) (title, markdown string, links []string, err error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", "", nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	title = strings.TrimSpace(doc.Find("title").First().Text())
	links = extractLinks(doc, pageURL)

	doc.Find(noiseSelector).Remove()

	content := doc.Find("article").First()
	if content.Length() == 0 {
		content = doc.Find("main").First()
	}
	if content.Length() == 0 {
		content = doc.Find("[role='main']").First()
	}
	if content.Length() == 0 {
		content = doc.Find("body")
	}

	var b strings.Builder
	content.Each(func(_ int, sel *goquery.Selection) {
		for _, n := range sel.Nodes {
			renderBlocks(n, &b)
		}
	})
	markdown = strings.TrimSpace(b.String())
	return title, markdown, links, nil
}

func extractLinks(doc *goquery.Document, pageURL *url.URL) []string {
	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") {
			return
		}
		resolved, err := pageURL.Parse(href)
		if err != nil {
			return
		}
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return
		}
		links = append(links, resolved.String())
	})
	return links
}

// renderBlocks walks an HTML subtree emitting markdown block elements.
func renderBlocks(n *html.Node, b *strings.Builder) {
	if n.Type != html.ElementNode {
		if n.Type == html.DocumentNode {
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				renderBlocks(c, b)
			}
		}
		return
	}

	switch n.Data {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		level := int(n.Data[1] - '0')
		text := strings.TrimSpace(renderInline(n))
		if text != "" {
			b.WriteString(strings.Repeat("#", level) + " " + text + "\n\n")
		}
	case "p":
		text := strings.TrimSpace(renderInline(n))
		if text != "" {
			b.WriteString(text + "\n\n")
		}
	case "pre":
		text := strings.Trim(nodeText(n), "\n")
		if text != "" {
			b.WriteString("```\n" + text + "\n```\n\n")
		}
	case "ul", "ol":
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.Data == "li" {
				if text := strings.TrimSpace(renderInline(c)); text != "" {
					b.WriteString("- " + text + "\n")
				}
			}
		}
		b.WriteString("\n")
	case "blockquote":
		if text := strings.TrimSpace(renderInline(n)); text != "" {
			b.WriteString("> " + text + "\n\n")
		}
	default:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			renderBlocks(c, b)
		}
	}
}

// renderInline flattens a node's contents to a single markdown line.
func renderInline(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		renderInlineNode(c, &b)
	}
	return collapseSpaces(b.String())
}

func renderInlineNode(n *html.Node, b *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
	case html.ElementNode:
		switch n.Data {
		case "code":
			b.WriteString("`" + nodeText(n) + "`")
		case "strong", "b":
			b.WriteString("**" + strings.TrimSpace(nodeText(n)) + "**")
		case "em", "i":
			b.WriteString("*" + strings.TrimSpace(nodeText(n)) + "*")
		case "a":
			text := strings.TrimSpace(nodeText(n))
			if href := attr(n, "href"); href != "" && text != "" {
				fmt.Fprintf(b, "[%s](%s)", text, href)
			} else {
				b.WriteString(text)
			}
		case "br":
			b.WriteString(" ")
		default:
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				renderInlineNode(c, b)
			}
		}
	}
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
