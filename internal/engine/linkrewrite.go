package engine

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// RewriteRelativeLinks converts relative a[href] targets in the assembled
// document to absolute file:// URLs under sourceDir, so links to sibling
// files survive the print rendering step. Images need no rewriting: the
// substitution stage embeds them as data URIs.
//
// If sourceDir is empty the document is returned unchanged. Anchors, URLs
// and absolute paths are left alone, as are paths escaping sourceDir.
func RewriteRelativeLinks(htmlContent, sourceDir string) (string, error) {
	if sourceDir == "" {
		return htmlContent, nil
	}

	absSourceDir, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", err
	}

	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	rewriteLinkNode(doc, absSourceDir)

	var b strings.Builder
	if err := html.Render(&b, doc); err != nil {
		return "", err
	}
	return b.String(), nil
}

// rewriteLinkNode walks the DOM rewriting relative hrefs on anchor elements.
func rewriteLinkNode(n *html.Node, sourceDir string) {
	if n.Type == html.ElementNode && n.Data == "a" {
		for i, attr := range n.Attr {
			if attr.Key != "href" || !isRelativeHref(attr.Val) {
				continue
			}

			absPath := filepath.Join(sourceDir, attr.Val)
			if !isPathUnderDir(absPath, sourceDir) {
				continue
			}
			n.Attr[i].Val = pathToFileURL(absPath)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteLinkNode(c, sourceDir)
	}
}

// isRelativeHref reports whether the href should be rewritten.
func isRelativeHref(href string) bool {
	if href == "" {
		return false
	}

	// URLs, data URIs and protocol-relative references stay as-is
	if strings.HasPrefix(href, "http://") ||
		strings.HasPrefix(href, "https://") ||
		strings.HasPrefix(href, "file://") ||
		strings.HasPrefix(href, "data:") ||
		strings.HasPrefix(href, "//") {
		return false
	}

	// in-document anchors are the TOC's whole point
	if strings.HasPrefix(href, "#") {
		return false
	}

	return !filepath.IsAbs(href)
}

// isPathUnderDir checks that absPath stays under dir, blocking traversal
// out of the source tree.
func isPathUnderDir(absPath, dir string) bool {
	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(dir)

	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}
	return strings.HasPrefix(cleanPath+string(filepath.Separator), cleanDir)
}

// pathToFileURL converts an absolute path to a file:// URL, handling
// Windows separators via ToSlash.
func pathToFileURL(absPath string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(absPath)}
	return u.String()
}
