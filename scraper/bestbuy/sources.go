package bestbuy

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/antchfx/xmlquery"
)

// Source groups one phone with its carrier product URLs, in document order.
type Source struct {
	Phone string
	URLs  []string
}

// LoadSources reads the phone/URL document from a local path or an http(s)
// URL. Each top-level element is a phone (element name = phone name, with
// underscores standing in for spaces); its child elements hold one product
// URL each as text. Any parse failure is returned as-is: a malformed source
// list aborts the run rather than producing a partial report.
func (s *Scraper) LoadSources(path string) ([]Source, error) {
	var doc *xmlquery.Node

	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		resp, err := s.client.R().Get(path)
		if err != nil {
			return nil, fmt.Errorf("fetch source list %q: %w", path, err)
		}
		if resp.IsError() {
			return nil, fmt.Errorf("fetch source list %q: status %s", path, resp.Status())
		}
		doc, err = xmlquery.Parse(bytes.NewReader(resp.Body()))
		if err != nil {
			return nil, fmt.Errorf("parse source list %q: %w", path, err)
		}
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open source list %q: %w", path, err)
		}
		defer f.Close()

		doc, err = xmlquery.Parse(f)
		if err != nil {
			return nil, fmt.Errorf("parse source list %q: %w", path, err)
		}
	}

	root := firstElement(doc.FirstChild)
	if root == nil {
		return nil, fmt.Errorf("source list %q has no root element", path)
	}

	var sources []Source
	for phone := firstElement(root.FirstChild); phone != nil; phone = nextElement(phone) {
		src := Source{Phone: strings.ReplaceAll(phone.Data, "_", " ")}
		for link := firstElement(phone.FirstChild); link != nil; link = nextElement(link) {
			if u := strings.TrimSpace(link.InnerText()); u != "" {
				src.URLs = append(src.URLs, u)
			}
		}
		sources = append(sources, src)
	}
	return sources, nil
}

// firstElement returns n or its first following sibling of element type.
func firstElement(n *xmlquery.Node) *xmlquery.Node {
	for ; n != nil; n = n.NextSibling {
		if n.Type == xmlquery.ElementNode {
			return n
		}
	}
	return nil
}

func nextElement(n *xmlquery.Node) *xmlquery.Node {
	return firstElement(n.NextSibling)
}
