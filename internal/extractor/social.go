package extractor

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// socialPlatforms maps platform names to the host suffixes that identify
// them in anchor targets.
var socialPlatforms = map[string][]string{
	"facebook":  {"facebook.com", "fb.me"},
	"instagram": {"instagram.com"},
	"twitter":   {"twitter.com", "x.com"},
	"linkedin":  {"linkedin.com"},
	"youtube":   {"youtube.com"},
	"pinterest": {"pinterest.com"},
	"tiktok":    {"tiktok.com"},
}

// extractSocialHandles scans anchors for known social platform hosts and
// extracts the handle from the first path segment. The first link per
// platform wins.
func extractSocialHandles(doc *goquery.Document) map[string]string {
	handles := make(map[string]string)

	doc.Find("a[href]").Each(func(_ int, anchor *goquery.Selection) {
		href, _ := anchor.Attr("href")
		target, err := url.Parse(strings.TrimSpace(href))
		if err != nil || target.Host == "" {
			return
		}

		host := strings.ToLower(strings.TrimPrefix(target.Hostname(), "www."))
		for platform, domains := range socialPlatforms {
			if _, taken := handles[platform]; taken {
				continue
			}
			for _, domainSuffix := range domains {
				if host == domainSuffix || strings.HasSuffix(host, "."+domainSuffix) {
					handles[platform] = handleFromPath(target.Path, href)
					break
				}
			}
		}
	})

	if len(handles) == 0 {
		return nil
	}
	return handles
}

// handleFromPath extracts the account handle from the URL path's first
// segment, falling back to the full link when the path is empty.
func handleFromPath(path, fallback string) string {
	for _, segment := range strings.Split(path, "/") {
		segment = strings.TrimSpace(segment)
		if segment != "" {
			return strings.TrimPrefix(segment, "@")
		}
	}
	return fallback
}
