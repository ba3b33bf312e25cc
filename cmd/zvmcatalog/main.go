// Command zvmcatalog lists and fetches story files from the IF Archive's
// zcode index, the disk-loader collaborator spec.md names as out of scope
// for the interpreter core (spec.md §1) but a real ambient tool around it.
// Grounded on the teacher's cmd/scraper/main.go, restructured around a
// reusable fetchIndex/downloadStory pair and a -filter flag instead of an
// unconditional bulk download.
package main

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const indexURL = "https://www.ifarchive.org/indexes/if-archive/games/zcode/"

var zcodeFileRe = regexp.MustCompile(`\.z[12345678]$`)

// entry is one story file named in the index page.
type entry struct {
	name string
	href string
}

func (e entry) url() string { return "https://www.ifarchive.org" + e.href }

func main() {
	var (
		filter  string
		outDir  string
		list    bool
		timeout time.Duration
	)
	flag.StringVar(&filter, "filter", "", "only consider stories whose file name contains this substring")
	flag.StringVar(&outDir, "out", "stories", "directory downloaded stories are written to")
	flag.BoolVar(&list, "list", false, "list matching stories instead of downloading them")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "HTTP client timeout")
	flag.Parse()

	client := &http.Client{Timeout: timeout}

	entries, err := fetchIndex(client)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fetch index: %v\n", err)
		os.Exit(1)
	}

	if filter != "" {
		entries = filterEntries(entries, filter)
	}

	if list {
		for _, e := range entries {
			fmt.Println(e.name)
		}
		return
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "create output dir: %v\n", err)
		os.Exit(1)
	}

	downloaded, skipped, failed := 0, 0, 0
	for i, e := range entries {
		dest := filepath.Join(outDir, e.name)
		if _, err := os.Stat(dest); err == nil {
			fmt.Printf("[%d/%d] skip %s (already present)\n", i+1, len(entries), e.name)
			skipped++
			continue
		}

		fmt.Printf("[%d/%d] fetching %s... ", i+1, len(entries), e.name)
		n, err := downloadStory(client, e, dest)
		if err != nil {
			fmt.Printf("failed: %v\n", err)
			failed++
			continue
		}
		fmt.Printf("ok (%d bytes)\n", n)
		downloaded++
		time.Sleep(100 * time.Millisecond) // be polite to the archive
	}

	fmt.Printf("\ndownloaded %d, skipped %d, failed %d\n", downloaded, skipped, failed)
}

// fetchIndex downloads and parses the zcode index's <dl><dt><a href> story
// listing.
func fetchIndex(client *http.Client) ([]entry, error) {
	res, err := client.Get(indexURL)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, err
	}

	var entries []entry
	doc.Find("dl dt").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Find("a").Attr("href")
		if !ok || !zcodeFileRe.MatchString(href) {
			return
		}
		entries = append(entries, entry{name: filepath.Base(href), href: href})
	})
	return entries, nil
}

func filterEntries(entries []entry, filter string) []entry {
	var out []entry
	for _, e := range entries {
		if strings.Contains(e.name, filter) {
			out = append(out, e)
		}
	}
	return out
}

func downloadStory(client *http.Client, e entry, dest string) (int, error) {
	res, err := client.Get(e.url())
	if err != nil {
		return 0, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("status %d", res.StatusCode)
	}

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(dest, data, 0644); err != nil {
		return 0, err
	}
	return len(data), nil
}
