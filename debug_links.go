package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"catalog-scraper/internal/types"
	"catalog-scraper/utils"
)

// Ad-hoc probe for diagnosing markup drift on collection pages: reports how
// many links, card-selector matches and data-events scripts a page exposes
// so extraction strategy failures can be traced to the right layer.
func main() {
	url := "https://www.jkcabinetry.com/collections/s8-sink-base-cabinet"
	if len(os.Args) > 1 {
		url = os.Args[1]
	}

	config := types.DefaultConfig()
	logger := &debugLogger{}

	httpClient := utils.NewHTTPClient(config, logger)
	defer httpClient.Close()

	fmt.Printf("=== Probing %s ===\n", url)

	body, err := httpClient.Get(context.Background(), url)
	if err != nil {
		log.Fatalf("Failed to fetch page: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		log.Fatalf("Failed to parse HTML: %v", err)
	}

	fmt.Printf("Total links found: %d\n", doc.Find("a").Length())
	fmt.Printf("Product links (href contains /products/): %d\n", doc.Find("a[href*='/products/']").Length())
	fmt.Printf("Scripts with data-events attribute: %d\n", doc.Find("script[data-events]").Length())

	for _, sel := range []string{"div.grid__item", "div.product-card", "li.grid__item", "li.product-card"} {
		fmt.Printf("Selector %-18s matches: %d\n", sel, doc.Find(sel).Length())
	}
	fmt.Printf("Elements with 'product' in class: %d\n", doc.Find("[class*='product']").Length())
}

type debugLogger struct{}

func (d *debugLogger) Debug(args ...interface{}) {}
func (d *debugLogger) Info(args ...interface{}) { fmt.Println(args...) }
func (d *debugLogger) Warn(args ...interface{}) { fmt.Println(args...) }
func (d *debugLogger) Error(args ...interface{}) { fmt.Println(args...) }
func (d *debugLogger) Debugf(format string, args ...interface{}) {}
func (d *debugLogger) Infof(format string, args ...interface{}) { fmt.Printf(format+"\n", args...) }
func (d *debugLogger) Warnf(format string, args ...interface{}) { fmt.Printf(format+"\n", args...) }
func (d *debugLogger) Errorf(format string, args ...interface{}) { fmt.Printf(format+"\n", args...) }
