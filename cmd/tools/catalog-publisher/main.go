// cmd/tools/catalog-publisher/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/elastic/go-elasticsearch/v8"

	"approval-workers/internal/catalog"
	"approval-workers/pkg/registry"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) < 1 {
		help(out)
		return fmt.Errorf("no command given")
	}

	switch args[0] {
	case "validate":
		cmd := flag.NewFlagSet("validate", flag.ContinueOnError)
		catalogPath := cmd.String("catalog", "", "Catalog document to validate (builtin when empty)")
		registryPath := cmd.String("registry", "", "Activity registry to validate (embedded when empty)")
		candidates := cmd.String("candidates", "", "Comma-separated card ids that must exist in the catalog")
		if err := cmd.Parse(args[1:]); err != nil {
			return err
		}
		return validate(out, *catalogPath, *registryPath, splitIDs(*candidates))

	case "list":
		cmd := flag.NewFlagSet("list", flag.ContinueOnError)
		catalogPath := cmd.String("catalog", "", "Catalog document to list (builtin when empty)")
		segment := cmd.String("segment", "", "Only cards of this segment (Business, Personal)")
		if err := cmd.Parse(args[1:]); err != nil {
			return err
		}
		cat, err := loadCatalog(*catalogPath)
		if err != nil {
			return err
		}
		return list(out, cat, catalog.Segment(*segment))

	case "publish":
		cmd := flag.NewFlagSet("publish", flag.ContinueOnError)
		catalogPath := cmd.String("catalog", "", "Catalog document to publish (builtin when empty)")
		address := cmd.String("es", "http://localhost:9200", "Elasticsearch address")
		index := cmd.String("index", "card-profiles", "Target index")
		timeout := cmd.Duration("timeout", 30*time.Second, "Overall publish timeout")
		if err := cmd.Parse(args[1:]); err != nil {
			return err
		}
		cat, err := loadCatalog(*catalogPath)
		if err != nil {
			return err
		}
		es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{*address}})
		if err != nil {
			return fmt.Errorf("failed to create elasticsearch client: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), *timeout)
		defer cancel()
		if err := catalog.NewElasticsearchSource(es, *index).Publish(ctx, cat); err != nil {
			return fmt.Errorf("publish failed: %w", err)
		}
		fmt.Fprintf(out, "Published %d cards to %s/%s\n", cat.Len(), *address, *index)
		return nil

	case "help", "-h", "--help":
		help(out)
		return nil
	}

	help(out)
	return fmt.Errorf("unknown command %q", args[0])
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Builtin(), nil
	}
	cat, err := catalog.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", path, err)
	}
	return cat, nil
}

func validate(out io.Writer, catalogPath, registryPath string, candidates []string) error {
	cat, err := loadCatalog(catalogPath)
	if err != nil {
		return err
	}

	var missing []string
	for _, id := range candidates {
		if _, ok := cat.ByID(id); !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("candidates not in catalog: %s", strings.Join(missing, ", "))
	}

	reg := registry.Default()
	if registryPath != "" {
		if reg, err = registry.LoadRegistry(registryPath); err != nil {
			return fmt.Errorf("failed to load registry: %w", err)
		}
	}
	if len(reg.Activities) == 0 {
		return fmt.Errorf("registry contains no activities")
	}

	fmt.Fprintf(out, "Catalog validation passed. Found %d cards.\n", cat.Len())
	fmt.Fprintf(out, "Registry validation passed. Found %d activities.\n", len(reg.Activities))
	return nil
}

func list(out io.Writer, cat *catalog.Catalog, segment catalog.Segment) error {
	cards := cat.All()
	if segment != "" {
		cards = cat.BySegment(segment)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSEGMENT\tDIFFICULTY\tMIN FICO\tNAME")
	for _, c := range cards {
		p := c.Profile()
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", c.ID, c.Segment, p.DifficultyRating, p.MinPersonalFico, p.CardName)
	}
	return w.Flush()
}

func splitIDs(s string) []string {
	var ids []string
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func help(out io.Writer) {
	fmt.Fprint(out, `
Usage: catalog-publisher <command> [flags]

Commands:
  validate  Validate a catalog document and the activity registry
  list      Print the cards of a catalog
  publish   Index a catalog into Elasticsearch for the elasticsearch catalog source
  help      Show this help message

Examples:
  catalog-publisher validate -catalog configs/cards.json -candidates costco-anywhere-visa-citi
  catalog-publisher list -segment Business
  catalog-publisher publish -catalog configs/cards.json -es http://localhost:9200 -index card-profiles

Use 'catalog-publisher <command> -h' for more information about a command.
`)
}
