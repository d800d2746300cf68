package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/examhub-lk/examhub-api/internal/catalog"
)

func subjectsCommand() *cli.Command {
	return &cli.Command{
		Name:  "subjects",
		Usage: "Print the subject catalog or resolve a query against it",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "match",
				Usage: "Show the subjects a search query resolves to",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print as JSON",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cat := catalog.Default()
			if q := c.String("match"); q != "" {
				return printMatch(cat, q, c.Bool("json"))
			}
			subjects := cat.All()
			if c.Bool("json") {
				return json.NewEncoder(os.Stdout).Encode(subjects)
			}
			for _, s := range subjects {
				marker := ""
				if cat.IsLiterature(s.ID) {
					marker = " (literature)"
				}
				fmt.Printf("%-40s %s%s\n", s.ID, s.Name, marker)
			}
			fmt.Printf("\n%d subjects\n", cat.Len())
			return nil
		},
	}
}

func printMatch(cat *catalog.Catalog, query string, asJSON bool) error {
	exact, _ := cat.ExactMatch(query)
	result := struct {
		Query      string   `json:"query"`
		Exact      string   `json:"exact,omitempty"`
		Fuzzy      []string `json:"fuzzy"`
		Literature bool     `json:"literature"`
	}{
		Query:      query,
		Exact:      exact,
		Fuzzy:      cat.FuzzyMatch(query),
		Literature: cat.IsLiteratureQuery(query),
	}
	if asJSON {
		return json.NewEncoder(os.Stdout).Encode(result)
	}
	fmt.Printf("query:      %s\n", result.Query)
	fmt.Printf("exact:      %s\n", result.Exact)
	fmt.Printf("fuzzy:      %s\n", strings.Join(result.Fuzzy, ", "))
	fmt.Printf("literature: %t\n", result.Literature)
	return nil
}
