package main

import (
	"fmt"

	"github.com/awalker/silverscrape"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := silverscrape.ProductFilter{Limit: c.Limit}
	if c.Availability != "" {
		avail := silverscrape.ParseAvailability(c.Availability)
		filter.Availability = &avail
	}

	products, err := deps.Products.FindProducts(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", silverscrape.ErrorMessage(err))
		return err
	}

	if len(products) == 0 {
		fmt.Fprintln(deps.Stdout, "No products found. Use 'silverscrape scrape' to collect some.")
		return nil
	}

	for _, p := range products {
		price := p.PriceDisplay
		if price == "" {
			price = "-"
		}
		fmt.Fprintf(deps.Stdout, "%-10s  %-14s  %s  %s\n", price, p.Availability, p.URL, p.Name)
		if c.Full {
			if p.SKU != "" {
				fmt.Fprintf(deps.Stdout, "            sku=%s\n", p.SKU)
			}
			if p.ImageURL != "" {
				fmt.Fprintf(deps.Stdout, "            image=%s\n", p.ImageURL)
			}
			if p.Description != "" {
				fmt.Fprintf(deps.Stdout, "            %s\n", p.Description)
			}
		}
	}

	return nil
}
