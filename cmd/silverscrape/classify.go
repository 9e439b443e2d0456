package main

import (
	"fmt"

	"github.com/awalker/silverscrape"
)

// Run executes the classify command.
func (c *ClassifyCmd) Run(deps *Dependencies) error {
	for _, rawURL := range c.URLs {
		in, err := deps.Site.Classify(rawURL)
		if err != nil {
			fmt.Fprintf(deps.Stdout, "%-8s  %s  (%s)\n", "invalid", rawURL, silverscrape.ErrorMessage(err))
			continue
		}
		if in.Kind == silverscrape.KindSearch && in.Query != "" {
			fmt.Fprintf(deps.Stdout, "%-8s  %s  query=%q\n", in.Kind, rawURL, in.Query)
			continue
		}
		fmt.Fprintf(deps.Stdout, "%-8s  %s\n", in.Kind, rawURL)
	}
	return nil
}
