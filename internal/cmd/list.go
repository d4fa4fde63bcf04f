package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conciergeelvirad/ELVIRA-sub003/internal/api"
	"github.com/conciergeelvirad/ELVIRA-sub003/internal/crud"
	"github.com/conciergeelvirad/ELVIRA-sub003/internal/hotel"
)

type fieldFilter struct {
	field string
	value string
}

// ListCmd returns the `elvira list` command.
func ListCmd() *cobra.Command {
	var (
		search  string
		sortKey string
		desc    bool
	)
	cmd := &cobra.Command{
		Use:   "list <table> [field=value...]",
		Short: "Print a table's rows as JSON",
		Long: "Fetch every row of a table for the configured hotel, narrow it by search and\n" +
			"field=value filters, sort it, and print the result as a JSON array.\n\n" +
			"Tables: " + strings.Join(hotel.Tables, ", "),
		Args: cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			table := args[0]
			if !hotel.IsTable(table) {
				return fmt.Errorf("unknown table %q (want one of %s)", table, strings.Join(hotel.Tables, ", "))
			}
			filters, err := parseFilters(args[1:])
			if err != nil {
				return err
			}

			cfg, client, err := loadClient()
			if err != nil {
				return err
			}
			rows, err := api.NewTable[crud.Record](client, table, cfg.HotelID).List(c.Context(), "")
			if err != nil {
				return fmt.Errorf("list %s: %w", table, err)
			}

			enc := json.NewEncoder(c.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(project(rows, table, filters, search, sortKey, desc))
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "free-text search over the table's search fields")
	cmd.Flags().StringVar(&sortKey, "sort", "", "field to sort by")
	cmd.Flags().BoolVar(&desc, "desc", false, "sort descending")
	return cmd
}

func parseFilters(args []string) ([]fieldFilter, error) {
	out := make([]fieldFilter, 0, len(args))
	for _, arg := range args {
		field, value, ok := strings.Cut(arg, "=")
		if !ok || strings.TrimSpace(field) == "" {
			return nil, fmt.Errorf("bad filter %q (want field=value)", arg)
		}
		out = append(out, fieldFilter{field: strings.TrimSpace(field), value: value})
	}
	return out, nil
}

// project runs rows through the same search, filter and sort pipeline the
// dashboard lists use.
func project(rows []crud.Record, table string, filters []fieldFilter, search, sortKey string, desc bool) []crud.Record {
	view := crud.NewView(crud.ViewConfig[crud.Record]{SearchFields: hotel.SearchIndex()[table]})
	view.SetSearchTerm(search)
	if sortKey != "" {
		dir := crud.Ascending
		if desc {
			dir = crud.Descending
		}
		view.SetSort(sortKey, dir)
	}
	out := view.Apply(rows)
	for _, f := range filters {
		out = crud.FilterByField(out, f.field, f.value)
	}
	return out
}
