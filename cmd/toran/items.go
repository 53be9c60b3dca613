package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arthur-debert/toran/internal/confirm"
	"github.com/arthur-debert/toran/search"
	"github.com/arthur-debert/toran/types"
)

// itemFlags holds the field flags shared by add and edit
type itemFlags struct {
	name     string
	category string
	qty      string
	price    string
	loc      string
}

func (f *itemFlags) register(cmd *cobra.Command, withName bool) {
	if withName {
		cmd.Flags().StringVar(&f.name, "name", "", "item name")
	}
	cmd.Flags().StringVarP(&f.category, "category", "c", string(types.Fans), "category: Fans|Lights|Bells|Accessories")
	cmd.Flags().StringVar(&f.qty, "qty", "1", "units in stock")
	cmd.Flags().StringVar(&f.price, "price", "", "unit price")
	cmd.Flags().StringVar(&f.loc, "loc", "", "shelf location")
}

func parseCategory(operation, name string) (types.Category, error) {
	category, err := types.ParseCategory(name)
	if err != nil || category == "" {
		return "", NewValidationError(operation, "category", name,
			"Valid categories: Fans, Lights, Bells, Accessories")
	}
	return category, nil
}

func newAddCmd(a *app) *cobra.Command {
	var f itemFlags

	cmd := &cobra.Command{
		Use:   "add <sku> <name>",
		Short: "Add a new item",
		Long: `Add a new item to the top of the inventory.

The SKU must be unique and cannot be changed later. Quantity and price are
stored as entered.

Examples:
  toran add FAN-002 "Wall Fan" --category Fans --qty 6 --price 999 --loc S1
  toran add LGT-120 "LED Strip 5m" -c lights`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := parseCategory("add item", f.category)
			if err != nil {
				return err
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}

			item := types.Item{
				SKU:      strings.TrimSpace(args[0]),
				Name:     strings.TrimSpace(args[1]),
				Category: category,
				Qty:      types.Quantity(f.qty),
				Price:    types.Price(f.price),
				Loc:      f.loc,
			}
			if err := store.Add(item); err != nil {
				return WrapError("add item", err)
			}

			a.logger.Info("item added", zap.String("sku", item.SKU))
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", item.SKU, item.Name)
			return nil
		},
	}
	f.register(cmd, false)
	return cmd
}

func newEditCmd(a *app) *cobra.Command {
	var f itemFlags

	cmd := &cobra.Command{
		Use:   "edit <sku>",
		Short: "Change fields of an existing item",
		Long: `Change fields of an existing item. Only the flags given are changed;
the SKU itself cannot be edited.

Examples:
  toran edit FAN-001 --qty 10
  toran edit BEL-55 --name "Door Bell Model Y" --price 399`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sku := strings.TrimSpace(args[0])

			store, err := a.openStore()
			if err != nil {
				return err
			}

			item, found := store.Get(sku)
			if !found {
				return NewNotFoundError("edit item", sku, CommonSuggestions.CheckSKU)
			}

			flags := cmd.Flags()
			if flags.Changed("name") {
				item.Name = strings.TrimSpace(f.name)
			}
			if flags.Changed("category") {
				category, err := parseCategory("edit item", f.category)
				if err != nil {
					return err
				}
				item.Category = category
			}
			if flags.Changed("qty") {
				item.Qty = types.Quantity(f.qty)
			}
			if flags.Changed("price") {
				item.Price = types.Price(f.price)
			}
			if flags.Changed("loc") {
				item.Loc = f.loc
			}

			if err := store.Update(sku, item); err != nil {
				return WrapError("edit item", err)
			}

			a.logger.Info("item updated", zap.String("sku", sku))
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", sku)
			return nil
		},
	}
	f.register(cmd, true)
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <sku>",
		Short: "Delete an item",
		Long: `Delete an item after confirmation.

Use --yes to skip the confirmation prompt.

Examples:
  toran delete BEL-55
  toran delete BEL-55 --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sku := strings.TrimSpace(args[0])

			store, err := a.openStore()
			if err != nil {
				return err
			}
			if _, found := store.Get(sku); !found {
				return NewNotFoundError("delete item", sku, CommonSuggestions.CheckSKU)
			}

			var confirmer confirm.Confirmer = confirm.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			if yes {
				confirmer = confirm.Always(true)
			}

			removed, err := store.Delete(sku, confirmer)
			if err != nil {
				return WrapError("delete item", err)
			}
			if !removed {
				fmt.Fprintln(cmd.OutOrStdout(), "Delete cancelled.")
				return nil
			}

			a.logger.Info("item deleted", zap.String("sku", sku))
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", sku)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompt")
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	var (
		query    string
		category string
		matches  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List items, optionally filtered",
		Long: `List items in display order (newest first).

--query matches SKU, name, category and location, ignoring case.
--category keeps a single category.

Examples:
  toran list
  toran list -q fan -c Fans
  toran list -q s1 --matches
  toran list --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := types.ParseCategory(category)
			if err != nil {
				return NewValidationError("list items", "category", category,
					"Valid categories: Fans, Lights, Bells, Accessories")
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if matches {
				results := search.NewEngine(store).Search(search.Options{
					Query:           query,
					Category:        cat,
					EnableHighlight: true,
				})
				writeMatches(out, results)
				return nil
			}

			items := store.Filter(query, cat)
			a.logger.Debug("listed items", zap.String("query", query), zap.Int("count", len(items)))
			return a.format().Items(out, items)
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "free text to look for")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category to keep")
	cmd.Flags().BoolVarP(&matches, "matches", "m", false, "show which fields matched the query")
	return cmd
}

func writeMatches(w io.Writer, results []search.Result) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No items found.")
		return
	}
	for _, result := range results {
		fmt.Fprintf(w, "%s  %s\n", result.Item.SKU, result.Item.Name)
		for _, field := range result.MatchedFields {
			fmt.Fprintf(w, "    %-8s %s\n", field+":", result.Highlights[field])
		}
	}
}

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show inventory totals",
		Long: `Show the number of item types, the total units in stock and how many
items are low on stock (fewer than 5 units).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			return a.format().Stats(cmd.OutOrStdout(), store.Stats())
		},
	}
}
