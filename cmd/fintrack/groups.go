package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cinenz0/finance-tracker/internal/cli"
	"github.com/cinenz0/finance-tracker/internal/model"
)

func groupsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "groups",
		Short: "Manage budget groups",
	}

	cmd.AddCommand(listGroupsCmd())
	cmd.AddCommand(addGroupCmd())
	cmd.AddCommand(updateGroupCmd())
	cmd.AddCommand(deleteGroupCmd())

	return cmd
}

func listGroupsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List budget groups with their tags",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			kv, registry, err := openRegistry(ctx)
			if err != nil {
				return err
			}
			defer kv.Close()

			groups := registry.BudgetGroups()
			if len(groups) == 0 {
				fmt.Println(cli.InfoStyle.Render("No budget groups yet. Use 'fintrack groups add'."))
				return nil
			}

			tagsByGroup := make(map[string][]string)
			for _, tag := range registry.Tags() {
				if tag.GroupID != "" {
					tagsByGroup[tag.GroupID] = append(tagsByGroup[tag.GroupID], tag.Name)
				}
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintln(w, "ID\tNAME\tLIMIT\tCOLOR\tTAGS")
			for _, g := range groups {
				limit := "-"
				if g.Limit > 0 {
					limit = fmt.Sprintf("%.2f", g.Limit)
				}
				tags := "-"
				if names := tagsByGroup[g.ID]; len(names) > 0 {
					tags = ""
					for i, n := range names {
						if i > 0 {
							tags += ", "
						}
						tags += n
					}
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", shortID(g.ID), g.Name, limit, g.Color, tags)
			}
			return nil
		},
	}
}

func addGroupCmd() *cobra.Command {
	var (
		limit string
		color string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a budget group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			kv, registry, err := openRegistry(ctx)
			if err != nil {
				return err
			}
			defer kv.Close()

			group, err := registry.AddBudgetGroup(ctx, args[0], limit, color)
			if err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added budget group %q", group.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&limit, "limit", "", "monthly spending limit")
	cmd.Flags().StringVar(&color, "color", "default", "palette key or hex color")

	return cmd
}

func updateGroupCmd() *cobra.Command {
	var (
		name  string
		limit string
		color string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a budget group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			kv, registry, err := openRegistry(ctx)
			if err != nil {
				return err
			}
			defer kv.Close()

			var patch model.BudgetGroupPatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("limit") {
				value, err := strconv.ParseFloat(limit, 64)
				if err != nil {
					return fmt.Errorf("invalid limit %q: %w", limit, err)
				}
				patch.Limit = &value
			}
			if cmd.Flags().Changed("color") {
				patch.Color = &color
			}

			group, err := registry.UpdateBudgetGroup(ctx, resolveGroupID(registry.BudgetGroups(), args[0]), patch)
			if err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated budget group %q", group.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&limit, "limit", "", "monthly spending limit (0 clears)")
	cmd.Flags().StringVar(&color, "color", "", "palette key or hex color")

	return cmd
}

func deleteGroupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a budget group and detach its tags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			kv, registry, err := openRegistry(ctx)
			if err != nil {
				return err
			}
			defer kv.Close()

			registry.DeleteBudgetGroup(ctx, resolveGroupID(registry.BudgetGroups(), args[0]))
			fmt.Println(cli.FormatSuccess("Deleted (if it existed)"))
			return nil
		},
	}
}

func resolveGroupID(groups []model.BudgetGroup, prefix string) string {
	var match string
	for _, g := range groups {
		if g.ID == prefix {
			return g.ID
		}
		if len(prefix) >= 4 && len(g.ID) >= len(prefix) && g.ID[:len(prefix)] == prefix {
			if match != "" {
				return prefix
			}
			match = g.ID
		}
	}
	if match == "" {
		return prefix
	}
	return match
}
