package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cinenz0/finance-tracker/internal/cli"
	"github.com/cinenz0/finance-tracker/internal/model"
)

func tagsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Manage transaction tags",
	}

	cmd.AddCommand(listTagsCmd())
	cmd.AddCommand(addTagCmd())
	cmd.AddCommand(updateTagCmd())
	cmd.AddCommand(deleteTagCmd())

	return cmd
}

func listTagsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tags",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			kv, registry, err := openRegistry(ctx)
			if err != nil {
				return err
			}
			defer kv.Close()

			groups := make(map[string]string)
			for _, g := range registry.BudgetGroups() {
				groups[g.ID] = g.Name
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintln(w, "ID\tNAME\tCOLOR\tGROUP")
			for _, tag := range registry.Tags() {
				group := "-"
				if tag.GroupID != "" {
					group = groups[tag.GroupID]
					if group == "" {
						group = tag.GroupID
					}
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", tag.ID, tag.Name, tag.Color, group)
			}
			return nil
		},
	}
}

func addTagCmd() *cobra.Command {
	var (
		color string
		group string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			kv, registry, err := openRegistry(ctx)
			if err != nil {
				return err
			}
			defer kv.Close()

			tag, err := registry.AddTag(ctx, args[0], color, group)
			if err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added tag %q", tag.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", "default", "palette key or hex color")
	cmd.Flags().StringVar(&group, "group", "", "budget group id")

	return cmd
}

func updateTagCmd() *cobra.Command {
	var (
		name  string
		color string
		group string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			kv, registry, err := openRegistry(ctx)
			if err != nil {
				return err
			}
			defer kv.Close()

			var patch model.TagPatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("color") {
				patch.Color = &color
			}
			if cmd.Flags().Changed("group") {
				// An explicit empty value detaches the tag from its group.
				ptr := &group
				if group == "" {
					ptr = nil
				}
				patch.GroupID = &ptr
			}

			tag, err := registry.UpdateTag(ctx, args[0], patch)
			if err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated tag %q", tag.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&color, "color", "", "palette key or hex color")
	cmd.Flags().StringVar(&group, "group", "", "budget group id (empty to detach)")

	return cmd
}

func deleteTagCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			kv, registry, err := openRegistry(ctx)
			if err != nil {
				return err
			}
			defer kv.Close()

			registry.DeleteTag(ctx, args[0])
			fmt.Println(cli.FormatSuccess("Deleted (if it existed)"))
			return nil
		},
	}
}
