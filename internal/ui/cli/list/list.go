package list

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mredig/fingerstring-mcp/internal/appState"
	"github.com/mredig/fingerstring-mcp/internal/domain"
	"github.com/mredig/fingerstring-mcp/internal/repository"
	"github.com/mredig/fingerstring-mcp/internal/tool"
	"github.com/mredig/fingerstring-mcp/internal/tools"
	"github.com/mredig/fingerstring-mcp/internal/ui/theme"
)

var (
	showAllFlag     bool
	forceFlag       bool
	titleFlag       string
	descriptionFlag string
)

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Manage lists",
}

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "Show every list",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := appState.Get().Store()
		if err != nil {
			return err
		}

		lists, err := store.AllLists(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load lists: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "Slug\tTitle\tCreated\tDescription")
		for _, list := range lists {
			description := ""
			if list.Description != nil {
				description = *list.Description
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				list.Slug,
				list.HeaderTitle(),
				list.CreatedAt.Format("2006-01-02"),
				description,
			)
		}
		return w.Flush()
	},
}

var createCmd = &cobra.Command{
	Use:   "create [slug]",
	Short: "Create a list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		arguments := tool.Arguments{"slug": args[0]}
		if titleFlag != "" {
			arguments["title"] = titleFlag
		}
		if descriptionFlag != "" {
			arguments["description"] = descriptionFlag
		}
		return callAndPrint(cmd, tools.ListCreate, arguments)
	},
}

var viewCmd = &cobra.Command{
	Use:   "view [slug]",
	Short: "Show a list and its tasks as a tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := appState.Get().Store()
		if err != nil {
			return err
		}

		tree, err := tools.ViewList(cmd.Context(), store, args[0], showAllFlag)
		if err != nil {
			return err
		}

		renderTree(cmd.OutOrStdout(), theme.DefaultTheme(), tree)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "rm [slug]",
	Short: "Delete a list and all its tasks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := appState.Get().Store()
		if err != nil {
			return err
		}

		list, count, err := topLevelTasks(cmd.Context(), store, args[0])
		if err != nil {
			return err
		}

		if !forceFlag {
			fmt.Printf("About to delete list %q with %d top level tasks.\n", list.HeaderTitle(), count)
			fmt.Print("Are you sure you want to delete this list? [y/N] ")
			response, _ := bufio.NewReader(os.Stdin).ReadString('\n')

			response = strings.ToLower(strings.TrimSpace(response))
			if response != "y" && response != "yes" {
				fmt.Println("Operation cancelled")
				return nil
			}
		}

		return callAndPrint(cmd, tools.ListDelete, tool.Arguments{"slug": args[0]})
	},
}

// topLevelTasks looks up a list and counts its top level tasks, completed
// ones included, without descending into subtasks.
func topLevelTasks(ctx context.Context, store repository.ListController, slug string) (*domain.List, int, error) {
	list, err := store.ListBySlug(ctx, slug)
	if err != nil {
		return nil, 0, err
	}

	cursor, err := store.StreamTasks(ctx, domain.ListParent(list.ID))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read tasks of %q: %w", slug, err)
	}
	defer cursor.Close()

	count := 0
	for cursor.Next(ctx) {
		count++
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read tasks of %q: %w", slug, err)
	}
	return list, count, nil
}

// callAndPrint runs a tool through the registry and prints its text output.
func callAndPrint(cmd *cobra.Command, name string, args tool.Arguments) error {
	registry, err := appState.Get().Registry()
	if err != nil {
		return err
	}

	result, err := registry.Call(cmd.Context(), name, args)
	if err != nil {
		return err
	}

	texts, err := result.ContentText()
	if err != nil {
		return err
	}
	for _, text := range texts {
		fmt.Fprintln(cmd.OutOrStdout(), text)
	}
	return nil
}

func init() {
	viewCmd.Flags().BoolVarP(&showAllFlag, "all", "a", false, "Include completed tasks")
	deleteCmd.Flags().BoolVarP(&forceFlag, "force", "f", false, "Delete without confirmation")
	createCmd.Flags().StringVarP(&titleFlag, "title", "t", "", "Human readable title")
	createCmd.Flags().StringVarP(&descriptionFlag, "description", "d", "", "Description of the list")

	ListCmd.AddCommand(lsCmd, createCmd, viewCmd, deleteCmd)
}
