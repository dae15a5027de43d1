package tools

import (
	"context"
	"fmt"

	"github.com/mredig/fingerstring-mcp/internal/domain"
	"github.com/mredig/fingerstring-mcp/internal/repository"
	"github.com/mredig/fingerstring-mcp/internal/schema"
	"github.com/mredig/fingerstring-mcp/internal/tool"
)

// ListSummary is one entry of fingerstring-list-all.
type ListSummary struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
}

// ListTree is the output of fingerstring-list-view.
type ListTree struct {
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Tasks       []TaskNode `json:"tasks"`
}

// ViewList loads the list with slug and its task tree.
func ViewList(ctx context.Context, store repository.ListController, slug string, showCompleted bool) (*ListTree, error) {
	list, err := tool.Wrap(tool.ErrorFrom, func() (*domain.List, error) {
		return store.ListBySlug(ctx, slug)
	})
	if err != nil {
		return nil, err
	}

	tasks, err := BuildTree(ctx, store, domain.ListParent(list.ID), showCompleted)
	if err != nil {
		return nil, err
	}

	return &ListTree{
		Title:       list.HeaderTitle(),
		Description: list.Description,
		Tasks:       tasks,
	}, nil
}

type listAll struct {
	store               repository.ListController
	includeDescriptions bool
}

func listAllSpec(store repository.ListController) tool.Spec {
	return tool.Spec{
		Name:        ListAll,
		Description: "FingerString: Lists all the stored lists.",
		Schema: schema.Properties{
			"includeDescriptions": schema.Boolean{
				Description: "Whether or not to output additional description context with the lists, when they contain anything",
				Default:     schema.Ptr(false),
			},
		},
		OutputType:  ListSummary{},
		Annotations: tool.Annotations{ReadOnly: true, Idempotent: true},
		New: func(args tool.Arguments) (tool.Tool, error) {
			return &listAll{
				store:               store,
				includeDescriptions: args.BoolOr("includeDescriptions", false),
			}, nil
		},
	}
}

func (t *listAll) Call(ctx context.Context) (*tool.Result, error) {
	lists, err := tool.Wrap(tool.ErrorFrom, func() ([]domain.List, error) {
		return t.store.AllLists(ctx)
	})
	if err != nil {
		return nil, err
	}

	items := make([]any, 0, len(lists))
	for _, list := range lists {
		summary := ListSummary{Title: list.HeaderTitle()}
		if t.includeDescriptions {
			summary.Description = list.Description
		}
		items = append(items, summary)
	}
	return tool.Output(ListAll, nil, items...), nil
}

type listCreate struct {
	store       repository.ListController
	slug        string
	title       *string
	description *string
}

var slugField = schema.String{
	Description: "Slug for the list (alphanumeric, dots, dashes, underscores)",
	Required:    true,
	Pattern:     `^[A-Za-z0-9._-]+$`,
}

func listCreateSpec(store repository.ListController) tool.Spec {
	return tool.Spec{
		Name:        ListCreate,
		Description: "FingerString: Creates a list of reminders or tasks",
		Schema: schema.Properties{
			"slug":        slugField,
			"title":       schema.String{Description: "Friendly, human readable title for the list"},
			"description": schema.String{Description: "Description for the list"},
		},
		New: func(args tool.Arguments) (tool.Tool, error) {
			slug, err := args.RequireConforming("slug", slugField)
			if err != nil {
				return nil, err
			}
			return &listCreate{
				store:       store,
				slug:        slug,
				title:       args.OptionalString("title"),
				description: args.OptionalString("description"),
			}, nil
		},
	}
}

func (t *listCreate) Call(ctx context.Context) (*tool.Result, error) {
	list, err := tool.Wrap(tool.ErrorFrom, func() (*domain.List, error) {
		return t.store.CreateList(ctx, domain.NewList{
			Slug:        t.slug,
			Title:       t.title,
			Description: t.description,
		})
	})
	if err != nil {
		return nil, err
	}
	return tool.Output(request(ListCreate, t.slug), nil,
		fmt.Sprintf("Created list with slug '%s'", list.Slug)), nil
}

type listDelete struct {
	store repository.ListController
	slug  string
}

func listDeleteSpec(store repository.ListController) tool.Spec {
	return tool.Spec{
		Name:        ListDelete,
		Description: "FingerString: Deletes a list by slug, along with all of its tasks",
		Schema: schema.Properties{
			"slug": schema.String{Description: "Slug of the list to delete", Required: true},
		},
		Annotations: tool.Annotations{Destructive: true},
		New: func(args tool.Arguments) (tool.Tool, error) {
			slug, err := args.RequireString("slug")
			if err != nil {
				return nil, err
			}
			return &listDelete{store: store, slug: slug}, nil
		},
	}
}

func (t *listDelete) Call(ctx context.Context) (*tool.Result, error) {
	list, err := tool.Wrap(tool.ErrorFrom, func() (*domain.List, error) {
		return t.store.ListBySlug(ctx, t.slug)
	})
	if err != nil {
		return nil, err
	}

	err = tool.WrapErr(tool.ErrorFrom, func() error {
		return t.store.DeleteList(ctx, list.ID)
	})
	if err != nil {
		return nil, err
	}
	return tool.Output(request(ListDelete, t.slug), nil,
		fmt.Sprintf("Deleted list '%s'", list.HeaderTitle())), nil
}

type listView struct {
	store              repository.ListController
	slug               string
	showCompletedTasks bool
}

func listViewSpec(store repository.ListController) tool.Spec {
	return tool.Spec{
		Name:        ListView,
		Description: "FingerString: View a list and its items",
		Schema: schema.Properties{
			"slug": schema.String{Description: "Slug of the list to view", Required: true},
			"showCompletedTasks": schema.Boolean{
				Description: "Whether to show completed tasks",
				Default:     schema.Ptr(false),
			},
		},
		OutputType:  ListTree{},
		Annotations: tool.Annotations{ReadOnly: true, Idempotent: true},
		New: func(args tool.Arguments) (tool.Tool, error) {
			slug, err := args.RequireString("slug")
			if err != nil {
				return nil, err
			}
			return &listView{
				store:              store,
				slug:               slug,
				showCompletedTasks: args.BoolOr("showCompletedTasks", false),
			}, nil
		},
	}
}

func (t *listView) Call(ctx context.Context) (*tool.Result, error) {
	tree, err := ViewList(ctx, t.store, t.slug, t.showCompletedTasks)
	if err != nil {
		return nil, err
	}
	return tool.Output(request(ListView, t.slug), nil, tree), nil
}
