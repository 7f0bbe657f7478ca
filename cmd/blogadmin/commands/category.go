package commands

import (
	"Blogicum/internal/api/dto"
	"Blogicum/internal/pkg/util"
	"Blogicum/internal/service"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	categoryTitle       string
	categoryDescription string
	categorySlug        string
	categoryHidden      bool
)

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage categories",
}

var categoryCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a category",
	Long: `Create a category. When --slug is omitted it is derived from the title.

Examples:
  blogadmin category create --title "Travel" --description "Trips and places"
  blogadmin category create --title "Путешествия" --description "..." --slug travel --hidden`,
	RunE: func(cmd *cobra.Command, args []string) error {
		published := !categoryHidden
		req := &dto.CategoryFormDTO{
			Title:       categoryTitle,
			Description: categoryDescription,
			Slug:        categorySlug,
			IsPublished: &published,
		}
		if err := util.ValidateDTO(req); err != nil {
			return fmt.Errorf("invalid category: %v", util.FieldErrors(err))
		}

		svc, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer svc.close()

		category, err := svc.categories.CreateCategory(commandContext(cmd), svc.viewer, req)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created category %d (%s)\n", category.ID, category.Slug)
		return nil
	},
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer svc.close()

		categories, err := svc.categories.ListAll(commandContext(cmd), svc.viewer)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "ID\tSLUG\tTITLE\tPUBLISHED")
		for _, c := range categories {
			_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%t\n", c.ID, c.Slug, c.Title, c.IsPublished)
		}
		return w.Flush()
	},
}

var categoryPublishCmd = &cobra.Command{
	Use:   "publish <slug>",
	Short: "Make a category and its posts publicly visible",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setCategoryPublished(cmd, args[0], true)
	},
}

var categoryHideCmd = &cobra.Command{
	Use:   "hide <slug>",
	Short: "Hide a category and every post in it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setCategoryPublished(cmd, args[0], false)
	},
}

var categoryDeleteCmd = &cobra.Command{
	Use:   "delete <slug>",
	Short: "Delete a category; its posts are kept without a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer svc.close()

		ctx := commandContext(cmd)
		categories, err := svc.categories.ListAll(ctx, svc.viewer)
		if err != nil {
			return err
		}
		for _, c := range categories {
			if c.Slug == args[0] {
				if err = svc.categories.DeleteCategory(ctx, svc.viewer, c.ID); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted category %s\n", c.Slug)
				return nil
			}
		}
		return service.ErrCategoryNotFound
	},
}

func setCategoryPublished(cmd *cobra.Command, slug string, published bool) error {
	svc, err := openServices(cmd)
	if err != nil {
		return err
	}
	defer svc.close()

	if err = svc.categories.SetPublished(commandContext(cmd), svc.viewer, slug, published); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "category %s published=%t\n", slug, published)
	return nil
}

func init() {
	categoryCreateCmd.Flags().StringVar(&categoryTitle, "title", "", "Category title")
	categoryCreateCmd.Flags().StringVar(&categoryDescription, "description", "", "Category description")
	categoryCreateCmd.Flags().StringVar(&categorySlug, "slug", "", "URL identifier (derived from the title when empty)")
	categoryCreateCmd.Flags().BoolVar(&categoryHidden, "hidden", false, "Create the category unpublished")
	_ = categoryCreateCmd.MarkFlagRequired("title")
	_ = categoryCreateCmd.MarkFlagRequired("description")

	categoryCmd.AddCommand(categoryCreateCmd, categoryListCmd, categoryPublishCmd, categoryHideCmd, categoryDeleteCmd)
	rootCmd.AddCommand(categoryCmd)
}
