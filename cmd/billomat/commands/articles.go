package commands

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/billomat/internal/constants"
	"github.com/fivetwenty-io/billomat/pkg/billomat"
)

// NewArticlesCommand creates the articles command group.
func NewArticlesCommand(rt *Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "articles",
		Aliases: []string{"article"},
		Short:   "Browse articles",
		Long:    "List and show the articles of the account",
	}

	cmd.AddCommand(newArticlesListCommand(rt))
	cmd.AddCommand(newArticlesGetCommand(rt))

	return cmd
}

func newArticlesListCommand(rt *Runtime) *cobra.Command {
	var (
		title  string
		number string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List articles",
		Long:  "List every article matching the filters, fetching all pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := billomat.NewArticleFilter()
			if title != "" {
				filter.ByTitle(title)
			}

			if number != "" {
				filter.ByArticleNumber(number)
			}

			api, err := rt.API()
			if err != nil {
				return err
			}

			var articles []billomat.Article

			err = rt.Retry(cmd.Context(), func() error {
				articles, err = api.Articles().All(cmd.Context(), filter)

				return err
			})
			if err != nil {
				return fmt.Errorf("failed to list articles: %w", err)
			}

			if len(articles) == 0 && rt.Output() == constants.FormatTable {
				rt.Printf("No articles found\n")

				return nil
			}

			if articles == nil {
				articles = []billomat.Article{}
			}

			return rt.Render(articles, func(table *tablewriter.Table) {
				table.Header("ID", "Number", "Title", "Type", "Sales Price")

				for _, article := range articles {
					_ = table.Append(
						formatInt(article.ID),
						cell(article.ArticleNumber),
						cell(article.Title),
						cell(string(article.Type)),
						cell(formatPrice(article.SalesPrice, article.CurrencyCode)),
					)
				}
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "filter by title")
	cmd.Flags().StringVar(&number, "number", "", "filter by article number")

	return cmd
}

func newArticlesGetCommand(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "get ARTICLE_ID",
		Short: "Get article details",
		Long:  "Display detailed information about an article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			api, err := rt.API()
			if err != nil {
				return err
			}

			var (
				article *billomat.Article
				found   bool
			)

			err = rt.Retry(cmd.Context(), func() error {
				article, found, err = api.Articles().Get(cmd.Context(), id)

				return err
			})
			if err != nil {
				return fmt.Errorf("failed to get article: %w", err)
			}

			if !found {
				return fmt.Errorf("article %d: %w", id, constants.ErrNotFound)
			}

			return rt.RenderProperties(article, [][2]string{
				{"ID", formatInt(article.ID)},
				{"Number", article.ArticleNumber},
				{"Title", article.Title},
				{"Description", article.Description},
				{"Type", string(article.Type)},
				{"Sales Price", formatPrice(article.SalesPrice, article.CurrencyCode)},
				{"Unit", formatInt(article.UnitID)},
				{"Archived", yesNo(article.Archived)},
				{"Created", formatTime(article.Created)},
			})
		},
	}
}

func formatPrice(value *float64, currency string) string {
	if value == nil {
		return ""
	}

	return formatAmount(*value, currency)
}
