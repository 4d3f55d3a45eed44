package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vibe-coding/vibedocs/internal/catalog"
	"github.com/vibe-coding/vibedocs/internal/docs"
)

var (
	searchType       string
	searchDifficulty string
	searchCategory   string
	recentClear      bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Fuzzy search snippets, tutorials and FAQs",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		query := strings.Join(args, " ")
		results, err := a.docs.Search(cmd.Context(), query)
		if err != nil {
			return err
		}
		results = docs.FilterResults(results, docs.Filter{
			Type:       docs.ResultType(searchType),
			Difficulty: catalog.Difficulty(searchDifficulty),
			Category:   searchCategory,
		})

		if len(results) == 0 {
			fmt.Printf("No results for %q.\n", query)
			return nil
		}
		fmt.Printf("%d result(s) for %q:\n\n", len(results), query)
		for _, r := range results {
			meta := r.Category()
			if d := r.Difficulty(); d != "" {
				meta += ", " + string(d)
			}
			fmt.Printf("  [%-8s %3s] %s (%s)  score %.2f\n", r.Kind, r.ID, r.Title(), meta, r.Score)
		}
		return nil
	},
}

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Show or clear recent searches",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		if recentClear {
			if err := a.docs.ClearRecentSearches(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("Recent searches cleared.")
			return nil
		}

		recent := a.docs.RecentSearches()
		if len(recent) == 0 {
			fmt.Println("No recent searches.")
			return nil
		}
		for i, q := range recent {
			fmt.Printf("%2d. %s\n", i+1, q)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchType, "type", "all", "Result type: all, snippets, tutorials, faqs")
	searchCmd.Flags().StringVar(&searchDifficulty, "difficulty", "all", "Difficulty: all, Beginner, Intermediate, Advanced")
	searchCmd.Flags().StringVar(&searchCategory, "category", "all", "Category name")
	recentCmd.Flags().BoolVar(&recentClear, "clear", false, "Clear the recent-search history")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(recentCmd)
}
