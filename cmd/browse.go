package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vibe-coding/vibedocs/internal/catalog"
	"github.com/vibe-coding/vibedocs/internal/feedback"
	"github.com/vibe-coding/vibedocs/internal/render"
)

// The browse commands share flag names, so those values are read per
// command with flagValue.
var (
	snippetsSaved bool
	snippetSave   bool
	snippetUnsave bool
	personaAsk    string
)

var snippetsCmd = &cobra.Command{
	Use:   "snippets [id]",
	Short: "List code snippets, or show one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()
		ctx := cmd.Context()

		if len(args) == 1 {
			id := args[0]
			switch {
			case snippetSave:
				s, err := a.docs.SaveSnippet(ctx, id)
				if err != nil {
					return err
				}
				fmt.Printf("Saved %q.\n", s.Title)
				return nil
			case snippetUnsave:
				if err := a.docs.RemoveSavedSnippet(ctx, id); err != nil {
					return err
				}
				fmt.Printf("Removed snippet %s from saved.\n", id)
				return nil
			}
			s, err := a.catalog.Snippet(id)
			if err != nil {
				return err
			}
			fmt.Print(render.SnippetMarkdown(s))
			return nil
		}

		if snippetsSaved {
			saved := a.docs.SavedSnippets()
			if len(saved) == 0 {
				fmt.Println("No saved snippets.")
				return nil
			}
			for _, s := range saved {
				fmt.Printf("  %3s  %-32s saved %s\n", s.ID, s.Title, s.SavedAt.Local().Format("2006-01-02 15:04"))
			}
			return nil
		}

		for _, s := range a.catalog.ListSnippets(listOptions(cmd)) {
			mark := " "
			if a.docs.IsSaved(s.ID) {
				mark = "*"
			}
			fmt.Printf("%s %3s  %-32s %-12s %-12s %d likes\n", mark, s.ID, s.Title, s.Category, s.Difficulty, s.Likes)
		}
		return nil
	},
}

var tutorialsCmd = &cobra.Command{
	Use:   "tutorials [id]",
	Short: "List tutorials, or show one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		if len(args) == 1 {
			t, err := a.catalog.Tutorial(args[0])
			if err != nil {
				return err
			}
			fmt.Print(render.TutorialMarkdown(t))
			return nil
		}
		for _, t := range a.catalog.ListTutorials(listOptions(cmd)) {
			fmt.Printf("  %3s  %-36s %-12s %-12s %s\n", t.ID, t.Title, t.Category, t.Difficulty, t.Duration)
		}
		return nil
	},
}

var faqsCmd = &cobra.Command{
	Use:   "faqs",
	Short: "List frequently asked questions",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		for _, f := range a.catalog.ListFAQs(catalog.FAQOptions{
			Query:    flagValue(cmd, "query"),
			Category: flagValue(cmd, "category"),
			Sort:     catalog.SortOrder(flagValue(cmd, "sort")),
		}) {
			tally, err := a.feedback.Tally(f.ID)
			if err != nil {
				return err
			}
			fmt.Printf("Q%s. %s\n    %s\n    (%s, %d found this helpful, %d views)\n\n", f.ID, f.Question, f.Answer, f.Category, tally.Helpful, f.Views)
		}
		return nil
	},
}

var faqsVoteCmd = &cobra.Command{
	Use:   "vote <id> <helpful|not_helpful|clear>",
	Short: "Rate an FAQ (requires sign-in)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		var tally feedback.Tally
		if args[1] == "clear" {
			tally, err = a.feedback.Clear(cmd.Context(), args[0])
		} else {
			tally, err = a.feedback.Cast(cmd.Context(), args[0], feedback.Vote(args[1]))
		}
		if err != nil {
			return err
		}
		vote := string(tally.Vote)
		if vote == "" {
			vote = "none"
		}
		fmt.Printf("FAQ %s: %d found this helpful (your vote: %s)\n", tally.FAQID, tally.Helpful, vote)
		return nil
	},
}

var glossaryCmd = &cobra.Command{
	Use:   "glossary",
	Short: "List glossary terms",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		for _, t := range a.catalog.ListGlossary(catalog.GlossaryOptions{
			Query:    flagValue(cmd, "query"),
			Category: flagValue(cmd, "category"),
			Letter:   flagValue(cmd, "letter"),
		}) {
			fmt.Printf("%s [%s]\n    %s\n", t.Term, t.Category, t.Definition)
			if len(t.RelatedTerms) > 0 {
				fmt.Printf("    Related: %s\n", strings.Join(t.RelatedTerms, ", "))
			}
			fmt.Println()
		}
		return nil
	},
}

var personasCmd = &cobra.Command{
	Use:   "personas [id]",
	Short: "List AI personas, or ask one a question with --ask",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		if len(args) == 0 {
			for _, p := range a.catalog.Personas {
				fmt.Printf("%s %-18s %s\n    %s\n", p.Avatar, p.ID, p.Name, strings.Join(p.Specialties, ", "))
			}
			return nil
		}

		if personaAsk == "" {
			p, err := a.catalog.Persona(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s %s\n%s\nSpecialties: %s\nPersonality: %s\nStyle: %s\n",
				p.Avatar, p.Name, p.Description, strings.Join(p.Specialties, ", "), p.Personality, p.ResponseStyle)
			return nil
		}

		answer, err := a.docs.PersonaResponse(cmd.Context(), args[0], personaAsk)
		if err != nil {
			return err
		}
		fmt.Println(answer)
		return nil
	},
}

func flagValue(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}

func listOptions(cmd *cobra.Command) catalog.ListOptions {
	return catalog.ListOptions{
		Category: flagValue(cmd, "category"),
		Sort:     catalog.SortOrder(flagValue(cmd, "sort")),
	}
}

func init() {
	for _, c := range []*cobra.Command{snippetsCmd, tutorialsCmd, faqsCmd, glossaryCmd} {
		c.Flags().String("category", "all", "Filter by category")
	}
	for _, c := range []*cobra.Command{snippetsCmd, tutorialsCmd} {
		c.Flags().String("sort", "recent", "Sort order: recent, popular, difficulty")
	}
	faqsCmd.Flags().String("sort", "helpful", "Sort order: helpful, views")
	for _, c := range []*cobra.Command{faqsCmd, glossaryCmd} {
		c.Flags().StringP("query", "q", "", "Filter by text")
	}
	glossaryCmd.Flags().String("letter", "all", "Filter by first letter")
	snippetsCmd.Flags().BoolVar(&snippetsSaved, "saved", false, "List saved snippets")
	snippetsCmd.Flags().BoolVar(&snippetSave, "save", false, "Save the given snippet")
	snippetsCmd.Flags().BoolVar(&snippetUnsave, "unsave", false, "Remove the given snippet from saved")
	personasCmd.Flags().StringVar(&personaAsk, "ask", "", "Question for the persona")

	faqsCmd.AddCommand(faqsVoteCmd)
	rootCmd.AddCommand(snippetsCmd, tutorialsCmd, faqsCmd, glossaryCmd, personasCmd)
}
