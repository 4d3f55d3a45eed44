package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vibe-coding/vibedocs/internal/chat"
)

var (
	chatPersona  string
	chatProvider string
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with an AI provider, optionally as a persona",
	Long: `Starts an interactive chat session. Commands:

  /persona <id>    switch persona (clears the conversation)
  /provider <id>   switch provider (clears the conversation)
  /reset           clear the conversation
  /quit            leave`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		s := a.chats.Create(chatPersona, chatProvider)
		printChatHeader(a, s)

		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("> ")
			if !scanner.Scan() {
				fmt.Println()
				return scanner.Err()
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}

			if strings.HasPrefix(line, "/") {
				name, arg, _ := strings.Cut(line, " ")
				arg = strings.TrimSpace(arg)
				switch name {
				case "/quit", "/exit":
					return nil
				case "/reset":
					s.Reset()
					fmt.Println("Conversation cleared.")
				case "/persona":
					if !s.SelectPersona(arg) {
						fmt.Printf("Unknown persona %q.\n", arg)
						continue
					}
					printChatHeader(a, s)
				case "/provider":
					if !s.SelectProvider(arg) {
						fmt.Printf("Unknown provider %q.\n", arg)
						continue
					}
					printChatHeader(a, s)
				default:
					fmt.Printf("Unknown command %s.\n", name)
				}
				continue
			}

			reply, err := s.Send(cmd.Context(), line)
			if errors.Is(err, chat.ErrSuperseded) {
				continue
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				continue
			}
			fmt.Printf("\n%s\n\n", reply.Content)
		}
	},
}

func printChatHeader(a *app, s *chat.Session) {
	st := s.State()
	d, _ := a.providers.Get(st.ProviderID)
	fmt.Printf("Chatting with %s", d.Name)
	if d.SelectedModel != "" {
		fmt.Printf(" (%s)", d.SelectedModel)
	}
	if st.PersonaID != "" {
		if p, err := a.catalog.Persona(st.PersonaID); err == nil {
			fmt.Printf(" as %s %s", p.Avatar, p.Name)
		}
	}
	fmt.Println(". Type /quit to leave.")
}

func init() {
	chatCmd.Flags().StringVar(&chatPersona, "persona", "", "Persona id")
	chatCmd.Flags().StringVar(&chatProvider, "provider", "", "Provider id (default: the active provider)")
	rootCmd.AddCommand(chatCmd)
}
