package cmd

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/vibe-coding/vibedocs/internal/providers"
)

var (
	providerEndpoint string
	providerAPIKey   string
	providerModel    string
)

var providerCmd = &cobra.Command{
	Use:     "provider",
	Aliases: []string{"providers"},
	Short:   "Manage AI chat providers",
}

var providerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List providers and their connection state",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		active := a.providers.Active().ID
		for _, d := range a.providers.List() {
			marker := " "
			if d.ID == active {
				marker = "*"
			}
			state := "disconnected"
			if d.Connected {
				state = "connected"
			}
			fmt.Printf("%s %-10s %-16s %-13s %s\n", marker, d.ID, d.Name, state, d.SelectedModel)
		}
		return nil
	},
}

var providerUseCmd = &cobra.Command{
	Use:   "use <id>",
	Short: "Show the provider that chat and MCP sends default to",
	Long: `Selects the active provider for this invocation and prints it. The
active provider is not persisted: at start-up it is the first connected
provider other than the built-in one, so connect a provider with
"provider test" to make it the default.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		if !a.providers.Select(args[0]) {
			return fmt.Errorf("%w: %s", providers.ErrNotFound, args[0])
		}
		d := a.providers.Active()
		fmt.Printf("Active provider: %s (%s)\n", d.Name, d.ID)
		if !d.Connected {
			fmt.Printf("Not connected yet. Run `vibedocs provider test %s`.\n", d.ID)
		}
		return nil
	},
}

var providerConfigureCmd = &cobra.Command{
	Use:   "configure <id>",
	Short: "Set a provider's endpoint, API key or model",
	Long: `Updates the stored configuration of a provider. Without flags the
values are prompted for interactively.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		if !a.providers.OpenConfig(args[0]) {
			return fmt.Errorf("%w: %s", providers.ErrNotFound, args[0])
		}
		defer a.providers.CloseConfig()
		d, _ := a.providers.ConfigTarget()
		if !d.Configurable {
			return fmt.Errorf("%s cannot be configured", d.Name)
		}

		var patch providers.Patch
		flags := cmd.Flags()
		if flags.Changed("endpoint") || flags.Changed("api-key") || flags.Changed("model") {
			if flags.Changed("endpoint") {
				patch.Endpoint = &providerEndpoint
			}
			if flags.Changed("api-key") {
				patch.APIKey = &providerAPIKey
			}
			if flags.Changed("model") {
				patch.SelectedModel = &providerModel
			}
		} else if patch, err = promptProviderPatch(d); err != nil {
			return err
		}

		if err := a.providers.Update(cmd.Context(), d.ID, patch); err != nil {
			return err
		}
		fmt.Printf("%s configuration saved.\n", d.Name)
		return nil
	},
}

func promptProviderPatch(d providers.Descriptor) (providers.Patch, error) {
	var patch providers.Patch

	endpointPrompt := promptui.Prompt{Label: "Endpoint", Default: d.Endpoint}
	endpoint, err := endpointPrompt.Run()
	if err != nil {
		return patch, fmt.Errorf("endpoint: %w", err)
	}
	patch.Endpoint = &endpoint

	if d.Backend.Kind() == providers.KindSimulated {
		keyPrompt := promptui.Prompt{Label: "API key", Mask: '*'}
		key, err := keyPrompt.Run()
		if err != nil {
			return patch, fmt.Errorf("API key: %w", err)
		}
		if key != "" {
			patch.APIKey = &key
		}
	}

	if len(d.Models) > 0 {
		modelPrompt := promptui.Select{Label: "Model", Items: d.Models}
		_, model, err := modelPrompt.Run()
		if err != nil {
			return patch, fmt.Errorf("model selection: %w", err)
		}
		patch.SelectedModel = &model
	}
	return patch, nil
}

var providerTestCmd = &cobra.Command{
	Use:   "test <id>",
	Short: "Test the connection to a provider",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.providers.TestConnection(cmd.Context(), args[0])
		if errors.Is(err, providers.ErrMissingCredential) {
			return fmt.Errorf("%w: run `vibedocs provider configure %s --api-key ...`", err, args[0])
		}
		if err != nil {
			return err
		}
		fmt.Println(res.Message)
		if res.Notice != "" {
			fmt.Println(res.Notice)
		}
		for _, m := range res.Models {
			fmt.Printf("  - %s\n", m)
		}
		return nil
	},
}

func init() {
	providerConfigureCmd.Flags().StringVar(&providerEndpoint, "endpoint", "", "Chat endpoint URL")
	providerConfigureCmd.Flags().StringVar(&providerAPIKey, "api-key", "", "API key")
	providerConfigureCmd.Flags().StringVar(&providerModel, "model", "", "Selected model")

	rootCmd.AddCommand(providerCmd)
	providerCmd.AddCommand(providerListCmd, providerUseCmd, providerConfigureCmd, providerTestCmd)
}
