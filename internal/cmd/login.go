package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/conciergeelvirad/ELVIRA-sub003/internal/api"
	"github.com/conciergeelvirad/ELVIRA-sub003/internal/config"
	"github.com/conciergeelvirad/ELVIRA-sub003/internal/crud"
	"github.com/conciergeelvirad/ELVIRA-sub003/internal/hotel"
)

const loginTimeout = 10 * time.Second

// RunInteractiveLogin prompts for the backend, API key and hotel, checks
// that the key can read the hotel's guests, and persists config.
func RunInteractiveLogin(ctx context.Context, in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)
	prompt := func(label string) string {
		fmt.Fprint(out, label)
		line, _ := reader.ReadString('\n')
		return strings.TrimSpace(line)
	}

	baseURL := prompt(fmt.Sprintf("server [%s]: ", api.DefaultBaseURL))
	if baseURL == "" {
		baseURL = api.DefaultBaseURL
	}
	apiKey := prompt("api key: ")
	if apiKey == "" {
		return fmt.Errorf("api key is required")
	}
	hotelID := prompt("hotel id: ")
	if hotelID == "" {
		return fmt.Errorf("hotel id is required")
	}
	username := prompt("your name (optional): ")

	ctx, cancel := context.WithTimeout(ctx, loginTimeout)
	defer cancel()

	client := api.NewClient(baseURL, apiKey)
	if _, err := client.Health(ctx); err != nil {
		return fmt.Errorf("server unreachable: %w", err)
	}
	if _, err := api.NewTable[crud.Record](client, hotel.TableGuests, hotelID).List(ctx, ""); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	cfg := &config.Config{
		APIKey:   apiKey,
		HotelID:  hotelID,
		Username: username,
		Theme:    "dark",
		VimKeys:  true,
	}
	if baseURL != api.DefaultBaseURL {
		cfg.BaseURL = baseURL
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Fprintf(out, "logged in to hotel %s\n", hotelID)
	fmt.Fprintf(out, "config saved to %s\n", config.Path())
	return nil
}

// LoginCmd returns the `elvira login` command.
func LoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Connect the dashboard to a hotel backend",
		RunE: func(c *cobra.Command, _ []string) error {
			return RunInteractiveLogin(c.Context(), os.Stdin, c.OutOrStdout())
		},
	}
}
