package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/govassist/widget-agent/internal"
	"github.com/spf13/cobra"
)

var (
	// Styles
	userStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	botStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Italic(true)

	identityStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))
)

var runCmd = &cobra.Command{
	Use:   "run <url-or-file>",
	Short: "Attach the widget to a host page and chat",
	Long: `Attach the widget agent to a host page and open an interactive chat.

The persisted snapshot is restored first, identity detection runs only if
no identity was resolved in a prior session, and every exchange is
persisted for the next page load.

Commands inside the chat:
  /paste    attach an image from the clipboard to the next message
  /logout   clear the conversation and identity
  /quit     leave the chat (state is kept)`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, cfg, err := loadConfig()
		if err != nil {
			return err
		}

		store, err := internal.OpenStateStore(paths)
		if err != nil {
			return err
		}
		defer store.Close()

		page, err := loadPage(cmd, args[0])
		if err != nil {
			return err
		}

		channel := internal.NewMessageChannel(cfg.Endpoint, time.Duration(cfg.RequestTimeout))

		widget, err := internal.Mount(page, store, channel, cfg)
		if err != nil {
			return err
		}

		if err := channel.Health(cmd.Context()); err != nil {
			fmt.Println(infoStyle.Render("backend not ready; sends will fail until it comes up"))
			internal.LogDebug("health probe failed: %v", err)
		}

		if err := widget.Toggle(true); err != nil {
			return err
		}

		user, err := widget.DetectIdentity(cmd.Context())
		if err != nil {
			internal.LogWarn("failed to persist identity: %v", err)
		}
		fmt.Printf("%s %s\n", infoStyle.Render("signed in as:"), identityStyle.Render(user))

		// Replay the restored conversation
		for _, msg := range widget.Snapshot().Messages {
			printMessage(msg)
		}

		scanner := bufio.NewScanner(os.Stdin)
		fmt.Print(userStyle.Render("> "))
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			switch {
			case line == "/quit":
				return widget.Toggle(false)
			case line == "/logout":
				if err := widget.Logout(); err != nil {
					return err
				}
				fmt.Println(infoStyle.Render("conversation cleared; identity reset"))
			case line == "/paste":
				widget.PasteClipboard()
				if widget.Pending() {
					fmt.Println(infoStyle.Render("image attached to next message"))
				}
			case line == "":
				// Nothing typed
			default:
				if _, err := widget.Send(cmd.Context(), line); err != nil {
					fmt.Println(errorStyle.Render("⚠ Unable to reach the assistant. Please try again."))
				} else {
					msgs := widget.Snapshot().Messages
					printMessage(msgs[len(msgs)-1])
				}
			}
			fmt.Print(userStyle.Render("> "))
		}
		return widget.Toggle(false)
	},
}

// printMessage renders one persisted message for the terminal
func printMessage(msg internal.Message) {
	label := userStyle.Render("you")
	body := msg.Text
	if msg.Sender == internal.SenderBot {
		label = botStyle.Render("assistant")
	}
	if msg.Image != "" {
		body = "(image attachment) " + body
	}
	fmt.Printf("%s: %s\n", label, body)
}

func init() {
	rootCmd.AddCommand(runCmd)
}
