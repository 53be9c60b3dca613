package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/toran/chat"
)

func newChatCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat [message...]",
		Short: "Talk to the demo assistant",
		Long: `Send messages to the demo assistant. It answers every message with the
same canned reply after a short delay (chat-delay, 600ms by default).

With arguments the message is sent once and the reply printed. Without
arguments a prompt reads one message per line until "exit" or end of input.

Examples:
  toran chat "Do we have ceiling fans in stock?"
  TORAN_CHAT_DELAY=0s toran chat`,
		RunE: func(cmd *cobra.Command, args []string) error {
			conversation := chat.New(
				chat.WithDelay(a.cfg.ChatDelay),
				chat.WithLogger(a.logger.Named("chat")),
			)
			defer conversation.Close()

			out := cmd.OutOrStdout()
			if len(args) > 0 {
				return exchange(cmd, conversation, strings.Join(args, " "), out)
			}

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for {
				fmt.Fprint(out, "> ")
				if !scanner.Scan() {
					fmt.Fprintln(out)
					return scanner.Err()
				}
				line := scanner.Text()
				switch strings.TrimSpace(line) {
				case "":
					continue
				case "exit", "quit":
					return nil
				}
				if err := exchange(cmd, conversation, line, out); err != nil {
					return err
				}
			}
		},
	}
	return cmd
}

// exchange sends text and prints the reply once it arrives
func exchange(cmd *cobra.Command, conversation *chat.Conversation, text string, out io.Writer) error {
	if _, err := conversation.Send(text); err != nil {
		return &CLIError{
			Operation:   "send message",
			Cause:       err.Error(),
			Suggestions: []string{"Type a message with some text"},
			Underlying:  err,
		}
	}
	if err := conversation.Wait(cmd.Context()); err != nil {
		return err
	}

	messages := conversation.Messages()
	reply := messages[len(messages)-1]
	fmt.Fprintf(out, "%s: %s\n", reply.Who, reply.Text)
	return nil
}
