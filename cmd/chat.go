package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sathvik70004-cmyk/mindfulmate/internal/chat"
	"github.com/sathvik70004-cmyk/mindfulmate/internal/config"
	"github.com/sathvik70004-cmyk/mindfulmate/internal/output"
)

// chatCmd represents the chat command.
var chatCmd = &cobra.Command{
	Use:     "chat [MESSAGE]",
	Aliases: []string{"c", "talk"},
	Short:   "Talk to your support companion",
	Long: `Talk to the MindfulMate support companion.

With a message argument, sends a single message and prints the reply.
Without arguments, opens an interactive session; type 'quit' to leave.

Requires MINDFULMATE_API_KEY to be set.

Examples:
  mindfulmate chat "I'm feeling overwhelmed with coursework"
  mindfulmate chat`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChat,
}

// chatHistoryCmd shows the stored transcript.
var chatHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the stored conversation",
	RunE:  runChatHistory,
}

// chatClearCmd clears the stored transcript.
var chatClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the stored conversation",
	RunE:  runChatClear,
}

func init() {
	chatCmd.AddCommand(chatHistoryCmd)
	chatCmd.AddCommand(chatClearCmd)
	rootCmd.AddCommand(chatCmd)
}

func newChatService() (*chat.Service, error) {
	client, err := chat.NewClient()
	if err != nil {
		return nil, err
	}
	return chat.NewService(client, ctx.HistoryRepo), nil
}

func runChat(cmd *cobra.Command, args []string) error {
	service, err := newChatService()
	if err != nil {
		return err
	}

	if len(args) > 0 {
		return chatOnce(service, args[0])
	}

	return chatInteractive(service)
}

// chatOnce sends a single message and prints the reply.
func chatOnce(service *chat.Service, text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("message is empty")
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), config.Global.Chat.Timeout)
	defer cancel()

	reply := service.Send(reqCtx, text)

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(output.ChatResponse{
			Reply:    reply.Text,
			Crisis:   reply.Crisis,
			Fallback: reply.Fallback,
		})
	}

	ctx.CLIFormatter().PrintChatReply(reply.Text, reply.Crisis)
	return nil
}

// chatInteractive runs a read-send-print loop until the user quits.
func chatInteractive(service *chat.Service) error {
	cli := ctx.CLIFormatter()
	cli.Title("MindfulMate")
	cli.Muted("I'm here for you. Type 'quit' to leave.")
	cli.Println("")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		ctx.Formatter.Print("you> ")
		if !scanner.Scan() {
			break
		}

		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if text == "quit" || text == "exit" || text == "bye" {
			cli.Muted("Take care of yourself.")
			break
		}

		reqCtx, cancel := context.WithTimeout(context.Background(), config.Global.Chat.Timeout)
		reply := service.Send(reqCtx, text)
		cancel()

		cli.Println("")
		cli.PrintChatReply(reply.Text, reply.Crisis)
		cli.Println("")
	}

	return scanner.Err()
}

func runChatHistory(cmd *cobra.Command, args []string) error {
	// History is readable without an API key
	service := chat.NewService(nil, ctx.HistoryRepo)

	messages, err := service.History()
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		outputs := make([]*output.MessageOutput, 0, len(messages))
		for _, m := range messages {
			outputs = append(outputs, output.NewMessageOutput(m))
		}
		return ctx.Formatter.JSON(struct {
			Messages []*output.MessageOutput `json:"messages"`
		}{Messages: outputs})
	}

	if len(messages) == 0 {
		ctx.CLIFormatter().Muted("No conversation yet.")
		return nil
	}

	cli := ctx.CLIFormatter()
	for _, m := range messages {
		if m.IsFromUser() {
			cli.Printf("you> %s\n", m.Text)
		} else {
			cli.PrintChatReply(m.Text, m.Crisis)
		}
		cli.Println("")
	}
	return nil
}

func runChatClear(cmd *cobra.Command, args []string) error {
	service := chat.NewService(nil, ctx.HistoryRepo)

	if err := service.Clear(); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]string{"status": "cleared"})
	}

	ctx.CLIFormatter().Success("Conversation cleared.")
	return nil
}
