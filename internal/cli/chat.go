package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"procure-ai/client/internal/app"
	"procure-ai/client/internal/model"
	"procure-ai/client/internal/notify"
)

// runChat is the interactive chat loop. Input is read line by line; the loop
// is sequential, so a new message cannot be submitted while a reply is
// pending.
func runChat(cmd *cobra.Command) error {
	a, err := app.New(notify.WriterNotifier{W: cmd.ErrOrStderr()})
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	a.Start(ctx)
	a.Orchestrator.CreateSession()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "procure-chat: type /help for commands, /quit to exit.")
	printAssistantReply(out, a)

	var pendingAttachments []model.Attachment

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(line, "/") {
			done, err := handleCommand(ctx, out, a, line, &pendingAttachments)
			if err != nil {
				fmt.Fprintln(out, "!", err)
			}
			if done {
				return nil
			}
			continue
		}

		if err := a.Orchestrator.SendMessage(ctx, line, pendingAttachments); err != nil {
			// Already surfaced through the notifier; keep the loop alive.
			continue
		}
		pendingAttachments = nil
		printAssistantReply(out, a)
	}
}

// handleCommand executes a slash command. It returns done=true on /quit.
func handleCommand(ctx context.Context, out io.Writer, a *app.App, line string, attachments *[]model.Attachment) (bool, error) {
	fields := strings.Fields(line)
	switch fields[0] {
	case "/quit", "/exit":
		return true, nil

	case "/help":
		fmt.Fprintln(out, `Commands:
  /new                start a new chat session
  /sessions           list sessions
  /switch <id>        activate a session
  /delete <id>        delete a session
  /model <id>         switch the active model
  /models             list available models
  /key <value>        store the cloud API key
  /attach <path>      attach a file to the next message
  /quit               exit`)
		return false, nil

	case "/new":
		s := a.Orchestrator.CreateSession()
		fmt.Fprintf(out, "Started %s (%s)\n", s.Name, s.ID)
		printAssistantReply(out, a)
		return false, nil

	case "/sessions":
		current, _ := a.Orchestrator.Current()
		for _, s := range a.Orchestrator.Sessions() {
			marker := " "
			if current != nil && s.ID == current.ID {
				marker = "*"
			}
			fmt.Fprintf(out, "%s %s  %s (%d messages)\n", marker, s.ID, s.Name, len(s.Messages))
		}
		return false, nil

	case "/switch":
		if len(fields) < 2 {
			return false, fmt.Errorf("usage: /switch <session-id>")
		}
		return false, a.Orchestrator.SetCurrent(fields[1])

	case "/delete":
		if len(fields) < 2 {
			return false, fmt.Errorf("usage: /delete <session-id>")
		}
		if err := a.Orchestrator.DeleteSession(fields[1]); err != nil {
			return false, err
		}
		// Keep the client usable: never sit on an empty session set.
		if _, ok := a.Orchestrator.Current(); !ok {
			a.Orchestrator.CreateSession()
		}
		return false, nil

	case "/model":
		if len(fields) < 2 {
			return false, fmt.Errorf("usage: /model <model-id>")
		}
		return false, a.Controller.SwitchModel(fields[1])

	case "/models":
		printModels(out, a)
		return false, nil

	case "/key":
		if len(fields) < 2 {
			return false, fmt.Errorf("usage: /key <api-key>")
		}
		return false, a.Credentials.Set(ctx, fields[1])

	case "/attach":
		if len(fields) < 2 {
			return false, fmt.Errorf("usage: /attach <path>")
		}
		data, err := os.ReadFile(fields[1])
		if err != nil {
			return false, err
		}
		*attachments = append(*attachments, model.Attachment{Name: filepath.Base(fields[1]), Data: data})
		fmt.Fprintf(out, "Attached %s (%d bytes)\n", filepath.Base(fields[1]), len(data))
		return false, nil

	default:
		return false, fmt.Errorf("unknown command %s, try /help", fields[0])
	}
}

func printAssistantReply(out io.Writer, a *app.App) {
	session, ok := a.Orchestrator.Current()
	if !ok || len(session.Messages) == 0 {
		return
	}
	last := session.Messages[len(session.Messages)-1]
	if last.Role != model.RoleAssistant {
		return
	}
	fmt.Fprintf(out, "assistant: %s\n", last.Content)
	for _, doc := range last.SourceDocuments {
		fmt.Fprintf(out, "  source: %s\n", doc.PageContent)
	}
}

func printModels(out io.Writer, a *app.App) {
	current := a.Controller.CurrentModel()
	for _, m := range a.Registry.List() {
		marker := " "
		if m.ID == current.ID {
			marker = "*"
		}
		kind := "cloud"
		if m.Local {
			kind = "local"
		}
		fmt.Fprintf(out, "%s %-18s %-6s %s\n", marker, m.ID, kind, m.Description)
	}
}
