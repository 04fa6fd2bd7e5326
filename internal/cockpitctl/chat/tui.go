package chat

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// ANSI color helpers using raw escape codes, no OSC queries, no termenv
// auto-detect.
var (
	colorReset      = "\033[0m"
	colorBold       = "\033[1m"
	colorDim        = "\033[2m"
	colorOrangeANSI = "\033[38;5;208m"
	colorBlueANSI   = "\033[38;5;39m"
	colorPinkANSI   = "\033[38;5;212m"
	colorGrayANSI   = "\033[38;5;241m"
	colorRedANSI    = "\033[38;5;196m"
)

func getTermWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}

// printWelcomeBanner outputs the welcome banner once at startup.
func printWelcomeBanner(client *Client) {
	w := getTermWidth()

	sep := colorOrangeANSI + strings.Repeat("-", w) + colorReset
	fmt.Println(sep)
	fmt.Printf("%s%s Cockpit Chat %s\n", colorBold, colorOrangeANSI, colorReset)
	fmt.Println()
	fmt.Printf("  Server:  %s\n", client.BaseURL)
	if client.ConversationID != "" {
		fmt.Printf("  Conversation: %s\n", client.ConversationID)
	}
	fmt.Println()
	fmt.Printf("%sTips:%s\n", colorOrangeANSI+colorBold, colorReset)
	fmt.Println("  Type a message and press Enter to send")
	fmt.Println("  /clear  - start a new conversation")
	fmt.Println("  /quit   - exit")
	fmt.Println("  Ctrl+C  - exit")
	fmt.Println(sep)
	fmt.Println()
}

// printSeparator prints a dim horizontal rule.
func printSeparator() {
	w := getTermWidth()
	n := w - 2
	if n < 20 {
		n = 20
	}
	fmt.Printf("%s%s%s\n", colorGrayANSI, strings.Repeat("-", n), colorReset)
}

// printUserMessage displays the user's message.
func printUserMessage(msg string) {
	printSeparator()
	fmt.Printf("%s%syou%s\n", colorBold, colorBlueANSI, colorReset)
	fmt.Printf("%s%s%s\n", colorBlueANSI, msg, colorReset)
}

// printAssistantLabel outputs the assistant name label.
func printAssistantLabel() {
	printSeparator()
	fmt.Printf("%s%scockpit%s\n", colorBold, colorPinkANSI, colorReset)
}

// printError outputs an error message.
func printError(msg string) {
	fmt.Printf("%s%sError: %s%s\n", colorBold, colorRedANSI, msg, colorReset)
}

// renderMarkdownToTerminal renders markdown content for terminal display.
func renderMarkdownToTerminal(content string, width int) string {
	if width <= 0 {
		width = 76
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithColorProfile(termenv.ANSI256),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}
	rendered, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(rendered, "\n")
}

// readLine reads a line of input from the user with a prompt.
// It handles Ctrl+C / Ctrl+D gracefully.
func readLine(prompt string) (string, bool) {
	fmt.Print(prompt)
	scanner := bufio.NewScanner(os.Stdin)
	if scanner.Scan() {
		return scanner.Text(), true
	}
	// EOF or error (e.g. Ctrl+D)
	return "", false
}

// RunTUI starts the interactive chat loop using direct terminal output.
// This approach avoids alt-screen mode so that text can be freely selected
// and copied.
func RunTUI(client *Client) error {
	// Handle Ctrl+C gracefully
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Printf("\n\n%sGoodbye!%s\n\n", colorDim, colorReset)
		os.Exit(0)
	}()

	printWelcomeBanner(client)

	prompt := colorOrangeANSI + colorBold + "> " + colorReset

	for {
		input, ok := readLine(prompt)
		if !ok {
			// EOF (Ctrl+D)
			fmt.Printf("\n%sGoodbye!%s\n\n", colorDim, colorReset)
			return nil
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		switch input {
		case "/quit", "/exit":
			fmt.Printf("\n%sGoodbye!%s\n\n", colorDim, colorReset)
			return nil
		case "/clear":
			client.Reset()
			fmt.Printf("%sConversation cleared.%s\n\n", colorGrayANSI, colorReset)
			continue
		}

		printUserMessage(input)
		printAssistantLabel()

		fmt.Printf("%sThinking...%s", colorGrayANSI, colorReset)

		ctx, cancel := context.WithTimeout(context.Background(), 180*time.Second)
		reply, toolsUsed, err := client.Send(ctx, input)
		cancel()

		// Clear "Thinking..."
		fmt.Print("\r\033[K")

		if err != nil {
			printError(err.Error())
		} else {
			w := getTermWidth() - 4
			fmt.Println(renderMarkdownToTerminal(reply, w))
			if len(toolsUsed) > 0 {
				fmt.Printf("%stools: %s%s\n", colorGrayANSI, strings.Join(toolsUsed, ", "), colorReset)
			}
		}

		fmt.Println()
	}
}

// RunOnce performs a single chat request (non-interactive mode) and prints
// the raw reply to stdout.
func RunOnce(client *Client, message string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 180*time.Second)
	defer cancel()

	reply, _, err := client.Send(ctx, message)
	if err != nil {
		return err
	}
	fmt.Println(reply)
	return nil
}
