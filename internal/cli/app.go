// Package cli is an interactive authoring client: a small REPL for account
// and blog management plus a line-based editor wired to the auto-save
// controller.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"inkwell/internal/client"
	"inkwell/internal/config"
)

// readPassword is a test seam for term.ReadPassword.
// In tests you can replace it with a stub to avoid touching the terminal.
var readPassword = term.ReadPassword

// App holds the CLI state.
type App struct {
	api      *client.Client
	reader   *bufio.Reader
	userName string
}

// NewApp builds the CLI against the configured API base URL.
func NewApp(cfg *config.Config) *App {
	return &App{
		api:    client.New(cfg.APIBaseURL),
		reader: bufio.NewReader(os.Stdin),
	}
}

func (a *App) isLoggedIn() bool {
	return a.api.Token() != ""
}

// Run starts the read-eval-print loop. It exits on EOF or "exit".
func (a *App) Run(ctx context.Context) {
	fmt.Println("inkwell — type 'help' for commands")
	for {
		fmt.Printf("inkwell> ")
		line, err := a.reader.ReadString('\n')
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "help":
			if a.isLoggedIn() {
				fmt.Println("Available commands: list, search <query>, new, open <id>, delete <id>, me, exit")
			} else {
				fmt.Println("Available commands: register, login, exit")
			}
		case "register":
			a.register(ctx)
		case "login":
			a.login(ctx)
		case "me":
			a.me(ctx)
		case "list":
			a.list(ctx)
		case "search":
			a.search(ctx, strings.Join(parts[1:], " "))
		case "new":
			a.edit(ctx, "")
		case "open":
			if len(parts) < 2 {
				fmt.Println("usage: open <id>")
				continue
			}
			a.edit(ctx, parts[1])
		case "delete":
			if len(parts) < 2 {
				fmt.Println("usage: delete <id>")
				continue
			}
			a.delete(ctx, parts[1])
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", parts[0])
		}
	}
}

func (a *App) prompt(label string) (string, error) {
	fmt.Printf("%s: ", label)
	line, err := a.reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password from the terminal without echo.
func (a *App) promptPassword(label string) (string, error) {
	fmt.Printf("%s: ", label)
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

func (a *App) register(ctx context.Context) {
	name, err := a.prompt("Name")
	if err != nil {
		return
	}
	email, err := a.prompt("Email")
	if err != nil {
		return
	}
	password, err := a.promptPassword("Password")
	if err != nil {
		return
	}

	resp, err := a.api.Register(ctx, name, email, password)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	a.userName = resp.User.Name
	fmt.Printf("Welcome, %s!\n", resp.User.Name)
}

func (a *App) login(ctx context.Context) {
	email, err := a.prompt("Email")
	if err != nil {
		return
	}
	password, err := a.promptPassword("Password")
	if err != nil {
		return
	}

	resp, err := a.api.Login(ctx, email, password)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	a.userName = resp.User.Name
	fmt.Printf("Welcome back, %s!\n", resp.User.Name)
}

func (a *App) me(ctx context.Context) {
	profile, err := a.api.Me(ctx)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("%s <%s> (id %s)\n", profile.Name, profile.Email, profile.ID)
}

func (a *App) list(ctx context.Context) {
	blogs, err := a.api.Blogs(ctx)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	if len(blogs) == 0 {
		fmt.Println("No blogs yet. Try 'new'.")
		return
	}
	for _, b := range blogs {
		fmt.Printf("%s  [%s]  %s  (updated %s)\n", b.ID, b.Status, b.Title, b.UpdatedAt.Format("2006-01-02 15:04"))
	}
}

func (a *App) search(ctx context.Context, query string) {
	if strings.TrimSpace(query) == "" {
		fmt.Println("usage: search <query>")
		return
	}
	blogs, err := a.api.SearchBlogs(ctx, query)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	if len(blogs) == 0 {
		fmt.Println("No matches.")
		return
	}
	for _, b := range blogs {
		fmt.Printf("%s  [%s]  %s\n", b.ID, b.Status, b.Title)
	}
}

func (a *App) delete(ctx context.Context, id string) {
	if err := a.api.DeleteBlog(ctx, id); err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("Deleted.")
}
