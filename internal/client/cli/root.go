package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	s := a.store.Get()
	parts := []string{}
	if s.User != nil {
		parts = append(parts, s.User.Username)
	}
	if s.Pages > 0 {
		parts = append(parts, fmt.Sprintf("page %d/%d", s.Page, s.Pages))
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, " "))
}

func (a *App) Root(ctx context.Context) {

	log.Println("Welcome to the blog CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	if err := a.blogService.LoadCategories(ctx); err != nil {
		log.Printf("error loading categories: %s", err.Error())
	}
	a.list(ctx, 1)

	for {
		fmt.Printf("blog %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Println("Available commands: (l)ist [page], next, prev, show <id>, add, edit <id>, delete <id>, comment <id>, categories, addcategory, logout, exit")
			} else {
				fmt.Println("Available commands: (l)ist [page], next, prev, show <id>, categories, addcategory, register, login, exit")
			}

		case "register":
			a.register(ctx)
		case "login":
			a.login(ctx)
		case "logout":
			a.logout(ctx)
		case "l", "list":
			page := a.store.Get().Page
			if page < 1 {
				page = 1
			}
			if len(args) > 0 {
				fmt.Sscanf(args[0], "%d", &page)
			}
			a.list(ctx, page)
		case "next":
			a.list(ctx, a.store.Get().Page+1)
		case "prev":
			a.list(ctx, a.store.Get().Page-1)
		case "show":
			if len(args) == 0 {
				fmt.Println("Usage: show <id>")
				continue
			}
			a.show(ctx, args[0])
		case "add":
			a.add(ctx)
		case "edit":
			if len(args) == 0 {
				fmt.Println("Usage: edit <id>")
				continue
			}
			a.edit(ctx, args[0])
		case "delete":
			if len(args) == 0 {
				fmt.Println("Usage: delete <id>")
				continue
			}
			a.delete(ctx, args[0])
		case "comment":
			if len(args) == 0 {
				fmt.Println("Usage: comment <id>")
				continue
			}
			a.comment(ctx, args[0])
		case "categories":
			a.categories(ctx)
		case "addcategory":
			a.addCategory(ctx)
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}

}
