package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"inkwell/internal/client/services"
)

func (a *App) list(ctx context.Context, page int) {
	if page < 1 {
		page = 1
	}
	if err := a.blogService.LoadPage(ctx, page); err != nil {
		log.Printf("Error: %s", a.api.Err())
		return
	}

	s := a.store.Get()
	if len(s.Posts) == 0 {
		fmt.Println("No posts")
		return
	}
	for _, p := range s.Posts {
		category := p.CategoryName
		if category == "" {
			category = "-"
		}
		fmt.Printf("%s  [%s]  %s (by %s)\n", p.ID, category, p.Title, p.Author)
	}
	fmt.Printf("Page %d of %d (%d posts total)\n", s.Page, s.Pages, s.Total)
}

func (a *App) show(ctx context.Context, id string) {
	p, err := a.blogService.GetPost(ctx, id)
	if err != nil {
		log.Printf("Error: %s", a.api.Err())
		return
	}

	fmt.Println(p.Title)
	fmt.Printf("by %s", p.Author)
	if p.CategoryName != "" {
		fmt.Printf(" in %s", p.CategoryName)
	}
	fmt.Println()
	if p.FeaturedImage != "" {
		fmt.Printf("image: %s\n", p.FeaturedImage)
	}
	fmt.Println()
	fmt.Println(p.Content)

	comments, err := a.blogService.ListComments(ctx, id)
	if err != nil {
		log.Printf("Error: %s", a.api.Err())
		return
	}
	if len(comments) > 0 {
		fmt.Printf("\nComments (%d):\n", len(comments))
		for _, c := range comments {
			fmt.Printf("  %s: %s\n", c.AuthorUsername, c.Content)
		}
	}
}

func (a *App) promptDraft() (services.PostDraft, error) {
	var draft services.PostDraft
	var err error

	if draft.Title, err = getSimpleText(a.reader, "Enter title", os.Stdout); err != nil {
		return draft, err
	}
	if draft.Content, err = GetMultiline(a.reader, "Enter content", os.Stdout); err != nil {
		return draft, err
	}
	if draft.Author, err = getSimpleText(a.reader, "Enter author name", os.Stdout); err != nil {
		return draft, err
	}
	if draft.CategoryID, err = a.promptCategory(); err != nil {
		return draft, err
	}
	if draft.ImagePath, err = getSimpleText(a.reader, "Enter image file path (optional)", os.Stdout); err != nil {
		return draft, err
	}
	return draft, nil
}

// promptCategory lists the known categories and reads a choice, so the
// user enters a name or an id, not a UUID from memory.
func (a *App) promptCategory() (string, error) {
	categories := a.store.Get().Categories
	for _, c := range categories {
		fmt.Printf("  %s  %s\n", c.ID, c.Name)
	}

	choice, err := getSimpleText(a.reader, "Enter category id or name", os.Stdout)
	if err != nil {
		return "", err
	}
	for _, c := range categories {
		if c.Name == choice {
			return c.ID, nil
		}
	}
	return choice, nil
}

func (a *App) add(ctx context.Context) {
	draft, err := a.promptDraft()
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	created, err := a.blogService.CreatePost(ctx, draft)
	if err != nil {
		log.Printf("Error: %s", a.api.Err())
		return
	}
	fmt.Printf("Created post %s\n", created.ID)
}

func (a *App) edit(ctx context.Context, id string) {
	var update services.PostUpdate

	current, err := a.blogService.GetPost(ctx, id)
	if err != nil {
		log.Printf("Error: %s", a.api.Err())
		return
	}
	fmt.Printf("Editing %q (leave a field empty to keep it)\n", current.Title)

	if title, err := getSimpleText(a.reader, "New title", os.Stdout); err == nil && title != "" {
		update.Title = &title
	}
	if content, err := GetMultiline(a.reader, "New content", os.Stdout); err == nil && content != "" {
		update.Content = &content
	}
	if author, err := getSimpleText(a.reader, "New author", os.Stdout); err == nil && author != "" {
		update.Author = &author
	}
	if category, err := getSimpleText(a.reader, "New category id", os.Stdout); err == nil && category != "" {
		update.CategoryID = &category
	}
	if image, err := getSimpleText(a.reader, "New image file path", os.Stdout); err == nil && image != "" {
		update.ImagePath = image
	}

	if err := a.blogService.UpdatePost(ctx, id, update); err != nil {
		log.Printf("Error: %s", a.api.Err())
		return
	}
	fmt.Println("Post updated")
}

func (a *App) delete(ctx context.Context, id string) {
	if err := a.blogService.DeletePost(ctx, id); err != nil {
		log.Printf("Error: %s", a.api.Err())
		return
	}
	fmt.Println("Post deleted")
}
