package cli

import (
	"context"
	"fmt"
	"log"
	"os"
)

func (a *App) categories(ctx context.Context) {
	if err := a.blogService.LoadCategories(ctx); err != nil {
		log.Printf("Error: %s", a.api.Err())
		return
	}

	categories := a.store.Get().Categories
	if len(categories) == 0 {
		fmt.Println("No categories")
		return
	}
	for _, c := range categories {
		if c.Description != "" {
			fmt.Printf("%s  %s - %s\n", c.ID, c.Name, c.Description)
		} else {
			fmt.Printf("%s  %s\n", c.ID, c.Name)
		}
	}
}

func (a *App) addCategory(ctx context.Context) {
	name, err := getSimpleText(a.reader, "Enter category name", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	description, err := getSimpleText(a.reader, "Enter description (optional)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	created, err := a.blogService.CreateCategory(ctx, name, description)
	if err != nil {
		log.Printf("Error: %s", a.api.Err())
		return
	}
	fmt.Printf("Created category %s\n", created.ID)
}
