package cli

import (
	"context"
	"fmt"
	"log"
	"os"
)

func (a *App) comment(ctx context.Context, postID string) {
	if !a.isLoggedIn() {
		fmt.Println("Log in to leave a comment")
		return
	}

	content, err := GetMultiline(a.reader, "Enter comment", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	created, err := a.blogService.AddComment(ctx, postID, content)
	if err != nil {
		log.Printf("Error: %s", a.api.Err())
		return
	}
	fmt.Printf("Comment %s added\n", created.ID)
}
