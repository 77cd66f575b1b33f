package cli

import (
	"context"
	"fmt"
	"strings"

	"inkwell/internal/autosave"
	"inkwell/internal/client"
)

// edit runs the line-based editor for a new post (empty id) or an existing
// one. Every change re-feeds the auto-save controller; the debounce and
// periodic flush keep the server copy converged while the user types.
func (a *App) edit(ctx context.Context, blogID string) {
	title := ""
	var lines []string
	var tags []string

	if blogID != "" {
		blog, err := a.api.Blog(ctx, blogID)
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		title = blog.Title
		tags = blog.Tags
		if blog.Content != "" {
			lines = strings.Split(blog.Content, "\n")
		}
	}

	saver := client.NewSaver(a.api)
	ctrl := autosave.New(saver, blogID, autosave.Config{
		OnStatus: func(status autosave.Status, err error) {
			switch status {
			case autosave.StatusSaving:
				fmt.Println("(saving...)")
			case autosave.StatusSaved:
				fmt.Println("(saved)")
			case autosave.StatusError:
				fmt.Println("(save failed:", err, "- will retry)")
			}
		},
	})
	defer ctrl.Close()

	draft := func() autosave.Draft {
		return autosave.Draft{
			Title:   title,
			Content: strings.Join(lines, "\n"),
			Tags:    tags,
		}
	}

	fmt.Println("Editing. Plain lines append to the body. Commands: :title <t>, :tags <a,b>, :save, :publish, :done")
	if title != "" {
		fmt.Println("Title:", title)
	}

	for {
		line, err := a.reader.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimRight(line, "\n")

		switch {
		case strings.HasPrefix(line, ":title "):
			title = strings.TrimSpace(strings.TrimPrefix(line, ":title "))
			ctrl.Edit(draft())

		case strings.HasPrefix(line, ":tags "):
			tags = nil
			for _, t := range strings.Split(strings.TrimPrefix(line, ":tags "), ",") {
				if t = strings.TrimSpace(t); t != "" {
					tags = append(tags, t)
				}
			}
			ctrl.Edit(draft())

		case line == ":save":
			if err := ctrl.Save(ctx); err != nil {
				fmt.Println("error:", err)
			}

		case line == ":publish":
			a.publish(ctx, ctrl, draft())
			return

		case line == ":done":
			// final manual save before the timers are cancelled
			_ = ctrl.Save(ctx)
			return

		default:
			lines = append(lines, line)
			ctrl.Edit(draft())
		}
	}
}

// publish makes the post public: an unsaved post is created via the publish
// endpoint, a saved one gets its status flipped through a partial update.
func (a *App) publish(ctx context.Context, ctrl *autosave.Controller, d autosave.Draft) {
	if strings.TrimSpace(d.Title) == "" || strings.TrimSpace(d.Content) == "" {
		fmt.Println("Cannot publish: title and content are required.")
		return
	}

	if id := ctrl.BlogID(); id != "" {
		if err := ctrl.Save(ctx); err != nil {
			fmt.Println("error:", err)
			return
		}
		status := "published"
		if _, err := a.api.UpdateBlog(ctx, id, client.BlogFields{Status: &status}); err != nil {
			fmt.Println("error:", err)
			return
		}
		fmt.Println("Published.")
		return
	}

	blog, err := a.api.Publish(ctx, d.Title, d.Content, d.Tags)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("Published as %s.\n", blog.ID)
}
