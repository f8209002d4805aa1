package commands

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/blogbuilder/internal/content"
)

// NewCmd implements the 'new' command.
type NewCmd struct {
	Title    []string `arg:"" help:"Title of the new post or page"`
	Page     bool     `help:"Scaffold a page instead of a post"`
	Category string   `help:"Category recorded in the frontmatter"`
	Tags     []string `short:"t" help:"Tags recorded in the frontmatter"`
	Author   string   `help:"Author recorded in the frontmatter (defaults to site.author)"`
}

func (n *NewCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	author := n.Author
	if author == "" {
		author = cfg.Site.Author
	}

	path, err := content.Scaffold(cfg.ContentDir(), strings.Join(n.Title, " "), content.ScaffoldOptions{
		Category: n.Category,
		Tags:     n.Tags,
		Author:   author,
		Page:     n.Page,
	})
	if err != nil {
		return err
	}
	fmt.Println("Created", path)
	return nil
}
