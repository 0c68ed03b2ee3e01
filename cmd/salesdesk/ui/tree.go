package ui

import (
	"strings"

	"salesdesk/internal/menu"
)

// RenderMenuTree renders a menu forest with box-drawing connectors. Items
// keep their service render order; tooltips show muted next to captions.
func RenderMenuTree(styles Styles, roots []*menu.Node) string {
	var sb strings.Builder
	for _, root := range roots {
		renderNode(&sb, styles, root, "", true)
	}
	return sb.String()
}

func renderNode(sb *strings.Builder, styles Styles, node *menu.Node, prefix string, last bool) {
	connector := "├── "
	childPrefix := prefix + "│   "
	if last {
		connector = "└── "
		childPrefix = prefix + "    "
	}
	if node.Depth == 0 {
		connector = ""
		childPrefix = "    "
	}

	sb.WriteString(prefix)
	sb.WriteString(styles.Muted.Render(connector))
	if node.Depth == 0 {
		sb.WriteString(styles.Bold.Render(node.Caption))
	} else {
		sb.WriteString(styles.Body.Render(node.Caption))
	}
	if node.Tooltip != "" {
		sb.WriteString(" ")
		sb.WriteString(styles.Muted.Render("(" + node.Tooltip + ")"))
	}
	sb.WriteString("\n")

	for i, child := range node.Children {
		renderNode(sb, styles, child, childPrefix, i == len(node.Children)-1)
	}
}
