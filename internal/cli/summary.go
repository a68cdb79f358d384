package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

// printSummary renders the post-run report. Markdown through glamour
// when the terminal supports styling, plain text otherwise.
func printSummary(opts ConvertOptions, stats *statsConsumer) {
	var b strings.Builder
	fmt.Fprintf(&b, "# Weld run complete\n\n")
	fmt.Fprintf(&b, "- **Input:** %s\n", opts.InputPath)
	fmt.Fprintf(&b, "- **Instruction stream:** %s\n", opts.OutputPath)
	if opts.AnimationPath != "" {
		fmt.Fprintf(&b, "- **Animation:** %s\n", opts.AnimationPath)
	}
	if opts.GIFPath != "" {
		fmt.Fprintf(&b, "- **GIF:** %s\n", opts.GIFPath)
	}
	fmt.Fprintf(&b, "\n| Paths | Points | Pauses |\n|---|---|---|\n| %d | %d | %d |\n",
		len(stats.seen), stats.points, stats.pauses)
	if !stats.bounds.Empty() {
		rect := stats.bounds.Rect()
		fmt.Fprintf(&b, "\nPattern extent: %.1f x %.1f mm, centered at (%.1f, %.1f).\n",
			rect.Width(), rect.Height(), rect.Center().X, rect.Center().Y)
	}

	if termenv.ColorProfile() == termenv.Ascii {
		fmt.Println(b.String())
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		fmt.Println(b.String())
		return
	}
	out, err := r.Render(b.String())
	if err != nil {
		fmt.Println(b.String())
		return
	}
	fmt.Fprint(os.Stdout, out)
}
