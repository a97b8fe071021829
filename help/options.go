package help

import (
	"errors"
	"fmt"
	"text/template"
)

// RandomColor picks a new random embed color for every invocation
const RandomColor = -1

// DefaultEndingNote is rendered into every page footer unless overridden.
// The template sees .Prefix and .InvokedWith.
const DefaultEndingNote = "Type {{.Prefix}}{{.InvokedWith}} command for more info on a command.\n" +
	"You can also type {{.Prefix}}{{.InvokedWith}} category for more info on a category."

// ErrInvalidOptions is wrapped by every configuration error
var ErrInvalidOptions = errors.New("invalid help options")

// PageOptions controls how pages are laid out
type PageOptions struct {
	// Color is a 24 bit RGB value or RandomColor
	Color int
	// IndexTitle is the title of the leading index page
	IndexTitle string
	// NoCategory labels commands without a category
	NoCategory string
	// Description is shown on the index page, or on the first page when the
	// index is hidden
	Description  string
	Footer       string
	ImageURL     string
	ThumbnailURL string
	SortCommands bool
	ShowIndex    bool
}

// Options configures the help command
type Options struct {
	PageOptions

	// EndingNote is a text/template for the footer of every page
	EndingNote      string
	Prefix          string
	CaseInsensitive bool
	DMHelp          bool
	DeleteInvoke    bool

	// Menu sends the pages. Nil selects an AppMenu with default settings.
	Menu Menu
}

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	return Options{
		PageOptions: PageOptions{
			Color:        RandomColor,
			IndexTitle:   "Categories",
			NoCategory:   "No Category",
			SortCommands: true,
			ShowIndex:    true,
		},
		EndingNote: DefaultEndingNote,
		Prefix:     ".",
	}
}

// Validate reports the first invalid setting
func (o Options) Validate() error {
	if o.Color < RandomColor || o.Color > 0xFFFFFF {
		return fmt.Errorf("%w: color %#x out of range", ErrInvalidOptions, o.Color)
	}
	if o.IndexTitle == "" {
		return fmt.Errorf("%w: index title is empty", ErrInvalidOptions)
	}
	if o.NoCategory == "" {
		return fmt.Errorf("%w: no-category label is empty", ErrInvalidOptions)
	}
	_, err := parseEndingNote(o.EndingNote)
	return err
}

func parseEndingNote(text string) (*template.Template, error) {
	note, err := template.New("ending_note").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: ending note: %v", ErrInvalidOptions, err)
	}
	return note, nil
}
