package help

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode/utf8"

	"PrettyHelp/commands"

	"github.com/bwmarrin/discordgo"
)

// Discord embed limits
const (
	embedCharLimit        = 6000
	embedFieldLimit       = 25
	embedTitleLimit       = 256
	embedDescriptionLimit = 4096
	fieldNameLimit        = 256
	fieldValueLimit       = 1024
)

const (
	codePrefix       = "```"
	codeSuffix       = "```"
	subcommandMarker = "🔗"
	noDescription    = "No Description"
	overflowName     = "More commands"
)

// room kept free for the overflow field while filling a page
const overflowReserve = len(overflowName) + fieldValueLimit

// room kept free for the page marker added when rendering
const markerReserve = 32

// paginator collects pages for one help invocation
type paginator struct {
	opts  PageOptions
	color int
	pages []*discordgo.MessageEmbed
}

func newPaginator(opts PageOptions) *paginator {
	color := opts.Color
	if color == RandomColor {
		color = rand.IntN(0xFFFFFF + 1)
	}
	return &paginator{opts: opts, color: color}
}

func (p *paginator) newPage(title, description string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       truncate(title, embedTitleLimit),
		Description: truncate(description, embedDescriptionLimit),
		Color:       p.color,
	}
	if p.opts.ImageURL != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: p.opts.ImageURL}
	}
	if p.opts.ThumbnailURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: p.opts.ThumbnailURL}
	}
	return embed
}

func (p *paginator) addPage(page *discordgo.MessageEmbed) {
	if p.opts.Footer != "" {
		page.Footer = &discordgo.MessageEmbedFooter{Text: p.opts.Footer}
	}
	p.pages = append(p.pages, page)
}

// addCategory adds one page listing the category's commands, with
// subcommands nested under their parent
func (p *paginator) addCategory(c Category) {
	if len(c.Commands) == 0 {
		return
	}
	page := p.newPage(c.Name, c.Description)

	fields := make([]*discordgo.MessageEmbedField, 0, len(c.Commands))
	names := make([]string, 0, len(c.Commands))
	for _, cmd := range c.Commands {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  truncate(cmd.Name, fieldNameLimit),
			Value: commandFieldValue(cmd),
		})
		names = append(names, cmd.Name)
	}
	p.fill(page, fields, names)
	p.addPage(page)
}

// addGroup adds a page for a command group listing its subcommands
func (p *paginator) addGroup(group commands.CommandInfo, qualified string) {
	page := p.newPage(qualified, codePrefix+commandInfo(group)+codeSuffix)

	fields := make([]*discordgo.MessageEmbedField, 0, len(group.Subcommands))
	names := make([]string, 0, len(group.Subcommands))
	for _, sub := range group.Subcommands {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  truncate(subcommandMarker+" "+sub.Name, fieldNameLimit),
			Value: codeBlock(sub.ShortDoc()),
		})
		names = append(names, sub.Name)
	}
	p.fill(page, fields, names)
	p.addPage(page)
}

// addCommand adds a page describing a single command
func (p *paginator) addCommand(cmd commands.CommandInfo, qualified, signature string) {
	page := p.newPage(qualified, codePrefix+commandInfo(cmd)+codeSuffix)

	if len(cmd.Aliases) > 0 {
		page.Fields = append(page.Fields, &discordgo.MessageEmbedField{
			Name:  "Aliases",
			Value: codeBlock(strings.Join(cmd.Aliases, ", ")),
		})
	}
	page.Fields = append(page.Fields, &discordgo.MessageEmbedField{
		Name:  "Usage",
		Value: codeBlock(signature),
	})
	if cmd.Category != "" {
		page.Fields = append(page.Fields, &discordgo.MessageEmbedField{
			Name:  "Category",
			Value: cmd.Category,
		})
	}
	p.addPage(page)
}

// addIndex puts a page listing every other page in front
func (p *paginator) addIndex(title string) {
	if !p.opts.ShowIndex {
		if len(p.pages) > 0 && p.opts.Description != "" {
			first := p.pages[0]
			first.Description = truncate(joinLines(p.opts.Description, first.Description), embedDescriptionLimit)
		}
		return
	}

	index := p.newPage(title, p.opts.Description)
	if p.opts.Footer != "" {
		index.Footer = &discordgo.MessageEmbedFooter{Text: p.opts.Footer}
	}

	fields := make([]*discordgo.MessageEmbedField, 0, len(p.pages))
	names := make([]string, 0, len(p.pages))
	for pageNo, page := range p.pages {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  truncate(fmt.Sprintf("%d) %s", pageNo+1, page.Title), fieldNameLimit),
			Value: codeBlock(page.Description),
		})
		names = append(names, page.Title)
	}
	p.fill(index, fields, names)
	p.pages = append([]*discordgo.MessageEmbed{index}, p.pages...)
}

// render numbers the pages. The index page, when present, is not numbered
// and not counted.
func (p *paginator) render(withIndex bool) []*discordgo.MessageEmbed {
	if len(p.pages) <= 1 {
		return p.pages
	}

	total := len(p.pages)
	start := 1
	if withIndex {
		total--
		start = 0
	}
	for i, page := range p.pages {
		pageNo := i + start
		if withIndex && pageNo == 0 {
			continue
		}
		marker := fmt.Sprintf("`Page: %d/%d`", pageNo, total)
		page.Description = truncate(joinLines(marker, page.Description), embedDescriptionLimit)
	}
	return p.pages
}

// fill adds fields until the embed limits are reached. The entries that do
// not fit are listed by name in a trailing overflow field.
func (p *paginator) fill(page *discordgo.MessageEmbed, fields []*discordgo.MessageEmbedField, names []string) {
	budget := embedCharLimit - embedLength(page) - markerReserve - utf8.RuneCountInString(p.opts.Description)
	if page.Footer == nil {
		budget -= utf8.RuneCountInString(p.opts.Footer)
	}

	for i, field := range fields {
		size := utf8.RuneCountInString(field.Name) + utf8.RuneCountInString(field.Value)
		last := i == len(fields)-1

		maxFields, reserve := embedFieldLimit-1, overflowReserve
		if last {
			maxFields, reserve = embedFieldLimit, 0
		}

		if len(page.Fields) < maxFields && size+reserve <= budget {
			page.Fields = append(page.Fields, field)
			budget -= size
			continue
		}

		page.Fields = append(page.Fields, &discordgo.MessageEmbedField{
			Name:  overflowName,
			Value: overflowValue(names[i:]),
		})
		return
	}
}

// BuildPages renders the categories into help pages: one page per category,
// preceded by an index page when ShowIndex is set. With no categories the
// result is a single page carrying only the title and description.
func BuildPages(categories []Category, opts PageOptions) []*discordgo.MessageEmbed {
	p := newPaginator(opts)
	for _, c := range categories {
		p.addCategory(c)
	}

	if len(p.pages) == 0 {
		p.addPage(p.newPage(opts.IndexTitle, opts.Description))
		return p.pages
	}

	p.addIndex(opts.IndexTitle)
	return p.render(opts.ShowIndex)
}

// commandFieldValue renders a command's short doc followed by its nested
// subcommands, one per line
func commandFieldValue(cmd commands.CommandInfo) string {
	var b strings.Builder
	b.WriteString(codeBlock(cmd.ShortDoc()))

	cmd.Walk(func(qualified string, sub commands.CommandInfo, depth int) {
		b.WriteString("\n")
		b.WriteString(strings.Repeat(" ", depth-1))
		b.WriteString(subcommandMarker)
		b.WriteString(" `")
		b.WriteString(qualified)
		b.WriteString("`")
		if doc := sub.ShortDoc(); doc != "" {
			b.WriteString(" ")
			b.WriteString(doc)
		}
	})
	return truncate(b.String(), fieldValueLimit)
}

// commandInfo is the description followed by the long help text
func commandInfo(cmd commands.CommandInfo) string {
	info := ""
	if cmd.Description != "" {
		info += cmd.Description + "\n\n"
	}
	if cmd.Help != "" {
		info += cmd.Help
	}
	info = strings.TrimSpace(info)
	if info == "" {
		info = "None"
	}
	return info
}

func overflowValue(names []string) string {
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = "`" + name + "`"
	}
	return truncate(strings.Join(quoted, ", "), fieldValueLimit)
}

func codeBlock(s string) string {
	if s == "" {
		s = noDescription
	}
	s = truncate(s, fieldValueLimit-len(codePrefix)-len(codeSuffix))
	return codePrefix + s + codeSuffix
}

func joinLines(head, rest string) string {
	if rest == "" {
		return head
	}
	if head == "" {
		return rest
	}
	return head + "\n" + rest
}

// truncate cuts s to at most limit runes, marking the cut with an ellipsis
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-1]) + "…"
}

// embedLength approximates how Discord counts an embed's characters
func embedLength(e *discordgo.MessageEmbed) int {
	n := utf8.RuneCountInString(e.Title) + utf8.RuneCountInString(e.Description)
	for _, f := range e.Fields {
		n += utf8.RuneCountInString(f.Name) + utf8.RuneCountInString(f.Value)
	}
	if e.Footer != nil {
		n += utf8.RuneCountInString(e.Footer.Text)
	}
	if e.Author != nil {
		n += utf8.RuneCountInString(e.Author.Name)
	}
	return n
}
