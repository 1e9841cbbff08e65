package application

import (
	"context"
	"fmt"
	"io"
	"log"

	"f2yaml/internal/domain"
	"f2yaml/internal/ports"
	"f2yaml/internal/yamldoc"
)

// Engine ties link parsing and resolution to a workspace.
type Engine struct {
	ws       ports.Workspace
	resolver *Resolver
	opts     Options
	log      *log.Logger
}

// NewEngine creates an engine. A nil logger discards traces.
func NewEngine(ws ports.Workspace, opts Options, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if len(opts.IgnoreWords) == 0 {
		opts.IgnoreWords = domain.DefaultIgnoreWords
	}
	return &Engine{
		ws:       ws,
		resolver: NewResolver(opts.IgnoreWords, logger),
		opts:     opts,
		log:      logger,
	}
}

func (e *Engine) Workspace() ports.Workspace { return e.ws }
func (e *Engine) Options() Options           { return e.opts }
func (e *Engine) Resolver() *Resolver        { return e.resolver }

// ParseLink parses raw with the configured separator.
func (e *Engine) ParseLink(raw string) (*domain.Link, error) {
	return domain.ParseLink(raw, e.opts.linkOptions())
}

// Load resolves a link in a freshly loaded copy of its file.
func (e *Engine) Load(ctx context.Context, link *domain.Link) (*TaskRef, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := e.ws.Locate(link)
	if err != nil {
		return nil, err
	}
	doc, err := e.ws.Load(path)
	if err != nil {
		return nil, err
	}

	e.log.Printf("resolving %s in %s", link, path)
	m, err := e.resolver.Resolve(doc, link)
	if err != nil {
		return nil, err
	}
	return &TaskRef{Link: link, Doc: doc, Match: m}, nil
}

// Trail resolves a link without modifying anything, one match per segment.
func (e *Engine) Trail(ctx context.Context, link *domain.Link) ([]*Match, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := e.ws.Locate(link)
	if err != nil {
		return nil, err
	}
	doc, err := e.ws.Load(path)
	if err != nil {
		return nil, err
	}
	return e.resolver.Trail(doc, link)
}

// IDLink converts a link to its Id form: every segment after the file is
// replaced by the child's Id value, or its key without status code.
func (e *Engine) IDLink(ctx context.Context, link *domain.Link) (*domain.Link, error) {
	trail, err := e.Trail(ctx, link)
	if err != nil {
		return nil, err
	}

	segs := []string{link.Segments[0]}
	for _, m := range trail[1:] {
		if id, ok := idOf(m.Value); ok {
			segs = append(segs, domain.QuoteSegment(id))
			continue
		}
		segs = append(segs, domain.QuoteSegment(domain.StripStatus(m.Name, e.opts.IgnoreWords)))
	}
	return domain.NewLink(segs, e.opts.linkOptions()), nil
}

// SummaryLinkAt derives the summary link of the key enclosing a line.
func (e *Engine) SummaryLinkAt(ctx context.Context, path string, line int) (*domain.Link, error) {
	doc, err := e.ws.Symbols(ctx, path)
	if err != nil {
		return nil, err
	}
	locator, err := e.ws.Locator(path)
	if err != nil {
		return nil, err
	}

	keys := yamldoc.KeyPathAt(doc.Root(), line)
	if len(keys) == 0 {
		return nil, &ResolutionError{Kind: ErrUnableToFindTask, Name: fmt.Sprintf("%s:%d", path, line)}
	}
	// The document may repeat segment 0 as its top-level key.
	_, file := domain.NewLink([]string{locator}, e.opts.linkOptions()).FileLocator()
	if keys[0] == locator || keys[0] == "."+locator || keys[0] == file {
		keys = keys[1:]
	}

	segs := []string{locator}
	for _, k := range keys {
		segs = append(segs, domain.SummarySegment(k, e.opts.IgnoreWords))
	}
	return domain.NewLink(segs, e.opts.linkOptions()), nil
}
