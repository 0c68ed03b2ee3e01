// Package client is the gateway tying the protocol layer together: it
// owns the session token, builds and sends envelopes, runs message
// classification before any positive extraction, and feeds the domain
// caches. Collaborators (the CLI, or any UI layer) talk to this package
// only; taxonomy errors never propagate past it un-foldable (see
// types.AsResult).
package client

import (
	"context"
	"crypto/sha256"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"go.uber.org/zap"

	"salesdesk/internal/envelope"
	"salesdesk/internal/extract"
	"salesdesk/internal/images"
	"salesdesk/internal/menu"
	"salesdesk/internal/store"
	"salesdesk/internal/text"
	"salesdesk/internal/tooltip"
	"salesdesk/internal/transport"
	"salesdesk/internal/types"
)

// Config collects the gateway's construction parameters.
type Config struct {
	Endpoint  string
	Locale    string
	AssetBase string
	// Store is optional; a nil store disables persistence and the
	// stale-while-revalidate startup path.
	Store      *store.Store
	Logger     *zap.Logger
	HTTPClient *http.Client
}

// Gateway is the single entry point for backend operations. Construct
// once at startup and pass by reference; the embedded caches are owned by
// the gateway and rebuilt wholesale on every successful fetch.
type Gateway struct {
	transport *transport.Client
	extractor *extract.Extractor
	store     *store.Store
	log       *zap.Logger
	locale    string

	Menu     *menu.Service
	Texts    *text.Service
	Tooltips *tooltip.Analyzer
	Images   *images.Service

	mu          sync.RWMutex
	token       string
	displayName string
	isSupplier  bool
	perms       types.Permissions
}

// New creates a gateway.
func New(cfg Config) *Gateway {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	topts := []transport.Option{transport.WithLogger(log)}
	if cfg.HTTPClient != nil {
		topts = append(topts, transport.WithHTTPClient(cfg.HTTPClient))
	}
	return &Gateway{
		transport: transport.New(cfg.Endpoint, topts...),
		extractor: extract.New(log),
		store:     cfg.Store,
		log:       log,
		locale:    cfg.Locale,
		Menu:      menu.New(log),
		Texts:     text.New(log),
		Tooltips:  tooltip.New(log),
		Images:    images.New(log, cfg.AssetBase),
	}
}

// HashPassword applies the backend's fixed password transform: SHA-256 of
// the trimmed password, rendered as uppercase hex. Trimming and casing
// are bit-exact compatibility requirements, not style.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(password)))
	return fmt.Sprintf("%X", sum)
}

// session snapshots the request context for the envelope builder.
func (g *Gateway) session() types.Session {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return types.Session{Token: g.token, Locale: g.locale}
}

// Token returns the current session token ("" when logged out).
func (g *Gateway) Token() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.token
}

// IsAuthenticated reports whether a session token is present.
func (g *Gateway) IsAuthenticated() bool { return g.Token() != "" }

// DisplayName returns the logged-in user's display name.
func (g *Gateway) DisplayName() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.displayName
}

// Permissions returns the visibility switches derived during AppInit (or
// restored from a snapshot).
func (g *Gateway) Permissions() types.Permissions {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.perms
}

// requireToken short-circuits authenticated operations before any network
// call when no token is present.
func (g *Gateway) requireToken() error {
	if g.Token() == "" {
		return &types.AuthenticationError{Reason: "no session token"}
	}
	return nil
}

// call performs one full request/response cycle: build, post, parse,
// verify the echoed operation name, and classify carried messages. The
// classification runs before the caller gets to do positive extraction,
// because a well-formed response can carry nothing but an error payload.
func (g *Gateway) call(ctx context.Context, op types.Operation, params []types.Param) (*envelope.Document, error) {
	body := envelope.BuildRequest(op, params, g.session())

	raw, err := g.transport.Post(ctx, op, body)
	if err != nil {
		return nil, err
	}

	doc, err := envelope.Parse(raw)
	if err != nil {
		return nil, &types.MalformedResponseError{Op: op.Name, Err: err}
	}

	if name := doc.MessageName(); !strings.EqualFold(name, op.Name) {
		return nil, &types.OperationMismatchError{Want: op.Name, Got: name}
	}

	if err := extract.Classify(g.extractor.Messages(doc)); err != nil {
		g.log.Warn("backend rejected operation",
			zap.String("operation", op.Name),
			zap.Error(err))
		return nil, err
	}
	return doc, nil
}

// persist writes a snapshot, tolerating a nil store. Persistence failures
// are logged, not propagated: the fetch itself succeeded and the caller
// has the data.
func (g *Gateway) persist(key string, payload interface{}) {
	if g.store == nil {
		return
	}
	if err := g.store.SaveSnapshot(key, payload); err != nil {
		g.log.Warn("failed to persist snapshot", zap.String("key", key), zap.Error(err))
	}
}
