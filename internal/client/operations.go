package client

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"salesdesk/internal/extract"
	"salesdesk/internal/store"
	"salesdesk/internal/types"
)

// PreInitCaptions fetches the unauthenticated caption dictionary shown
// before login and loads it into the text cache.
func (g *Gateway) PreInitCaptions(ctx context.Context) ([]types.UIText, error) {
	doc, err := g.call(ctx, types.OpPreInit, nil)
	if err != nil {
		return nil, err
	}
	texts := g.extractor.Captions(doc)
	g.Texts.Initialize(texts)
	g.persist(store.KeyTexts, texts)
	return texts, nil
}

// LoginTemplate fetches the login mask field captions.
func (g *Gateway) LoginTemplate(ctx context.Context) ([]types.UIText, error) {
	doc, err := g.call(ctx, types.OpLoginTemplate, nil)
	if err != nil {
		return nil, err
	}
	fields := g.extractor.LoginTemplate(doc)
	if len(fields) == 0 {
		// Unlike list data, the login mask cannot render without its
		// template, so absence escalates instead of degrading.
		return nil, &types.NotFoundError{What: "login template"}
	}
	return fields, nil
}

// Login authenticates. The password is hashed client-side; the plaintext
// never goes on the wire. On success the gateway holds the issued token
// (and persists it) for all subsequent authenticated operations.
func (g *Gateway) Login(ctx context.Context, username, password string) (*types.LoginResult, error) {
	params := []types.Param{
		{Name: "USERNAME", Value: username},
		{Name: "PASSWORD", Value: HashPassword(password)},
	}
	doc, err := g.call(ctx, types.OpLogin, params)
	if err != nil {
		return nil, err
	}

	res, err := g.extractor.Login(doc)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	g.token = res.Token
	g.displayName = res.DisplayName
	g.isSupplier = res.IsSupplier
	g.mu.Unlock()

	if g.store != nil {
		if err := g.store.SaveToken(res.Token); err != nil {
			g.log.Warn("failed to persist session token", zap.Error(err))
		}
	}
	return res, nil
}

// Logout invalidates the session. The local session state is cleared even
// when the backend call fails: a collaborator that asked to log out must
// never stay authenticated locally.
func (g *Gateway) Logout(ctx context.Context) error {
	if err := g.requireToken(); err != nil {
		return err
	}
	_, callErr := g.call(ctx, types.OpLogout, nil)

	g.mu.Lock()
	g.token = ""
	g.displayName = ""
	g.isSupplier = false
	g.perms = types.Permissions{}
	g.mu.Unlock()

	g.Menu.Clear()
	g.Texts.Clear()
	g.Tooltips.Clear()
	g.Images.Clear()

	if g.store != nil {
		if err := g.store.ClearToken(); err != nil {
			g.log.Warn("failed to clear persisted token", zap.Error(err))
		}
	}
	return callErr
}

// AppInit fetches the authenticated bootstrap payload: menu catalog, menu
// captions, and the interaction names feeding the permission derivation.
// All derived caches are rebuilt from scratch.
func (g *Gateway) AppInit(ctx context.Context) error {
	if err := g.requireToken(); err != nil {
		return err
	}
	doc, err := g.call(ctx, types.OpAppInit, nil)
	if err != nil {
		return err
	}

	items := g.extractor.MenuItems(doc)
	texts := g.extractor.Captions(doc)
	interactions := g.extractor.InteractionNames(doc)

	g.mu.RLock()
	isSupplier := g.isSupplier
	g.mu.RUnlock()
	perms := extract.DerivePermissions(isSupplier, interactions)

	g.Menu.Initialize(items)
	if len(texts) > 0 {
		g.Texts.Initialize(texts)
	}
	tooltips := make([]string, 0, len(items))
	for _, it := range items {
		tooltips = append(tooltips, it.Tooltip)
	}
	g.Tooltips.Initialize(tooltips)

	g.mu.Lock()
	g.perms = perms
	g.mu.Unlock()

	g.persist(store.KeyMenu, items)
	if len(texts) > 0 {
		g.persist(store.KeyTexts, texts)
	}
	g.persist(store.KeyPermissions, perms)

	g.log.Info("application initialized",
		zap.Int("menu_items", len(items)),
		zap.Int("texts", len(texts)),
		zap.Int("interactions", len(interactions)))
	return nil
}

// ImageCatalog fetches the embedded image catalog and rebuilds the image
// cache.
func (g *Gateway) ImageCatalog(ctx context.Context) ([]types.UIImageItem, error) {
	if err := g.requireToken(); err != nil {
		return nil, err
	}
	doc, err := g.call(ctx, types.OpImageCatalog, nil)
	if err != nil {
		return nil, err
	}
	imgs := g.extractor.Images(doc)
	g.Images.Initialize(imgs)
	g.persist(store.KeyImages, imgs)
	return imgs, nil
}

// Bootstrap warms every post-login cache: AppInit and the image catalog
// run as parallel round trips, since neither depends on the other.
func (g *Gateway) Bootstrap(ctx context.Context) error {
	if err := g.requireToken(); err != nil {
		return err
	}
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error { return g.AppInit(ctx) })
	eg.Go(func() error {
		_, err := g.ImageCatalog(ctx)
		return err
	})
	return eg.Wait()
}

// SupplierList fetches the supplier list. An absent entity degrades to an
// empty list; only transport, codec, and backend-classified failures are
// errors.
func (g *Gateway) SupplierList(ctx context.Context) ([]types.Supplier, error) {
	if err := g.requireToken(); err != nil {
		return nil, err
	}
	doc, err := g.call(ctx, types.OpSupplierList, nil)
	if err != nil {
		return nil, err
	}
	suppliers := g.extractor.Suppliers(doc)
	g.persist(store.KeySuppliers, suppliers)
	return suppliers, nil
}

// POSList fetches the point-of-sale list with the same degradation
// contract as SupplierList.
func (g *Gateway) POSList(ctx context.Context) ([]types.POSItem, error) {
	if err := g.requireToken(); err != nil {
		return nil, err
	}
	doc, err := g.call(ctx, types.OpPOSList, nil)
	if err != nil {
		return nil, err
	}
	pos := g.extractor.POSList(doc)
	g.persist(store.KeyPOS, pos)
	return pos, nil
}

// CachedState describes what LoadCachedState managed to restore.
type CachedState struct {
	Token       bool
	Menu        bool
	Texts       bool
	Permissions bool
	Images      bool
}

// LoadCachedState opportunistically repopulates the caches and the
// session token from the snapshot store, before the first network round
// trip completes. Missing snapshots are skipped silently. Decode failures
// are logged and skipped: last-known-good data is a convenience, never a
// requirement.
func (g *Gateway) LoadCachedState() CachedState {
	var state CachedState
	if g.store == nil {
		return state
	}

	if token, err := g.store.LoadToken(); err != nil {
		g.log.Warn("failed to load persisted token", zap.Error(err))
	} else if token != "" {
		g.mu.Lock()
		g.token = token
		g.mu.Unlock()
		state.Token = true
	}

	var items []types.MenuItem
	if found := g.loadSnapshot(store.KeyMenu, &items); found {
		g.Menu.Initialize(items)
		tooltips := make([]string, 0, len(items))
		for _, it := range items {
			tooltips = append(tooltips, it.Tooltip)
		}
		g.Tooltips.Initialize(tooltips)
		state.Menu = true
	}

	var texts []types.UIText
	if found := g.loadSnapshot(store.KeyTexts, &texts); found {
		g.Texts.Initialize(texts)
		state.Texts = true
	}

	var perms types.Permissions
	if found := g.loadSnapshot(store.KeyPermissions, &perms); found {
		g.mu.Lock()
		g.perms = perms
		g.mu.Unlock()
		state.Permissions = true
	}

	var imgs []types.UIImageItem
	if found := g.loadSnapshot(store.KeyImages, &imgs); found {
		g.Images.Initialize(imgs)
		state.Images = true
	}
	return state
}

// Snapshot reads a persisted last-known-good snapshot into out. With no
// store configured it reports not found.
func (g *Gateway) Snapshot(key string, out interface{}) (bool, error) {
	if g.store == nil {
		return false, nil
	}
	return g.store.LoadSnapshot(key, out)
}

func (g *Gateway) loadSnapshot(key string, out interface{}) bool {
	found, err := g.store.LoadSnapshot(key, out)
	if err != nil {
		g.log.Warn("failed to load snapshot", zap.String("key", key), zap.Error(err))
		return false
	}
	return found
}
