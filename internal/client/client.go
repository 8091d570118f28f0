// Package client implements the mwapi.Client bot surface: it drives each
// composite action's request sequence over the transport and parser
// collaborators and exposes the high-level page operations.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/mwbot-io/mwapi/internal/actions"
	"github.com/mwbot-io/mwapi/internal/constants"
	"github.com/mwbot-io/mwapi/internal/http"
	"github.com/mwbot-io/mwapi/pkg/mwapi"
	"github.com/mwbot-io/mwapi/pkg/mwxml"
)

// parseFunc is the parser collaborator: raw response bytes in, queryable
// document out.
type parseFunc func([]byte) (mwapi.Document, error)

// Bot is a session against one wiki. High-level methods construct the
// matching action, run its sequence to completion, and return the action's
// result. Independent operations may run concurrently; each owns its own
// sequencer and token.
type Bot struct {
	httpClient *http.Client
	config     *mwapi.Config
	logger     mwapi.Logger
	cache      mwapi.Cache
	parse      parseFunc

	mu       sync.RWMutex
	version  mwapi.Version
	userinfo *mwapi.Userinfo
}

// New creates a bot session from the config. No network interaction
// happens until the first operation.
func New(config *mwapi.Config) (*Bot, error) {
	if config == nil {
		return nil, mwapi.ErrConfigRequired
	}

	if config.Endpoint == "" {
		return nil, mwapi.ErrEndpointRequired
	}

	logger := config.Logger
	if logger == nil {
		logger = mwapi.NopLogger()
	}

	httpOpts := buildHTTPOptions(config, logger)

	cache := mwapi.Cache(mwapi.NewNoOpCache())

	if config.Cache != nil {
		built, err := mwapi.NewCacheFromConfig(config.Cache)
		if err != nil {
			return nil, fmt.Errorf("building article cache: %w", err)
		}

		cache = built
	}

	return &Bot{
		httpClient: http.NewClient(config.Endpoint, httpOpts...),
		config:     config,
		logger:     logger,
		cache:      cache,
		parse:      mwxml.Parse,
		version:    config.Version,
	}, nil
}

// buildHTTPOptions maps the config's transport knobs onto client options.
func buildHTTPOptions(config *mwapi.Config, logger mwapi.Logger) []http.Option {
	httpOpts := []http.Option{http.WithLogger(logger)}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	return httpOpts
}

// PerformAction implements mwapi.ActionPerformer.
func (b *Bot) PerformAction(ctx context.Context, action mwapi.Action) error {
	version, err := b.ensureVersion(ctx)
	if err != nil {
		return err
	}

	return b.performWith(ctx, action, version)
}

// performWith runs one composite action against a known version: it drives
// the sequencer, performs each exchange, parses the body, and feeds the
// document back until the sequence finishes or a classified error stops
// it.
func (b *Bot) performWith(ctx context.Context, action mwapi.Action, version mwapi.Version) error {
	seq, err := mwapi.NewSequencer(action, version, b.logger)
	if err != nil {
		return err
	}

	for seq.HasNext() {
		req, err := seq.Next()
		if err != nil {
			return err
		}

		resp, err := b.httpClient.Do(ctx, req)
		if err != nil {
			return fmt.Errorf("%s action: %w", action.Definition().ID, err)
		}

		doc, err := b.parse(resp.Body)
		if err != nil {
			return fmt.Errorf("%s action: %w", action.Definition().ID, err)
		}

		_, err = seq.Process(req, doc)
		if err != nil {
			return err
		}
	}

	return nil
}

// ensureVersion returns the pinned version, or negotiates one via siteinfo
// on first use.
func (b *Bot) ensureVersion(ctx context.Context) (mwapi.Version, error) {
	b.mu.RLock()
	version := b.version
	b.mu.RUnlock()

	if version != mwapi.VersionUnknown {
		return version, nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.version != mwapi.VersionUnknown {
		return b.version, nil
	}

	query := actions.NewSiteinfoQuery()

	// Bootstrap with the latest known version; siteinfo is available
	// everywhere.
	err := b.performWith(ctx, query, mwapi.LatestVersion())
	if err != nil {
		return mwapi.VersionUnknown, fmt.Errorf("negotiating wiki version: %w", err)
	}

	negotiated := query.Siteinfo().Version()
	if negotiated == mwapi.VersionUnknown {
		b.logger.Warn("unrecognized wiki version, assuming latest", map[string]interface{}{
			"generator": query.Siteinfo().Generator,
		})

		negotiated = mwapi.LatestVersion()
	}

	b.logger.Info("negotiated wiki version", map[string]interface{}{
		"version": negotiated.String(),
	})

	b.version = negotiated

	return negotiated, nil
}

// Login implements mwapi.Client.
func (b *Bot) Login(ctx context.Context) error {
	action, err := actions.NewLogin(b.config.Username, b.config.Password)
	if err != nil {
		return err
	}

	err = b.PerformAction(ctx, action)
	if err != nil {
		return err
	}

	b.logger.Info("logged in", map[string]interface{}{"user": action.Username()})

	// The rights list feeds the mutating actions' precondition checks.
	info, err := b.fetchUserinfo(ctx)
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.userinfo = info
	b.mu.Unlock()

	return nil
}

// Delete implements mwapi.Client.
func (b *Bot) Delete(ctx context.Context, title, reason string) (*mwapi.DeleteResult, error) {
	action, err := actions.NewDelete(title, reason, b.currentUserinfo())
	if err != nil {
		return nil, err
	}

	err = b.PerformAction(ctx, action)
	if err != nil {
		return nil, err
	}

	_ = b.cache.Delete(ctx, articleKey(title))

	result := action.Result()
	b.logger.Info("deleted page", map[string]interface{}{
		"title":  result.Title,
		"reason": result.Reason,
	})

	return result, nil
}

// Edit implements mwapi.Client.
func (b *Bot) Edit(ctx context.Context, req *mwapi.EditRequest) (*mwapi.EditResult, error) {
	action, err := actions.NewEdit(req, b.currentUserinfo())
	if err != nil {
		return nil, err
	}

	err = b.PerformAction(ctx, action)
	if err != nil {
		return nil, err
	}

	_ = b.cache.Delete(ctx, articleKey(req.Title))

	return action.Result(), nil
}

// ReadContent implements mwapi.Client.
func (b *Bot) ReadContent(ctx context.Context, title string) (*mwapi.Article, error) {
	if entry, err := b.cache.Get(ctx, articleKey(title)); err == nil {
		var article mwapi.Article

		err = json.Unmarshal(entry.Value, &article)
		if err == nil {
			return &article, nil
		}
	}

	action, err := actions.NewRead(title)
	if err != nil {
		return nil, err
	}

	err = b.PerformAction(ctx, action)
	if err != nil {
		return nil, err
	}

	article := action.Article()
	b.storeArticle(ctx, article)

	return article, nil
}

func (b *Bot) storeArticle(ctx context.Context, article *mwapi.Article) {
	data, err := json.Marshal(article)
	if err != nil {
		return
	}

	ttl := constants.DefaultCacheTTL
	if b.config.Cache != nil && b.config.Cache.TTL > 0 {
		ttl = b.config.Cache.TTL
	}

	err = b.cache.Set(ctx, articleKey(article.Title), &mwapi.CacheEntry{
		Key:      articleKey(article.Title),
		Value:    data,
		StoredAt: time.Now(),
		TTL:      ttl,
	})
	if err != nil {
		b.logger.Warn("caching article failed", map[string]interface{}{
			"title": article.Title,
			"error": err.Error(),
		})
	}
}

func articleKey(title string) string {
	return "article:" + title
}

// AllPageTitles implements mwapi.Client.
func (b *Bot) AllPageTitles(ctx context.Context, opts *mwapi.AllPagesOptions) ([]string, error) {
	action := actions.NewAllPages(opts)

	err := b.PerformAction(ctx, action)
	if err != nil {
		return nil, err
	}

	return action.Titles(), nil
}

// Userinfo implements mwapi.Client.
func (b *Bot) Userinfo(ctx context.Context) (*mwapi.Userinfo, error) {
	if info := b.currentUserinfo(); info != nil {
		return info, nil
	}

	info, err := b.fetchUserinfo(ctx)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	b.userinfo = info
	b.mu.Unlock()

	return info, nil
}

func (b *Bot) fetchUserinfo(ctx context.Context) (*mwapi.Userinfo, error) {
	query := actions.NewUserinfoQuery()

	err := b.PerformAction(ctx, query)
	if err != nil {
		return nil, err
	}

	return query.Userinfo(), nil
}

func (b *Bot) currentUserinfo() *mwapi.Userinfo {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.userinfo
}

// Siteinfo implements mwapi.Client.
func (b *Bot) Siteinfo(ctx context.Context) (*mwapi.Siteinfo, error) {
	query := actions.NewSiteinfoQuery()

	err := b.PerformAction(ctx, query)
	if err != nil {
		return nil, err
	}

	return query.Siteinfo(), nil
}

// NegotiatedVersion implements mwapi.Client.
func (b *Bot) NegotiatedVersion() mwapi.Version {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.version
}
