// Package cli holds the iate-log subcommands. Each command is a kong struct
// with a Run(*Context) method.
package cli

import (
	"fmt"
	"io"

	"iate-log/internal/completion"
	"iate-log/internal/config"
	"iate-log/internal/server"
	"iate-log/internal/service"
	"iate-log/internal/storage"
)

// Context is shared by every command. The store and the service are opened
// on first use so that commands like version never touch the database.
type Context struct {
	Config *config.Config
	Out    io.Writer

	store storage.Storage
	hub   *server.Hub
	svc   *service.Service
}

func NewContext(cfg *config.Config, out io.Writer) *Context {
	return &Context{Config: cfg, Out: out, hub: server.NewHub()}
}

func (c *Context) Service() (*service.Service, error) {
	if c.svc != nil {
		return c.svc, nil
	}

	store, err := storage.NewSQLiteStorage(c.Config.DB.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	cc := c.Config.Completion
	client := completion.NewClient(completion.Config{
		Provider:       cc.Provider,
		BaseURL:        cc.BaseURL,
		APIKey:         cc.APIKey,
		Model:          cc.Model,
		ResponseFormat: cc.ResponseFormat,
		MaxTokens:      cc.MaxTokens,
		Temperature:    cc.Temperature,
		Timeout:        cc.Timeout,
	})

	c.store = store
	c.svc = service.New(store, client, service.WithNotifier(c.hub))
	return c.svc, nil
}

func (c *Context) Hub() *server.Hub { return c.hub }

func (c *Context) Close() error {
	if c.store == nil {
		return nil
	}
	return c.store.Close()
}

func (c *Context) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Out, format, args...)
}
