// Package vsphere connects to vCenter and executes VM operations over the
// vSphere API. It provides the directory and invoker halves that the gated
// flows in vmops run against.
package vsphere

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/vmware/govmomi"
	"github.com/vmware/govmomi/vim25/soap"
	"github.com/vmware/govmomi/vim25/types"

	"github.com/opsforge/vcadmin/internal/config"
	"github.com/opsforge/vcadmin/internal/log"
	"github.com/opsforge/vcadmin/internal/vmops"
)

// Client is an authenticated vCenter connection. Every call gets its own
// deadline from the configured timeout, so a slow vCenter never hangs the
// prompt loop.
type Client struct {
	vc      *govmomi.Client
	host    string
	timeout time.Duration
}

var (
	_ vmops.Directory = (*Client)(nil)
	_ vmops.Invoker   = (*Client)(nil)
)

// SessionInfo describes the authenticated session as vCenter sees it.
type SessionInfo struct {
	UserName  string    `json:"user_name"`
	FullName  string    `json:"full_name,omitempty"`
	IPAddress string    `json:"ip_address"`
	LoginTime time.Time `json:"login_time"`
}

// Connect logs in to the vCenter named by cfg. The password comes in
// separately and is only ever held in memory.
func Connect(ctx context.Context, cfg *config.Config, password string) (*Client, error) {
	u, err := soap.ParseURL(cfg.Host)
	if err != nil {
		return nil, fmt.Errorf("parsing vCenter URL %q: %w", cfg.Host, err)
	}
	u.User = url.UserPassword(cfg.User, password)

	timeout := cfg.Timeout()
	loginCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	vc, err := govmomi.NewClient(loginCtx, u, cfg.Insecure)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", u.Host, err)
	}
	log.Debug("connected to vCenter",
		"host", u.Host,
		"version", vc.ServiceContent.About.Version,
		"api", vc.ServiceContent.About.ApiVersion)

	return &Client{vc: vc, host: u.Host, timeout: timeout}, nil
}

// Host returns the host:port the client is connected to.
func (c *Client) Host() string {
	return c.host
}

// About returns vCenter's self-description.
func (c *Client) About() types.AboutInfo {
	return c.vc.ServiceContent.About
}

// SessionInfo fetches the current session from vCenter.
func (c *Client) SessionInfo(ctx context.Context) (SessionInfo, error) {
	ctx, cancel := c.opCtx(ctx)
	defer cancel()

	us, err := c.vc.SessionManager.UserSession(ctx)
	if err != nil {
		return SessionInfo{}, fmt.Errorf("fetching session: %w", err)
	}
	if us == nil {
		return SessionInfo{}, errors.New("no active session")
	}
	return SessionInfo{
		UserName:  us.UserName,
		FullName:  us.FullName,
		IPAddress: us.IpAddress,
		LoginTime: us.LoginTime,
	}, nil
}

// Logout ends the vCenter session.
func (c *Client) Logout(ctx context.Context) error {
	ctx, cancel := c.opCtx(ctx)
	defer cancel()

	if err := c.vc.Logout(ctx); err != nil {
		return fmt.Errorf("logging out: %w", err)
	}
	log.Debug("logged out", "host", c.host)
	return nil
}

// opCtx derives the per-call deadline.
func (c *Client) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}
