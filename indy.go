package indy

import (
	"github.com/marinocpqd/indy-sdk/bridge"
	"github.com/marinocpqd/indy-sdk/native"
	"github.com/marinocpqd/indy-sdk/payment"
	"github.com/marinocpqd/indy-sdk/pool"
)

// Client bundles one bridge with the façades bound to a native library.
type Client struct {
	Bridge  *bridge.Bridge
	Pool    *pool.Pool
	Payment *payment.Payment
}

// NewClient wires a fresh bridge and all façades to lib.
func NewClient(lib native.Library, opts ...bridge.Option) *Client {
	b := bridge.New(opts...)
	return &Client{
		Bridge:  b,
		Pool:    pool.New(b, lib),
		Payment: payment.New(b, lib),
	}
}

// Close verifies no calls are still pending on the bridge.
func (c *Client) Close() error {
	return c.Bridge.Close()
}
