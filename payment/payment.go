package payment

import (
	"time"

	"github.com/marinocpqd/indy-sdk/bridge"
	"github.com/marinocpqd/indy-sdk/native"
	"github.com/marinocpqd/indy-sdk/status"
)

// Payment drives the payment operations of one native library through a
// shared bridge.
type Payment struct {
	b   *bridge.Bridge
	lib native.Library
}

// New binds the façade to a bridge and a library.
func New(b *bridge.Bridge, lib native.Library) *Payment {
	return &Payment{b: b, lib: lib}
}

// CreateAddress mints a new payment address in the wallet for the given
// payment method. config is an optional method-specific JSON document.
func (p *Payment) CreateAddress(wallet int32, method, config string) (string, error) {
	out, err := p.b.Call("payment.CreateAddress", bridge.ShapeString,
		p.createAddress(wallet, method, config))
	if err != nil {
		return "", err
	}
	return out.Str, nil
}

// CreateAddressTimeout is CreateAddress with a deadline on the wait.
func (p *Payment) CreateAddressTimeout(wallet int32, method, config string, timeout time.Duration) (string, error) {
	out, err := p.b.CallTimeout("payment.CreateAddress", bridge.ShapeString, timeout,
		p.createAddress(wallet, method, config))
	if err != nil {
		return "", err
	}
	return out.Str, nil
}

// CreateAddressAsync registers fn to receive the completion status and
// the new address.
func (p *Payment) CreateAddressAsync(wallet int32, method, config string, fn func(status.Code, string)) status.Code {
	return p.b.CallAsync(bridge.ShapeString, p.createAddress(wallet, method, config),
		func(out bridge.Outcome) { fn(out.Code, out.Payload.Str) })
}

func (p *Payment) createAddress(wallet int32, method, config string) bridge.NativeFunc {
	return func(h bridge.Handle) status.Code {
		return p.lib.CreatePaymentAddress(h, wallet, method, config, p.b.CompleteString)
	}
}

// ListAddresses returns the wallet's payment addresses as a JSON array.
func (p *Payment) ListAddresses(wallet int32) (string, error) {
	out, err := p.b.Call("payment.ListAddresses", bridge.ShapeString,
		p.listAddresses(wallet))
	if err != nil {
		return "", err
	}
	return out.Str, nil
}

// ListAddressesTimeout is ListAddresses with a deadline on the wait.
func (p *Payment) ListAddressesTimeout(wallet int32, timeout time.Duration) (string, error) {
	out, err := p.b.CallTimeout("payment.ListAddresses", bridge.ShapeString, timeout,
		p.listAddresses(wallet))
	if err != nil {
		return "", err
	}
	return out.Str, nil
}

// ListAddressesAsync registers fn to receive the completion status and
// the address list.
func (p *Payment) ListAddressesAsync(wallet int32, fn func(status.Code, string)) status.Code {
	return p.b.CallAsync(bridge.ShapeString, p.listAddresses(wallet),
		func(out bridge.Outcome) { fn(out.Code, out.Payload.Str) })
}

func (p *Payment) listAddresses(wallet int32) bridge.NativeFunc {
	return func(h bridge.Handle) status.Code {
		return p.lib.ListPaymentAddresses(h, wallet, p.b.CompleteString)
	}
}

// BuildRequest builds a payment request moving sources between payment
// addresses. inputs is a JSON array of source addresses, outputs a JSON
// array of {"recipient": address, "amount": int} objects; all addresses
// must share one payment method. It returns the request document and the
// payment method it was built for.
func (p *Payment) BuildRequest(wallet int32, submitterDID, inputs, outputs, extra string) (req, method string, err error) {
	out, err := p.b.Call("payment.BuildRequest", bridge.ShapeStringPair,
		p.buildRequest(wallet, submitterDID, inputs, outputs, extra))
	if err != nil {
		return "", "", err
	}
	return out.Str, out.Str2, nil
}

// BuildRequestTimeout is BuildRequest with a deadline on the wait.
func (p *Payment) BuildRequestTimeout(wallet int32, submitterDID, inputs, outputs, extra string, timeout time.Duration) (req, method string, err error) {
	out, err := p.b.CallTimeout("payment.BuildRequest", bridge.ShapeStringPair, timeout,
		p.buildRequest(wallet, submitterDID, inputs, outputs, extra))
	if err != nil {
		return "", "", err
	}
	return out.Str, out.Str2, nil
}

// BuildRequestAsync registers fn to receive the completion status, the
// request document, and the payment method.
func (p *Payment) BuildRequestAsync(wallet int32, submitterDID, inputs, outputs, extra string, fn func(status.Code, string, string)) status.Code {
	return p.b.CallAsync(bridge.ShapeStringPair,
		p.buildRequest(wallet, submitterDID, inputs, outputs, extra),
		func(out bridge.Outcome) { fn(out.Code, out.Payload.Str, out.Payload.Str2) })
}

func (p *Payment) buildRequest(wallet int32, submitterDID, inputs, outputs, extra string) bridge.NativeFunc {
	return func(h bridge.Handle) status.Code {
		return p.lib.BuildPaymentReq(h, wallet, submitterDID, inputs, outputs, extra, p.b.CompleteStringPair)
	}
}

// ParseResponse parses a ledger response to a payment request into a
// receipts document for the given payment method.
func (p *Payment) ParseResponse(method, response string) (string, error) {
	out, err := p.b.Call("payment.ParseResponse", bridge.ShapeString,
		p.parseResponse(method, response))
	if err != nil {
		return "", err
	}
	return out.Str, nil
}

// ParseResponseTimeout is ParseResponse with a deadline on the wait.
func (p *Payment) ParseResponseTimeout(method, response string, timeout time.Duration) (string, error) {
	out, err := p.b.CallTimeout("payment.ParseResponse", bridge.ShapeString, timeout,
		p.parseResponse(method, response))
	if err != nil {
		return "", err
	}
	return out.Str, nil
}

// ParseResponseAsync registers fn to receive the completion status and
// the receipts document.
func (p *Payment) ParseResponseAsync(method, response string, fn func(status.Code, string)) status.Code {
	return p.b.CallAsync(bridge.ShapeString, p.parseResponse(method, response),
		func(out bridge.Outcome) { fn(out.Code, out.Payload.Str) })
}

func (p *Payment) parseResponse(method, response string) bridge.NativeFunc {
	return func(h bridge.Handle) status.Code {
		return p.lib.ParsePaymentResponse(h, method, response, p.b.CompleteString)
	}
}
