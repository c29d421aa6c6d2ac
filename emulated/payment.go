package emulated

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/marinocpqd/indy-sdk/bridge"
	"github.com/marinocpqd/indy-sdk/native"
	"github.com/marinocpqd/indy-sdk/status"
)

// Payment addresses are fully qualified as pay:<method>:<identifier>.
func paymentAddress(method string) string {
	return "pay:" + method + ":" + uuid.NewString()
}

// addressMethod extracts <method> from a fully qualified address, or ""
// when the address is not in the pay:<method>:<identifier> form.
func addressMethod(addr string) string {
	parts := strings.SplitN(addr, ":", 3)
	if len(parts) != 3 || parts[0] != "pay" || parts[1] == "" || parts[2] == "" {
		return ""
	}
	return parts[1]
}

func (l *Library) CreatePaymentAddress(h bridge.Handle, wallet int32, method, config string, cb native.StringCB) status.Code {
	if wallet <= 0 || method == "" {
		return status.InvalidParam
	}
	if config != "" && !json.Valid([]byte(config)) {
		return status.InvalidStructure
	}

	return l.schedule(func() {
		l.mu.Lock()
		known := l.methods[method]
		l.mu.Unlock()
		if !known {
			cb(h, status.NotFound, "")
			return
		}

		addr := paymentAddress(method)
		l.mu.Lock()
		l.addrs[wallet] = append(l.addrs[wallet], addr)
		l.mu.Unlock()

		l.log.Debug("payment address created",
			zap.Int32("wallet", wallet), zap.String("address", addr))
		cb(h, status.Success, addr)
	})
}

func (l *Library) ListPaymentAddresses(h bridge.Handle, wallet int32, cb native.StringCB) status.Code {
	if wallet <= 0 {
		return status.InvalidParam
	}
	return l.schedule(func() {
		l.mu.Lock()
		addrs := append([]string(nil), l.addrs[wallet]...)
		l.mu.Unlock()
		if addrs == nil {
			addrs = []string{}
		}
		out, err := json.Marshal(addrs)
		if err != nil {
			cb(h, status.IOError, "")
			return
		}
		cb(h, status.Success, string(out))
	})
}

type paymentOutput struct {
	Recipient string `json:"recipient"`
	Amount    uint64 `json:"amount"`
}

func (l *Library) BuildPaymentReq(h bridge.Handle, wallet int32, submitterDID, inputs, outputs, extra string, cb native.StringPairCB) status.Code {
	if wallet <= 0 {
		return status.InvalidParam
	}
	var ins []string
	if err := json.Unmarshal([]byte(inputs), &ins); err != nil || len(ins) == 0 {
		return status.InvalidStructure
	}
	var outs []paymentOutput
	if err := json.Unmarshal([]byte(outputs), &outs); err != nil || len(outs) == 0 {
		return status.InvalidStructure
	}

	// All inputs and outputs must agree on a single payment method.
	method := addressMethod(ins[0])
	if method == "" {
		return status.InvalidStructure
	}
	for _, in := range ins[1:] {
		if addressMethod(in) != method {
			return status.InvalidStructure
		}
	}
	for _, out := range outs {
		if addressMethod(out.Recipient) != method {
			return status.InvalidStructure
		}
	}

	return l.schedule(func() {
		l.mu.Lock()
		known := l.methods[method]
		l.mu.Unlock()
		if !known {
			cb(h, status.NotFound, "", "")
			return
		}

		req := map[string]any{
			"reqId":     uuid.NewString(),
			"submitter": submitterDID,
			"operation": map[string]any{
				"type":    "10001",
				"inputs":  ins,
				"outputs": outs,
				"extra":   extra,
			},
		}
		body, err := json.Marshal(req)
		if err != nil {
			cb(h, status.IOError, "", "")
			return
		}
		cb(h, status.Success, string(body), method)
	})
}

func (l *Library) ParsePaymentResponse(h bridge.Handle, method, response string, cb native.StringCB) status.Code {
	if method == "" {
		return status.InvalidParam
	}
	return l.schedule(func() {
		l.mu.Lock()
		known := l.methods[method]
		l.mu.Unlock()
		if !known {
			cb(h, status.NotFound, "")
			return
		}

		var resp struct {
			Result json.RawMessage `json:"result"`
		}
		if err := json.Unmarshal([]byte(response), &resp); err != nil || resp.Result == nil {
			cb(h, status.InvalidStructure, "")
			return
		}
		receipts, err := json.Marshal(map[string]any{"receipts": resp.Result})
		if err != nil {
			cb(h, status.IOError, "")
			return
		}
		cb(h, status.Success, string(receipts))
	})
}
