// Package client builds jsonrpc clients for the api structs. Substrate wire
// method names are lowerCamel with an underscore namespace separator
// ("state_getKeys"), so every client is constructed with the matching method
// name formatter.
package client

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/filecoin-project/go-jsonrpc"

	"github.com/rootnet-dev/forkoff/api"
)

// RPCTimeout bounds every call; the node side has no such safeguard and a
// stalled scan would otherwise block a worker forever.
const RPCTimeout = 60 * time.Second

// methodName maps a Go method name onto its wire form, e.g.
// ("state", "GetKeys") -> "state_getKeys". The library's stock formatters all
// join with a dot, which no Substrate node understands.
func methodName(namespace, method string) string {
	if method == "" {
		return namespace + "_"
	}
	return namespace + "_" + strings.ToLower(method[:1]) + method[1:]
}

func substrateNaming() jsonrpc.Option {
	return jsonrpc.WithMethodNameFormatter(methodName)
}

// NewStateRPC creates a jsonrpc client for the "state" namespace. Each caller
// gets its own connection; scrape workers rely on that for connection-per-worker.
func NewStateRPC(ctx context.Context, addr string, requestHeader http.Header) (*api.StateStruct, jsonrpc.ClientCloser, error) {
	var res api.StateStruct
	closer, err := jsonrpc.NewMergeClient(ctx, addr, "state",
		[]interface{}{
			&res.Internal,
		},
		requestHeader,
		substrateNaming(),
		jsonrpc.WithTimeout(RPCTimeout),
	)

	return &res, closer, err
}

// NewNodeRPC creates clients for all namespaces a fork run needs, sharing one
// closer.
func NewNodeRPC(ctx context.Context, addr string, requestHeader http.Header) (*api.NodeAPI, jsonrpc.ClientCloser, error) {
	var res api.NodeAPI

	stateCloser, err := jsonrpc.NewMergeClient(ctx, addr, "state",
		[]interface{}{&res.StateStruct.Internal},
		requestHeader,
		substrateNaming(),
		jsonrpc.WithTimeout(RPCTimeout),
	)
	if err != nil {
		return nil, nil, err
	}

	systemCloser, err := jsonrpc.NewMergeClient(ctx, addr, "system",
		[]interface{}{&res.SystemStruct.Internal},
		requestHeader,
		substrateNaming(),
		jsonrpc.WithTimeout(RPCTimeout),
	)
	if err != nil {
		stateCloser()
		return nil, nil, err
	}

	chainCloser, err := jsonrpc.NewMergeClient(ctx, addr, "chain",
		[]interface{}{&res.ChainStruct.Internal},
		requestHeader,
		substrateNaming(),
		jsonrpc.WithTimeout(RPCTimeout),
	)
	if err != nil {
		stateCloser()
		systemCloser()
		return nil, nil, err
	}

	closer := func() {
		stateCloser()
		systemCloser()
		chainCloser()
	}

	return &res, closer, nil
}
