/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package address

import (
	"context"
	"fmt"
	"net"
	"sort"
	"strconv"
	"sync"
	"time"

	netprt "github.com/sabouaram/golib/network/protocol"

	libcch "github.com/sabouaram/golib/cache"
)

// cacheTTL bounds how long a successful resolution is kept before the next
// Resolve call re-queries the resolver, trading staleness for fewer lookups.
const cacheTTL = 30 * time.Second

// resolveKey is the cache key: a resolution is cacheable per name, service,
// family and protocol tuple since each combination can yield a different
// answer.
type resolveKey struct {
	name    string
	service string
	family  Family
	proto   netprt.NetworkProtocol
}

var (
	_cacheOnce sync.Once
	_cache     libcch.Cache[resolveKey, []Address]
)

func resolverCache() libcch.Cache[resolveKey, []Address] {
	_cacheOnce.Do(func() {
		_cache = libcch.New[resolveKey, []Address](context.Background(), cacheTTL)
	})
	return _cache
}

// Resolve looks up name (a hostname or literal IP) for service (a port
// number or /etc/services name), restricting results to family when it is
// not FamilyUnknown and to proto's network when given. Successful lookups
// are cached for cacheTTL; ctx governs only the network query, not the
// cache lifetime.
func Resolve(ctx context.Context, name string, service string, family Family, proto netprt.NetworkProtocol) ([]Address, error) {
	key := resolveKey{name: name, service: service, family: family, proto: proto}

	if v, _, ok := resolverCache().Load(key); ok {
		return v, nil
	}

	addrs, err := resolve(ctx, key)
	if err != nil {
		return nil, err
	}

	resolverCache().Store(key, addrs)
	return addrs, nil
}

func resolve(ctx context.Context, key resolveKey) ([]Address, error) {
	var resolver net.Resolver

	network := networkFor(key.family, key.proto)

	host, port := key.name, key.service
	if h, p, err := net.SplitHostPort(key.name); err == nil {
		host, port = h, p
	}
	if port == "" {
		port = key.service
	}

	ips, err := resolver.LookupIP(ctx, network, host)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ErrorResolveTimeout.Error(err)
		}
		return nil, ErrorResolveFailed.Error(err)
	}

	portNum, err := lookupPort(port, key.proto)
	if err != nil {
		return nil, ErrorInvalidArgument.Error(err)
	}

	out := make([]Address, 0, len(ips))
	for _, ip := range ips {
		switch key.family {
		case FamilyV4:
			if ip.To4() == nil {
				continue
			}
		case FamilyV6:
			if ip.To4() != nil {
				continue
			}
		}
		out = append(out, fromNetIP(ip, portNum, 0))
	}

	if len(out) == 0 {
		return nil, ErrorResolveFailed.Errorf("%s: no address found", key.name)
	}

	return out, nil
}

func lookupPort(service string, proto netprt.NetworkProtocol) (uint16, error) {
	if service == "" {
		return 0, nil
	}

	if n, err := strconv.ParseUint(service, 10, 16); err == nil {
		return uint16(n), nil
	}

	netName := "tcp"
	if proto != netprt.NetworkEmpty {
		netName = proto.String()
	}

	p, err := net.LookupPort(netName, service)
	if err != nil {
		return 0, fmt.Errorf("unknown service %q: %w", service, err)
	}

	return uint16(p), nil
}

// ResolveTrimCache evicts cached resolutions down to at most max entries,
// dropping the oldest first. It is meant to be called periodically by a
// caller that wants to bound resolver memory under high lookup churn.
func ResolveTrimCache(max int) {
	if max < 0 {
		max = 0
	}

	c := resolverCache()

	var all []cacheEntry
	c.Walk(func(k resolveKey, _ []Address, ttl time.Duration) bool {
		all = append(all, cacheEntry{key: k, ttl: ttl})
		return true
	})

	if len(all) <= max {
		return
	}

	sort.Slice(all, func(i, j int) bool { return all[i].ttl < all[j].ttl })

	for _, e := range all[:len(all)-max] {
		c.Delete(e.key)
	}
}

type cacheEntry struct {
	key resolveKey
	ttl time.Duration
}
