// Resolver turns command line destination into a single address
package resolver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"

	"github.com/SyntropyNet/syntropy-pinger/internal/logger"
)

const pkgName = "Resolver. "

var ErrNotFound = errors.New("not found")

type Family int

const (
	FamilyAny Family = iota
	FamilyV4
	FamilyV6
)

func (f Family) network() string {
	switch f {
	case FamilyV4:
		return "ip4"
	case FamilyV6:
		return "ip6"
	default:
		return "ip"
	}
}

func (f Family) accepts(addr netip.Addr) bool {
	switch f {
	case FamilyV4:
		return addr.Is4()
	case FamilyV6:
		return addr.Is6()
	default:
		return true
	}
}

// Lookuper is the part of *net.Resolver used here
type Lookuper interface {
	LookupNetIP(ctx context.Context, network, host string) ([]netip.Addr, error)
}

type Resolver struct {
	lookup Lookuper
}

func New(l Lookuper) *Resolver {
	if l == nil {
		l = net.DefaultResolver
	}
	return &Resolver{lookup: l}
}

// Resolve returns the first host address of the requested family.
// IP literals are returned without a lookup.
func (r *Resolver) Resolve(ctx context.Context, host string, family Family) (netip.Addr, error) {
	if addr, err := netip.ParseAddr(host); err == nil {
		addr = addr.Unmap()
		if !family.accepts(addr) {
			return netip.Addr{}, notFound(host)
		}
		return addr, nil
	}

	addrs, err := r.lookup.LookupNetIP(ctx, family.network(), host)
	if err != nil {
		logger.Debug().Println(pkgName, host, err)
		return netip.Addr{}, notFound(host)
	}

	for _, addr := range addrs {
		addr = addr.Unmap()
		if family.accepts(addr) {
			logger.Debug().Println(pkgName, host, "resolved to", addr)
			return addr, nil
		}
	}

	return netip.Addr{}, notFound(host)
}

func notFound(host string) error {
	return fmt.Errorf("%w: The hostname '%s' could not be found.", ErrNotFound, host)
}

// Resolve uses system resolver
func Resolve(ctx context.Context, host string, family Family) (netip.Addr, error) {
	return New(nil).Resolve(ctx, host, family)
}
