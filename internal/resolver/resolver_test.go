package resolver

import (
	"context"
	"errors"
	"net/netip"
	"testing"
)

type staticLookup struct {
	addrs   []netip.Addr
	err     error
	network string
	calls   int
}

func (sl *staticLookup) LookupNetIP(ctx context.Context, network, host string) ([]netip.Addr, error) {
	sl.calls++
	sl.network = network
	return sl.addrs, sl.err
}

func TestLiterals(t *testing.T) {
	sl := &staticLookup{}
	r := New(sl)

	tests := []struct {
		host   string
		family Family
		want   string
		err    error
	}{
		{"127.0.0.1", FamilyAny, "127.0.0.1", nil},
		{"127.0.0.1", FamilyV4, "127.0.0.1", nil},
		{"::ffff:10.1.2.3", FamilyV4, "10.1.2.3", nil},
		{"::1", FamilyV6, "::1", nil},
		{"::1", FamilyV4, "", ErrNotFound},
		{"10.0.0.1", FamilyV6, "", ErrNotFound},
	}

	for _, tt := range tests {
		addr, err := r.Resolve(context.Background(), tt.host, tt.family)
		if tt.err != nil {
			if !errors.Is(err, tt.err) {
				t.Errorf("%s: expected %v, got %v", tt.host, tt.err, err)
			}
			continue
		}
		if err != nil || addr.String() != tt.want {
			t.Errorf("%s: got %s, %v", tt.host, addr, err)
		}
	}

	if sl.calls != 0 {
		t.Errorf("Literals must not be looked up")
	}
}

func TestFamilySelection(t *testing.T) {
	sl := &staticLookup{addrs: []netip.Addr{
		netip.MustParseAddr("2001:db8::1"),
		netip.MustParseAddr("192.0.2.1"),
	}}
	r := New(sl)

	addr, err := r.Resolve(context.Background(), "example.test", FamilyAny)
	if err != nil || addr.String() != "2001:db8::1" {
		t.Errorf("Any family: got %s, %v", addr, err)
	}

	addr, err = r.Resolve(context.Background(), "example.test", FamilyV4)
	if err != nil || addr.String() != "192.0.2.1" {
		t.Errorf("IPv4 family: got %s, %v", addr, err)
	}
	if sl.network != "ip4" {
		t.Errorf("Invalid lookup network %s", sl.network)
	}

	sl.addrs = sl.addrs[:1]
	if _, err = r.Resolve(context.Background(), "example.test", FamilyV4); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestLookupFailure(t *testing.T) {
	r := New(&staticLookup{err: errors.New("no such host")})

	_, err := r.Resolve(context.Background(), "missing.test", FamilyAny)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
	if err.Error() != "not found: The hostname 'missing.test' could not be found." {
		t.Errorf("Invalid message %q", err.Error())
	}
}
