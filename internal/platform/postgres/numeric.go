package postgres

import (
	"database/sql/driver"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// Uint64 moves a uint64 through a NUMERIC(20,0) column, which holds the full
// range BIGINT cannot.
type Uint64 uint64

func (u Uint64) Value() (driver.Value, error) {
	return strconv.FormatUint(uint64(u), 10), nil
}

func (u *Uint64) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case int64:
		if v < 0 {
			return fmt.Errorf("scan uint64: negative value %d", v)
		}
		*u = Uint64(v)
		return nil
	case nil:
		*u = 0
		return nil
	default:
		return fmt.Errorf("scan uint64: unsupported type %T", src)
	}
	// NUMERIC may render a scale suffix such as "12.0".
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("scan uint64: %w", err)
	}
	*u = Uint64(n)
	return nil
}

// BigInt moves a non-negative *big.Int through a NUMERIC(78,0) column.
type BigInt struct {
	*big.Int
}

func (b BigInt) Value() (driver.Value, error) {
	if b.Int == nil {
		return "0", nil
	}
	return b.Int.String(), nil
}

func (b *BigInt) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case int64:
		b.Int = big.NewInt(v)
		return nil
	case nil:
		b.Int = new(big.Int)
		return nil
	default:
		return fmt.Errorf("scan big int: unsupported type %T", src)
	}
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return fmt.Errorf("scan big int: invalid numeric %q", s)
	}
	b.Int = n
	return nil
}
