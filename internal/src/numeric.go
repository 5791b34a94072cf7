package src

import "strconv"

// coerceInt64 interprets a stored payload as an integer. Anything that does
// not look numeric counts as 0, matching Increment's contract.
func coerceInt64(value any) int64 {
	switch v := value.(type) {
	case int:
		return int64(v)
	case int8:
		return int64(v)
	case int16:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	case uint:
		return int64(v)
	case uint8:
		return int64(v)
	case uint16:
		return int64(v)
	case uint32:
		return int64(v)
	case uint64:
		return int64(v)
	case float32:
		return int64(v)
	case float64:
		return int64(v)
	case string:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return 0
}

// numericValue converts an integer result back into the cache's value type.
// String caches store the decimal representation; interface caches store the
// int64 itself. Other value types cannot hold a counter and fail with
// ErrNotNumeric.
func numericValue[T any](n int64) (T, error) {
	var zero T
	switch any(zero).(type) {
	case int:
		return any(int(n)).(T), nil
	case int8:
		return any(int8(n)).(T), nil
	case int16:
		return any(int16(n)).(T), nil
	case int32:
		return any(int32(n)).(T), nil
	case int64:
		return any(n).(T), nil
	case uint:
		return any(uint(n)).(T), nil
	case uint8:
		return any(uint8(n)).(T), nil
	case uint16:
		return any(uint16(n)).(T), nil
	case uint32:
		return any(uint32(n)).(T), nil
	case uint64:
		return any(uint64(n)).(T), nil
	case float32:
		return any(float32(n)).(T), nil
	case float64:
		return any(float64(n)).(T), nil
	case string:
		return any(strconv.FormatInt(n, 10)).(T), nil
	case nil:
		// T is an interface type; box the int64 if it satisfies T.
		if value, ok := any(n).(T); ok {
			return value, nil
		}
	}
	return zero, ErrNotNumeric
}
