// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"time"

	"github.com/creachadair/jason"
	"github.com/shopspring/decimal"
)

// ToValue converts a Go value into a JSON value. It accepts nil, bool,
// string, signed and unsigned integers, float32 and float64, decimal.Decimal,
// jason.Number, time.Time and time.Duration (as strings, see TimeValue and
// DurationValue), []any, map[string]any, and any Value, which is returned
// unchanged. Map keys are sorted. ToValue panics for any other type, and for
// infinite or NaN floats.
func ToValue(v any) Value {
	switch t := v.(type) {
	case nil:
		return &Null{}
	case Value:
		return t
	case bool:
		return &Bool{Value: t}
	case string:
		return &String{Value: t}
	case int:
		return intValue(int64(t))
	case int32:
		return intValue(int64(t))
	case int64:
		return intValue(t)
	case uint:
		return uintValue(uint64(t))
	case uint32:
		return uintValue(uint64(t))
	case uint64:
		return uintValue(t)
	case float32:
		return floatValue(float64(t), 32)
	case float64:
		return floatValue(t, 64)
	case decimal.Decimal:
		return &Number{Text: jason.Number(t.String())}
	case time.Time:
		return TimeValue(t)
	case time.Duration:
		return DurationValue(t)
	case jason.Number:
		return &Number{Text: t}
	case []any:
		arr := &Array{Values: make([]Value, len(t))}
		for i, elt := range t {
			arr.Values[i] = ToValue(elt)
		}
		return arr
	case map[string]any:
		keys := make([]string, 0, len(t))
		for key := range t {
			keys = append(keys, key)
		}
		slices.Sort(keys)
		obj := &Object{Members: make([]*Member, len(keys))}
		for i, key := range keys {
			obj.Members[i] = Field(key, ToValue(t[key]))
		}
		return obj
	}
	panic(fmt.Sprintf("ast: cannot convert value of type %T", v))
}

func intValue(v int64) *Number {
	return &Number{Text: jason.Number(strconv.FormatInt(v, 10))}
}

func uintValue(v uint64) *Number {
	return &Number{Text: jason.Number(strconv.FormatUint(v, 10))}
}

func floatValue(v float64, bits int) *Number {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		panic(fmt.Sprintf("ast: cannot convert %v to a JSON number", v))
	}
	return &Number{Text: jason.Number(strconv.FormatFloat(v, 'g', -1, bits))}
}
